package main

import "nathanbeddoewebdev/phonematch/cmd"

func main() {
	cmd.Execute()
}
