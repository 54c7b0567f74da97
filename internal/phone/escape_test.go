package phone

import "testing"

func TestUnescape(t *testing.T) {
	tests := map[string]string{
		`="237698765432"`:    "237698765432",
		`"237698765432"`:     "237698765432",
		`  ="237" `:          "237",
		"237698765432":       "237698765432",
		`=237`:               "=237",
		`"unterminated`:      `"unterminated`,
		`=""`:                "",
		`="  23798765432  "`: "23798765432",
		`="="23798765432""`:  "23798765432",
		`""237""`:            "237",
		`"="237698765432""`:  "237698765432",
		`= "237"`:            `= "237"`,
	}
	for in, want := range tests {
		if got := Unescape(in); got != want {
			t.Errorf("Unescape(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEscape(t *testing.T) {
	if got := Escape("237"); got != `="237"` {
		t.Errorf("Escape = %q", got)
	}
	if got := Escape(""); got != "" {
		t.Errorf("Escape(\"\") = %q, want empty", got)
	}
	if got := Escape(`="237"`); got != `="237"` {
		t.Errorf("Escape must not double-wrap, got %q", got)
	}
}
