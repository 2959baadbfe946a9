package diag

import "testing"

func Test_CollectingSink_HasErrors_01(t *testing.T) {
	s := &CollectingSink{}
	s.Report(Diagnostic{Severity: Warning, Code: MissingSemantic, Message: "just a warning"})
	//
	if s.HasErrors() {
		t.Fatalf("did not expect a warning-only sink to report HasErrors")
	}
	//
	s.Report(Diagnostic{Severity: Error, Code: TypeError, Message: "boom"})
	//
	if !s.HasErrors() {
		t.Fatalf("expected HasErrors to be true once an Error-severity diagnostic lands")
	}
	//
	if len(s.Diagnostics) != 2 {
		t.Fatalf("expected both diagnostics to be collected, got %d", len(s.Diagnostics))
	}
}

func Test_Diagnostic_ErrorFormatsWithoutFile_01(t *testing.T) {
	d := Diagnostic{Severity: Error, Code: NotDefined, Message: "undefined symbol x"}
	//
	msg := d.Error()
	if msg == "" {
		t.Fatalf("expected a non-empty formatted message")
	}
}

func Test_Severity_String_01(t *testing.T) {
	cases := map[Severity]string{Note: "note", Warning: "warning", Error: "error"}
	//
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}
