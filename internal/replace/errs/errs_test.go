package errs

import "testing"

func TestFatalClassification(t *testing.T) {
	cases := []struct {
		kind  Kind
		fatal bool
	}{
		{MissingDependency, true},
		{InvariantViolation, true},
		{SubprocessFailure, false},
		{ParseError, false},
		{IoError, false},
		{PreconditionFailure, false},
	}
	for _, c := range cases {
		err := New(c.kind, "boom")
		if err.Fatal() != c.fatal {
			t.Errorf("%s.Fatal() = %v, want %v", c.kind, err.Fatal(), c.fatal)
		}
	}
}

func TestWrapPreservesExistingKind(t *testing.T) {
	orig := New(ParseError, "bad json")
	wrapped := Wrap(IoError, orig)
	if wrapped.Kind != ParseError {
		t.Errorf("Wrap() changed kind to %s, want %s", wrapped.Kind, ParseError)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(IoError, nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestFormatWithDetails(t *testing.T) {
	err := WithDetails(SubprocessFailure, "rg exited 2", map[string]any{"path": "/tmp/proj"})
	out := Format(err)
	if out == "" {
		t.Error("Format() returned empty string")
	}
}

func TestFormatWithoutDetails(t *testing.T) {
	err := New(PreconditionFailure, "search text cannot be empty")
	out := Format(err)
	if out != "Error: search text cannot be empty" {
		t.Errorf("Format() = %q", out)
	}
}
