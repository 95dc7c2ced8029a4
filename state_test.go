package formz

import "testing"

func TestStatus_String(t *testing.T) {
	tests := map[Status]string{
		StatusNotValidated: "not_validated",
		StatusValidating:   "validating",
		StatusValid:        "valid",
		StatusInvalid:      "invalid",
		Status(999):        "unknown",
	}
	for status, want := range tests {
		if got := status.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestStatus_Values(t *testing.T) {
	// Verify iota ordering
	if StatusNotValidated != 0 {
		t.Errorf("expected StatusNotValidated=0, got %d", StatusNotValidated)
	}
	if StatusValidating != 1 {
		t.Errorf("expected StatusValidating=1, got %d", StatusValidating)
	}
	if StatusValid != 2 {
		t.Errorf("expected StatusValid=2, got %d", StatusValid)
	}
	if StatusInvalid != 3 {
		t.Errorf("expected StatusInvalid=3, got %d", StatusInvalid)
	}
}

func TestMount_String(t *testing.T) {
	if s := Unmounted.String(); s != "unmounted" {
		t.Errorf("expected 'unmounted', got %q", s)
	}
	if s := Mounted.String(); s != "mounted" {
		t.Errorf("expected 'mounted', got %q", s)
	}
	if s := Mount(7).String(); s != "unknown" {
		t.Errorf("expected 'unknown', got %q", s)
	}
}
