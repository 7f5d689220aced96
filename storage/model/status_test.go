package model

import (
	"encoding/json"
	"testing"
)

// TestStatusValues tests that the enum keeps the legacy column values
func TestStatusValues(t *testing.T) {
	if int(StatusActive) != 1 {
		t.Errorf("expected StatusActive to be 1, got %d", int(StatusActive))
	}
	if int(StatusDeleted) != 3 {
		t.Errorf("expected StatusDeleted to be 3, got %d", int(StatusDeleted))
	}
}

// TestStatusValid tests that only the defined constants are valid
func TestStatusValid(t *testing.T) {
	if !StatusActive.Valid() || !StatusDeleted.Valid() {
		t.Error("expected defined statuses to be valid")
	}
	for _, s := range []Status{0, 2, 4, -1} {
		if s.Valid() {
			t.Errorf("expected status %d to be invalid", int(s))
		}
	}
}

// TestStatusJSONRoundTrip tests the JSON string representation
func TestStatusJSONRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusActive, StatusDeleted} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(data) != `"`+s.String()+`"` {
			t.Errorf("expected %q, got %s", s.String(), data)
		}
		var back Status
		if err = json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if back != s {
			t.Errorf("round trip changed status: %s -> %s", s, back)
		}
	}
}

// TestStatusRejectsUnknown tests that unknown values are rejected at the
// boundary
func TestStatusRejectsUnknown(t *testing.T) {
	var s Status
	if err := json.Unmarshal([]byte(`"blocked"`), &s); err == nil {
		t.Error("expected an error for an unknown status string")
	}
	if err := json.Unmarshal([]byte(`2`), &s); err == nil {
		t.Error("expected an error for a numeric status")
	}
	if _, err := ParseStatus("pending"); err == nil {
		t.Error("expected an error for an unknown status")
	}
}
