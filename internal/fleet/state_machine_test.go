package fleet

import (
	"testing"
	"time"
)

func TestCanTransitionAndApply(t *testing.T) {
	if !CanTransition(StatusRegistered, StatusActive) {
		t.Fatalf("expected registered -> active allowed")
	}
	if !CanTransition(StatusMaintenance, StatusActive) {
		t.Fatalf("expected maintenance -> active allowed")
	}
	if CanTransition(StatusRetired, StatusActive) {
		t.Fatalf("expected retired -> active not allowed")
	}
	if CanTransition(StatusRegistered, StatusMaintenance) {
		t.Fatalf("expected registered -> maintenance not allowed")
	}

	r := &Record{Status: StatusRegistered}
	now := time.Now()
	if err := ApplyTransition(r, StatusActive, now); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if r.Status != StatusActive {
		t.Fatalf("expected status active, got %s", r.Status)
	}
	if r.ActivatedAt == nil {
		t.Fatalf("expected ActivatedAt set")
	}

	if err := ApplyTransition(r, StatusRetired, now); err != nil {
		t.Fatalf("ApplyTransition retire: %v", err)
	}
	if r.RetiredAt == nil {
		t.Fatalf("expected RetiredAt set")
	}

	if err := ApplyTransition(r, StatusActive, now); err == nil {
		t.Fatalf("expected transition out of retired to fail")
	}
}
