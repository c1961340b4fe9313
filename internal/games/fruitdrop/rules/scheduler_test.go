package rules

import "testing"

func TestSchedulerDue(t *testing.T) {
	var s Scheduler
	s.Schedule(EventComboExpired, 600)
	s.Schedule(EventDropReady, 450)

	if due := s.Due(449); len(due) != 0 {
		t.Fatalf("Due(449) = %v, expected none", due)
	}
	due := s.Due(700)
	if len(due) != 2 || due[0] != EventDropReady || due[1] != EventComboExpired {
		t.Errorf("Due(700) = %v, expected [drop combo]", due)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after firing, expected 0", s.Len())
	}
}

func TestSchedulerReplace(t *testing.T) {
	var s Scheduler
	s.Schedule(EventComboExpired, 100)
	s.Schedule(EventComboExpired, 300)

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, expected one record per kind", s.Len())
	}
	at, ok := s.Pending(EventComboExpired)
	if !ok || at != 300 {
		t.Errorf("Pending() = %v, %v, expected 300, true", at, ok)
	}
	if due := s.Due(200); len(due) != 0 {
		t.Errorf("replaced record fired early: %v", due)
	}
}

func TestSchedulerCancelReset(t *testing.T) {
	var s Scheduler
	s.Schedule(EventDropReady, 10)
	s.Schedule(EventComboExpired, 20)

	s.Cancel(EventDropReady)
	if _, ok := s.Pending(EventDropReady); ok {
		t.Error("Cancel() left the record pending")
	}
	s.Reset()
	if due := s.Due(1000); len(due) != 0 {
		t.Errorf("Due() after Reset = %v, expected none", due)
	}
}
