package rules

import "sort"

// EventKind names a deferred round event.
type EventKind int

const (
	// EventDropReady re-enables dropping after the cooldown.
	EventDropReady EventKind = iota
	// EventComboExpired resets the combo counter after the idle window.
	EventComboExpired
)

type scheduledEvent struct {
	kind   EventKind
	fireAt float64
}

// Scheduler holds at most one pending record per kind, keyed on the round's
// logical clock. Records fire no earlier than their timestamp and only when
// the loop asks for due events, so discarding a round discards its timers.
type Scheduler struct {
	events []scheduledEvent
}

// Schedule sets (or replaces) the pending record for kind.
func (s *Scheduler) Schedule(kind EventKind, at float64) {
	s.Cancel(kind)
	s.events = append(s.events, scheduledEvent{kind: kind, fireAt: at})
}

// Cancel drops the pending record for kind, if any.
func (s *Scheduler) Cancel(kind EventKind) {
	kept := s.events[:0]
	for _, e := range s.events {
		if e.kind != kind {
			kept = append(kept, e)
		}
	}
	s.events = kept
}

// Pending returns the fire time of kind's record.
func (s *Scheduler) Pending(kind EventKind) (float64, bool) {
	for _, e := range s.events {
		if e.kind == kind {
			return e.fireAt, true
		}
	}
	return 0, false
}

// Due removes and returns every record with fireAt <= now, earliest first.
func (s *Scheduler) Due(now float64) []EventKind {
	var due []scheduledEvent
	kept := s.events[:0]
	for _, e := range s.events {
		if e.fireAt <= now {
			due = append(due, e)
		} else {
			kept = append(kept, e)
		}
	}
	s.events = kept

	sort.SliceStable(due, func(i, j int) bool { return due[i].fireAt < due[j].fireAt })
	kinds := make([]EventKind, len(due))
	for i, e := range due {
		kinds[i] = e.kind
	}
	return kinds
}

// Len returns the number of pending records.
func (s *Scheduler) Len() int {
	return len(s.events)
}

// Reset discards every pending record.
func (s *Scheduler) Reset() {
	s.events = s.events[:0]
}
