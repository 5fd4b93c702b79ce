// Package event defines the bookable event and its enrollment rules.
package event

import (
	"errors"
	"strings"
)

// Domain errors surfaced to the user as-is.
var (
	ErrEmptyTitle        = errors.New("event title is required")
	ErrNegativeCapacity  = errors.New("capacity must be zero or greater")
	ErrEventFull         = errors.New("event is fully booked")
	ErrAlreadyEnrolled   = errors.New("you are already enrolled in this event")
	ErrEnrollmentMissing = errors.New("enrollment requires an active session")
)

// Event represents a bookable event managed by an administrator.
// Attendees preserves insertion order; the capacity bound is enforced at
// enrollment time, not by the store.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Capacity    int      `json:"capacity"`
	Attendees   []string `json:"attendees"`
}

// Validate checks if the Event has valid data.
// POST: Returns nil if valid, error otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if e.Capacity < 0 {
		return ErrNegativeCapacity
	}
	return nil
}

// Remaining returns the number of open seats.
func (e *Event) Remaining() int {
	return e.Capacity - len(e.Attendees)
}

// IsFull returns true when no seats remain.
// INVARIANT: Event fields are not mutated
func (e *Event) IsFull() bool {
	return len(e.Attendees) >= e.Capacity
}

// HasAttendee reports whether userID is already enrolled.
func (e *Event) HasAttendee(userID string) bool {
	for _, id := range e.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}

// Enroll appends userID to the attendee list.
// PRE: userID is non-empty
// POST: Attendees contains userID exactly once, or an error and no change
func (e *Event) Enroll(userID string) error {
	if userID == "" {
		return ErrEnrollmentMissing
	}
	if e.HasAttendee(userID) {
		return ErrAlreadyEnrolled
	}
	if e.IsFull() {
		return ErrEventFull
	}
	e.Attendees = append(e.Attendees, userID)
	return nil
}

// Withdraw removes userID from the attendee list, preserving the order of
// the remaining attendees. Removing an absent id is a no-op, not an error.
func (e *Event) Withdraw(userID string) {
	kept := e.Attendees[:0]
	for _, id := range e.Attendees {
		if id != userID {
			kept = append(kept, id)
		}
	}
	e.Attendees = kept
}
