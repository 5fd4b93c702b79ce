package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"eventdesk/internal/adapters/email"
	"eventdesk/internal/domain/event"
)

// EnrollInput identifies the session user and the target event.
type EnrollInput struct {
	EventID   string
	UserID    string
	UserEmail string
}

// EnrollDeps holds dependencies for enrollment operations. Sender may be
// nil when confirmation email is not configured.
type EnrollDeps struct {
	Events  EventStore
	Sender  email.Sender
	From    string
	ReplyTo string
}

// ExecuteEnroll appends the user to the event's attendee list.
//
// The event is re-fetched first so the capacity and duplicate checks run
// against current state, then persisted with a PATCH. Check-then-patch is
// not atomic: the store has no conditional update, so two racing
// enrollments can both pass the check. That gap is inherited from the
// store's contract and documented rather than hidden.
//
// PRE: input.UserID is the id of an authenticated session user
// POST: On success the event's attendee list grew by exactly one entry;
// on any error the stored event is unmodified
func ExecuteEnroll(ctx context.Context, input EnrollInput, deps EnrollDeps) (event.Event, error) {
	if input.UserID == "" {
		return event.Event{}, event.ErrEnrollmentMissing
	}

	ev, ok := deps.Events.Get(ctx, input.EventID)
	if !ok {
		return event.Event{}, ErrEventNotFound
	}

	if err := ev.Enroll(input.UserID); err != nil {
		slog.Info("enroll_rejected", "event_id", input.EventID, "user_id", input.UserID, "reason", err.Error())
		return event.Event{}, err
	}

	updated, ok := deps.Events.Patch(ctx, ev.ID, map[string]any{"attendees": ev.Attendees})
	if !ok {
		return event.Event{}, ErrStoreRejected
	}

	slog.Info("enroll_success", "event_id", updated.ID, "user_id", input.UserID, "attendees", len(updated.Attendees))
	sendEnrollConfirmation(ctx, deps, input.UserEmail, updated)
	return updated, nil
}

// ExecuteWithdraw removes the user from the event's attendee list. A user
// who is not enrolled gets the unchanged event back, not a failure.
func ExecuteWithdraw(ctx context.Context, input EnrollInput, deps EnrollDeps) (event.Event, error) {
	if input.UserID == "" {
		return event.Event{}, event.ErrEnrollmentMissing
	}

	ev, ok := deps.Events.Get(ctx, input.EventID)
	if !ok {
		return event.Event{}, ErrEventNotFound
	}

	if !ev.HasAttendee(input.UserID) {
		return ev, nil
	}

	ev.Withdraw(input.UserID)
	updated, ok := deps.Events.Patch(ctx, ev.ID, map[string]any{"attendees": ev.Attendees})
	if !ok {
		return event.Event{}, ErrStoreRejected
	}

	slog.Info("withdraw_success", "event_id", updated.ID, "user_id", input.UserID, "attendees", len(updated.Attendees))
	return updated, nil
}

// sendEnrollConfirmation emails the attendee. Delivery is best effort and
// never fails the enrollment.
func sendEnrollConfirmation(ctx context.Context, deps EnrollDeps, to string, ev event.Event) {
	if deps.Sender == nil || to == "" {
		return
	}
	req := email.SendRequest{
		To:      []string{to},
		From:    deps.From,
		ReplyTo: deps.ReplyTo,
		Subject: fmt.Sprintf("You're enrolled: %s", ev.Title),
		HTML: fmt.Sprintf("<p>Your spot for <strong>%s</strong> on %s at %s is confirmed.</p>",
			html.EscapeString(ev.Title), html.EscapeString(ev.Date), html.EscapeString(ev.Location)),
	}
	if _, err := deps.Sender.Send(ctx, req); err != nil {
		slog.Warn("enroll_confirmation_failed", "event_id", ev.ID, "error", err.Error())
	}
}
