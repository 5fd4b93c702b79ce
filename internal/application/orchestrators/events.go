package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"eventdesk/internal/domain/event"
)

// ErrEventNotFound is returned when the referenced event cannot be read.
var ErrEventNotFound = errors.New("event not found")

// ExecuteListEvents returns all events. A transport failure yields an empty
// list; callers treat empty as nothing to render, not as an error state.
func ExecuteListEvents(ctx context.Context, deps EventsDeps) []event.Event {
	return deps.Events.List(ctx, nil)
}

// EventsDeps holds dependencies for the event CRUD orchestrators.
type EventsDeps struct {
	Events EventStore
}

// CreateEventInput carries the admin's event draft.
type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	Date        string
	Capacity    int
}

// ExecuteCreateEvent validates the draft and creates the event with an
// empty attendee list.
// POST: Returns the created event with its server-assigned id
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps EventsDeps) (event.Event, error) {
	draft := event.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Location:    input.Location,
		Date:        input.Date,
		Capacity:    input.Capacity,
		Attendees:   []string{},
	}
	if err := draft.Validate(); err != nil {
		return event.Event{}, err
	}

	created, ok := deps.Events.Create(ctx, draft)
	if !ok {
		return event.Event{}, ErrStoreRejected
	}
	slog.Info("event_created", "event_id", created.ID, "title", created.Title, "capacity", created.Capacity)
	return created, nil
}

// UpdateEventInput carries a partial update. Only the fields present in
// Fields are merged; attendees and id are never writable through this path.
type UpdateEventInput struct {
	ID     string
	Fields map[string]any
}

// ExecuteUpdateEvent validates the provided fields and patches the event.
func ExecuteUpdateEvent(ctx context.Context, input UpdateEventInput, deps EventsDeps) (event.Event, error) {
	if input.ID == "" {
		return event.Event{}, ErrEventNotFound
	}

	delete(input.Fields, "id")
	delete(input.Fields, "attendees")

	if title, ok := input.Fields["title"].(string); ok {
		if strings.TrimSpace(title) == "" {
			return event.Event{}, event.ErrEmptyTitle
		}
	}
	if capacity, ok := input.Fields["capacity"].(int); ok {
		if capacity < 0 {
			return event.Event{}, event.ErrNegativeCapacity
		}
	}

	updated, ok := deps.Events.Patch(ctx, input.ID, input.Fields)
	if !ok {
		return event.Event{}, ErrStoreRejected
	}
	slog.Info("event_updated", "event_id", updated.ID)
	return updated, nil
}

// ExecuteDeleteEvent removes the event.
func ExecuteDeleteEvent(ctx context.Context, id string, deps EventsDeps) error {
	if id == "" {
		return ErrEventNotFound
	}
	if !deps.Events.Delete(ctx, id) {
		return ErrStoreRejected
	}
	slog.Info("event_deleted", "event_id", id)
	return nil
}
