// Package orchestrators implements the application's domain operations.
// Each operation is an ExecuteX function taking a context, an input value,
// and a deps struct holding the narrow store interfaces it needs. Store
// methods follow the resource-client contract: failures are signaled as
// empty lists or false, never as errors.
package orchestrators

import (
	"context"
	"net/url"

	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/user"
)

// UserDirectory is the slice of the users resource needed by auth operations.
type UserDirectory interface {
	List(ctx context.Context, filters url.Values) []user.User
	Create(ctx context.Context, u user.User) (user.User, bool)
}

// EventStore is the slice of the events resource needed by event operations.
type EventStore interface {
	List(ctx context.Context, filters url.Values) []event.Event
	Get(ctx context.Context, id string) (event.Event, bool)
	Create(ctx context.Context, e event.Event) (event.Event, bool)
	Patch(ctx context.Context, id string, partial map[string]any) (event.Event, bool)
	Delete(ctx context.Context, id string) bool
}
