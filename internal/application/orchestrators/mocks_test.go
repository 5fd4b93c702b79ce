package orchestrators

import (
	"context"
	"fmt"
	"net/url"

	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/user"
)

// mockUserDirectory implements UserDirectory for testing.
type mockUserDirectory struct {
	users       []user.User
	createFails bool
}

func (m *mockUserDirectory) List(_ context.Context, filters url.Values) []user.User {
	email := filters.Get("email")
	matches := []user.User{}
	for _, u := range m.users {
		if email == "" || u.Email == email {
			matches = append(matches, u)
		}
	}
	return matches
}

func (m *mockUserDirectory) Create(_ context.Context, u user.User) (user.User, bool) {
	if m.createFails {
		return user.User{}, false
	}
	u.ID = fmt.Sprintf("user-%03d", len(m.users)+1)
	m.users = append(m.users, u)
	return u, true
}

// mockEventStore implements EventStore for testing. Patch applies the same
// field merge the remote store would.
type mockEventStore struct {
	events     []event.Event
	patchFails bool
}

func (m *mockEventStore) List(_ context.Context, _ url.Values) []event.Event {
	out := make([]event.Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *mockEventStore) Get(_ context.Context, id string) (event.Event, bool) {
	for _, ev := range m.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return event.Event{}, false
}

func (m *mockEventStore) Create(_ context.Context, ev event.Event) (event.Event, bool) {
	ev.ID = fmt.Sprintf("event-%03d", len(m.events)+1)
	m.events = append(m.events, ev)
	return ev, true
}

func (m *mockEventStore) Patch(_ context.Context, id string, partial map[string]any) (event.Event, bool) {
	if m.patchFails {
		return event.Event{}, false
	}
	for i, ev := range m.events {
		if ev.ID != id {
			continue
		}
		if title, ok := partial["title"].(string); ok {
			ev.Title = title
		}
		if desc, ok := partial["description"].(string); ok {
			ev.Description = desc
		}
		if loc, ok := partial["location"].(string); ok {
			ev.Location = loc
		}
		if date, ok := partial["date"].(string); ok {
			ev.Date = date
		}
		if capacity, ok := partial["capacity"].(int); ok {
			ev.Capacity = capacity
		}
		if attendees, ok := partial["attendees"].([]string); ok {
			ev.Attendees = attendees
		}
		m.events[i] = ev
		return ev, true
	}
	return event.Event{}, false
}

func (m *mockEventStore) Delete(_ context.Context, id string) bool {
	for i, ev := range m.events {
		if ev.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return true
		}
	}
	return false
}

func mustUser(email, password, role string) user.User {
	u := user.User{Email: email, Role: role}
	if err := u.SetPassword(password); err != nil {
		panic(err)
	}
	return u
}
