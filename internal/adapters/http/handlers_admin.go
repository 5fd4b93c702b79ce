package web

import (
	"net/http"
	"strconv"

	"eventdesk/internal/application/orchestrators"
)

// adminBindings declares the administrator dashboard's mutating actions:
// create, update, and delete. The form posts to the create binding by
// default and to the update binding while in edit mode.
func adminBindings() []Binding {
	return []Binding{
		{Method: http.MethodPost, Path: "/admin/events", Guard: GuardAdministrator, Handler: handleCreateEvent},
		{Method: http.MethodPost, Path: "/admin/events/{id}", Guard: GuardAdministrator, Handler: handleUpdateEvent},
		{Method: http.MethodPost, Path: "/admin/events/{id}/delete", Guard: GuardAdministrator, Handler: handleDeleteEvent},
	}
}

func handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	capacity, err := strconv.Atoi(r.FormValue("Capacity"))
	if err != nil {
		redirectWith(w, r, PathAdminDashboard, "err", "capacity must be a whole number")
		return
	}

	input := orchestrators.CreateEventInput{
		Title:       r.FormValue("Title"),
		Description: r.FormValue("Description"),
		Location:    r.FormValue("Location"),
		Date:        r.FormValue("Date"),
		Capacity:    capacity,
	}
	created, err := orchestrators.ExecuteCreateEvent(r.Context(), input, orchestrators.EventsDeps{Events: services.Events})
	if err != nil {
		redirectWith(w, r, PathAdminDashboard, "err", err.Error())
		return
	}
	redirectWith(w, r, PathAdminDashboard, "msg", "Created "+created.Title)
}

func handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	capacity, err := strconv.Atoi(r.FormValue("Capacity"))
	if err != nil {
		redirectWith(w, r, PathAdminDashboard, "err", "capacity must be a whole number")
		return
	}

	input := orchestrators.UpdateEventInput{
		ID: r.PathValue("id"),
		Fields: map[string]any{
			"title":       r.FormValue("Title"),
			"description": r.FormValue("Description"),
			"location":    r.FormValue("Location"),
			"date":        r.FormValue("Date"),
			"capacity":    capacity,
		},
	}
	updated, err := orchestrators.ExecuteUpdateEvent(r.Context(), input, orchestrators.EventsDeps{Events: services.Events})
	if err != nil {
		redirectWith(w, r, PathAdminDashboard, "err", err.Error())
		return
	}
	redirectWith(w, r, PathAdminDashboard, "msg", "Updated "+updated.Title)
}

func handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := orchestrators.ExecuteDeleteEvent(r.Context(), r.PathValue("id"), orchestrators.EventsDeps{Events: services.Events}); err != nil {
		redirectWith(w, r, PathAdminDashboard, "err", err.Error())
		return
	}
	redirectWith(w, r, PathAdminDashboard, "msg", "Event deleted")
}
