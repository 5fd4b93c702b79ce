package web

import (
	"net/http"
	"net/url"

	"eventdesk/internal/adapters/http/middleware"
	"eventdesk/internal/application/orchestrators"
)

// View initializers. Each one is scoped to a single view and re-fetches
// its own data on every load; a failed fetch shows up as an empty list,
// never an error page.

func initHome(r *http.Request, _ middleware.Session, _ bool) map[string]any {
	events := orchestrators.ExecuteListEvents(r.Context(), orchestrators.EventsDeps{Events: services.Events})
	return map[string]any{
		"Events": events,
	}
}

func initLogin(r *http.Request, _ middleware.Session, _ bool) map[string]any {
	return map[string]any{
		"Registered": r.URL.Query().Get("registered") == "1",
	}
}

func initRegister(_ *http.Request, _ middleware.Session, _ bool) map[string]any {
	return map[string]any{}
}

// initAdminDashboard loads the event list and, when an edit id is present,
// the record backing the form's edit mode. A stale or unknown edit id
// degrades to default (create) mode rather than an error.
func initAdminDashboard(r *http.Request, _ middleware.Session, _ bool) map[string]any {
	events := orchestrators.ExecuteListEvents(r.Context(), orchestrators.EventsDeps{Events: services.Events})
	data := map[string]any{
		"Events": events,
		"Msg":    r.URL.Query().Get("msg"),
		"Err":    r.URL.Query().Get("err"),
	}
	if editID := r.URL.Query().Get("edit"); editID != "" {
		for _, ev := range events {
			if ev.ID == editID {
				data["EditEvent"] = ev
				break
			}
		}
	}
	return data
}

func initVisitorDashboard(r *http.Request, sess middleware.Session, _ bool) map[string]any {
	events := orchestrators.ExecuteListEvents(r.Context(), orchestrators.EventsDeps{Events: services.Events})
	return map[string]any{
		"Events": events,
		"UserID": sess.UserID,
		"Msg":    r.URL.Query().Get("msg"),
		"Err":    r.URL.Query().Get("err"),
	}
}

// redirectWith answers a mutating action with a redirect whose destination
// carries a single user-facing message. The destination re-enters the
// navigation algorithm as a fresh request.
func redirectWith(w http.ResponseWriter, r *http.Request, path, key, message string) {
	target := path
	if message != "" {
		target += "?" + url.Values{key: {message}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// routeFor returns the route table entry for a known path.
// PRE: path is present in the route table
func routeFor(path string) Route {
	route, _ := lookupRoute(path)
	return route
}
