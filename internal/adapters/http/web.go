// Package web is the HTTP adapter for the Eventdesk application: the
// navigation controller, the guard policies, the view renderer, and the
// form bindings that drive the domain operations.
package web

import (
	"net/http"
	"time"

	"eventdesk/internal/adapters/email"
	"eventdesk/internal/adapters/http/middleware"
	"eventdesk/internal/application/orchestrators"
	"eventdesk/internal/domain/user"
)

// Services holds the application dependencies the handlers call into.
type Services struct {
	Users        orchestrators.UserDirectory
	Events       orchestrators.EventStore
	Sender       email.Sender
	EmailFrom    string
	EmailReplyTo string
}

// Global services instance (set by NewMux)
var services *Services

// Global session store instance (set by NewMux)
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Binding attaches one mutating action (a form trigger) to the mux. Each
// view declares its own bindings; the mux adapter registers them, keeping
// the handlers free of routing concerns.
type Binding struct {
	Method  string
	Path    string
	Guard   GuardPolicy
	Handler http.HandlerFunc
}

// NewMux wires the navigation controller, view bindings, and middleware.
func NewMux(s *Services, sessionStore *middleware.SessionStore, csrfKey []byte) http.Handler {
	mux := newRouter(s, sessionStore)

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Innermost first: the session must be in context before guards run.
	return middleware.Chain(mux,
		middleware.Auth(sessionStore),
		middleware.CSRF(csrfKey),
		middleware.SecurityHeaders,
		middleware.RateLimit(limiter),
	)
}

// newRouter builds the bare mux without the middleware chain. Tests use it
// directly with middleware.ContextWithSession.
func newRouter(s *Services, sessionStore *middleware.SessionStore) *http.ServeMux {
	services = s
	sessions = sessionStore

	mux := http.NewServeMux()
	mux.HandleFunc("/", handleNavigate)

	var all []Binding
	all = append(all, authBindings()...)
	all = append(all, adminBindings()...)
	all = append(all, visitorBindings()...)
	for _, b := range all {
		mux.HandleFunc(b.Method+" "+b.Path, requireGuard(b.Guard, b.Handler))
	}
	return mux
}

// requireGuard enforces the same guard precedence on mutating actions that
// Resolve enforces on navigations: no binding ever runs for a session
// state whose view would not have rendered.
func requireGuard(policy GuardPolicy, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, authenticated := middleware.CurrentSession(r.Context())

		if authenticated && !user.IsValidRole(sess.Role) {
			sessions.Clear(w)
			http.Redirect(w, r, PathLogin, http.StatusSeeOther)
			return
		}

		switch policy {
		case GuardGuestOnly:
			if authenticated {
				http.Redirect(w, r, DashboardPath(sess.Role), http.StatusSeeOther)
				return
			}
		case GuardAdministrator:
			if !authenticated {
				http.Redirect(w, r, PathLogin, http.StatusSeeOther)
				return
			}
			if sess.Role != user.RoleAdministrator {
				http.Redirect(w, r, DashboardPath(sess.Role), http.StatusSeeOther)
				return
			}
		case GuardVisitor:
			if !authenticated {
				http.Redirect(w, r, PathLogin, http.StatusSeeOther)
				return
			}
			if sess.Role != user.RoleVisitor {
				http.Redirect(w, r, DashboardPath(sess.Role), http.StatusSeeOther)
				return
			}
		}
		next(w, r)
	}
}
