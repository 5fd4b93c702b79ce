package web

import (
	"net/http"

	"eventdesk/internal/adapters/http/middleware"
	"eventdesk/internal/domain/user"
)

// GuardPolicy is the rule set deciding whether a path may render for a
// given session state.
type GuardPolicy int

const (
	// GuardPublic renders for anyone.
	GuardPublic GuardPolicy = iota
	// GuardGuestOnly renders only without a session (login, register).
	GuardGuestOnly
	// GuardAdministrator renders only for administrator sessions.
	GuardAdministrator
	// GuardVisitor renders only for visitor sessions.
	GuardVisitor
)

// Initializer loads a view's data once the route has resolved to it. It
// re-fetches on every load and degrades to empty data when fetches fail;
// it must not assume any particular prior state.
type Initializer func(r *http.Request, sess middleware.Session, authenticated bool) map[string]any

// Route binds a path to a view, a guard policy, and an optional
// initializer.
type Route struct {
	Path string
	View string
	// Dashboard toggles the body-level dashboard style flag.
	Dashboard bool
	Guard     GuardPolicy
	Init      Initializer
}

// Paths known to the router.
const (
	PathHome             = "/"
	PathHomeAlias        = "/home"
	PathLogin            = "/login"
	PathRegister         = "/register"
	PathAdminDashboard   = "/admin"
	PathVisitorDashboard = "/dashboard"
)

// routes is the static route table. Immutable at runtime.
var routes = []Route{
	{Path: PathHome, View: "home.html", Guard: GuardPublic, Init: initHome},
	{Path: PathLogin, View: "login.html", Guard: GuardGuestOnly, Init: initLogin},
	{Path: PathRegister, View: "register.html", Guard: GuardGuestOnly, Init: initRegister},
	{Path: PathAdminDashboard, View: "admin_dashboard.html", Dashboard: true, Guard: GuardAdministrator, Init: initAdminDashboard},
	{Path: PathVisitorDashboard, View: "visitor_dashboard.html", Dashboard: true, Guard: GuardVisitor, Init: initVisitorDashboard},
}

// pathAliases redirects related paths onto their canonical route.
var pathAliases = map[string]string{
	PathHomeAlias: PathHome,
}

// notFoundRoute is the universal fallback for unknown paths and failed
// view loads. No initializer.
var notFoundRoute = Route{View: "not_found.html", Guard: GuardPublic}

// ActionKind classifies the outcome of guard evaluation.
type ActionKind int

const (
	// ActionRender means render the resolved route's view.
	ActionRender ActionKind = iota
	// ActionRedirect means answer with one redirect hop to Target; the
	// destination re-enters resolution as a fresh navigation.
	ActionRedirect
	// ActionLogout means the session is inconsistent: destroy it and
	// redirect to login.
	ActionLogout
)

// Action is the explicit result of guard evaluation: either a view to
// render or a single redirect hop.
type Action struct {
	Kind   ActionKind
	Route  Route
	Target string
}

// DashboardPath returns the dashboard path for a role.
// PRE: role is a recognized role
func DashboardPath(role string) string {
	if role == user.RoleAdministrator {
		return PathAdminDashboard
	}
	return PathVisitorDashboard
}

// Resolve maps a navigation to an action. It is pure: same path and
// session state, same action.
//
// Precedence: path aliases, then unknown paths (not-found renders for any
// session state), then an inconsistent authenticated role (forced logout),
// then the guard rules — unauthenticated on a protected path goes to
// login, authenticated on a guest-only path goes to the role's own
// dashboard, a role-mismatched dashboard goes to the correct one. The
// guard rules are mutually exclusive per path, and every redirect target
// resolves to a render for the same session state, so one hop suffices.
func Resolve(path string, sess middleware.Session, authenticated bool) Action {
	if target, ok := pathAliases[path]; ok {
		return Action{Kind: ActionRedirect, Target: target}
	}

	route, known := lookupRoute(path)
	if !known {
		return Action{Kind: ActionRender, Route: notFoundRoute}
	}

	if authenticated && !user.IsValidRole(sess.Role) {
		return Action{Kind: ActionLogout, Target: PathLogin}
	}

	switch route.Guard {
	case GuardGuestOnly:
		if authenticated {
			return Action{Kind: ActionRedirect, Target: DashboardPath(sess.Role)}
		}
	case GuardAdministrator:
		if !authenticated {
			return Action{Kind: ActionRedirect, Target: PathLogin}
		}
		if sess.Role != user.RoleAdministrator {
			return Action{Kind: ActionRedirect, Target: DashboardPath(sess.Role)}
		}
	case GuardVisitor:
		if !authenticated {
			return Action{Kind: ActionRedirect, Target: PathLogin}
		}
		if sess.Role != user.RoleVisitor {
			return Action{Kind: ActionRedirect, Target: DashboardPath(sess.Role)}
		}
	}

	return Action{Kind: ActionRender, Route: route}
}

func lookupRoute(path string) (Route, bool) {
	for _, route := range routes {
		if route.Path == path {
			return route, true
		}
	}
	return Route{}, false
}

// handleNavigate is the single entry point for every page navigation.
// Direct loads, link clicks, and redirect re-entries all pass through the
// same resolution, so guard evaluation is never skipped for a redirect
// destination.
func handleNavigate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, authenticated := middleware.CurrentSession(r.Context())
	action := Resolve(r.URL.Path, sess, authenticated)

	switch action.Kind {
	case ActionLogout:
		sessions.Clear(w)
		http.Redirect(w, r, action.Target, http.StatusSeeOther)
	case ActionRedirect:
		http.Redirect(w, r, action.Target, http.StatusSeeOther)
	default:
		data := map[string]any{}
		if action.Route.Init != nil {
			data = action.Route.Init(r, sess, authenticated)
		}
		status := http.StatusOK
		if action.Route.View == notFoundRoute.View {
			status = http.StatusNotFound
		}
		renderView(w, r, action.Route, data, status)
	}
}
