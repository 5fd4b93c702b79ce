package web

import (
	"net/http"

	"eventdesk/internal/adapters/http/middleware"
	"eventdesk/internal/application/orchestrators"
)

// authBindings declares the mutating actions of the login and register
// views.
func authBindings() []Binding {
	return []Binding{
		{Method: http.MethodPost, Path: PathLogin, Guard: GuardGuestOnly, Handler: handleLoginSubmit},
		{Method: http.MethodPost, Path: PathRegister, Guard: GuardGuestOnly, Handler: handleRegisterSubmit},
		{Method: http.MethodPost, Path: "/logout", Guard: GuardPublic, Handler: handleLogout},
	}
}

// handleLoginSubmit authenticates and creates the session record.
func handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.LoginInput{
		Email:    r.FormValue("Email"),
		Password: r.FormValue("Password"),
	}
	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{Users: services.Users})
	if err != nil {
		renderView(w, r, routeFor(PathLogin), map[string]any{
			"Error": err.Error(),
			"Email": input.Email,
		}, http.StatusOK)
		return
	}

	sess := middleware.Session{UserID: result.UserID, Email: result.Email, Role: result.Role}
	if err := sessions.Save(w, sess); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, DashboardPath(result.Role), http.StatusSeeOther)
}

// handleRegisterSubmit creates a visitor account. The new user logs in
// explicitly afterwards; no session is created here.
func handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.RegisterInput{
		Email:    r.FormValue("Email"),
		Password: r.FormValue("Password"),
	}
	if r.FormValue("Password") != r.FormValue("ConfirmPassword") {
		renderView(w, r, routeFor(PathRegister), map[string]any{
			"Error": "Passwords do not match",
			"Email": input.Email,
		}, http.StatusOK)
		return
	}

	if _, err := orchestrators.ExecuteRegister(r.Context(), input, orchestrators.RegisterDeps{Users: services.Users}); err != nil {
		renderView(w, r, routeFor(PathRegister), map[string]any{
			"Error": err.Error(),
			"Email": input.Email,
		}, http.StatusOK)
		return
	}

	redirectWith(w, r, PathLogin, "registered", "1")
}

// handleLogout destroys the session. Idempotent: logging out without a
// session still lands on the login view.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	sessions.Clear(w)
	http.Redirect(w, r, PathLogin, http.StatusSeeOther)
}
