package web

import (
	"net/http"

	"eventdesk/internal/adapters/http/middleware"
	"eventdesk/internal/application/orchestrators"
)

// visitorBindings declares the visitor dashboard's mutating actions.
func visitorBindings() []Binding {
	return []Binding{
		{Method: http.MethodPost, Path: "/dashboard/enroll", Guard: GuardVisitor, Handler: handleEnroll},
		{Method: http.MethodPost, Path: "/dashboard/withdraw", Guard: GuardVisitor, Handler: handleWithdraw},
	}
}

func enrollDeps() orchestrators.EnrollDeps {
	return orchestrators.EnrollDeps{
		Events:  services.Events,
		Sender:  services.Sender,
		From:    services.EmailFrom,
		ReplyTo: services.EmailReplyTo,
	}
}

func handleEnroll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.CurrentSession(r.Context())

	input := orchestrators.EnrollInput{
		EventID:   r.FormValue("EventID"),
		UserID:    sess.UserID,
		UserEmail: sess.Email,
	}
	enrolled, err := orchestrators.ExecuteEnroll(r.Context(), input, enrollDeps())
	if err != nil {
		redirectWith(w, r, PathVisitorDashboard, "err", err.Error())
		return
	}
	redirectWith(w, r, PathVisitorDashboard, "msg", "You're enrolled in "+enrolled.Title)
}

func handleWithdraw(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.CurrentSession(r.Context())

	input := orchestrators.EnrollInput{
		EventID: r.FormValue("EventID"),
		UserID:  sess.UserID,
	}
	if _, err := orchestrators.ExecuteWithdraw(r.Context(), input, enrollDeps()); err != nil {
		redirectWith(w, r, PathVisitorDashboard, "err", err.Error())
		return
	}
	redirectWith(w, r, PathVisitorDashboard, "msg", "Enrollment withdrawn")
}
