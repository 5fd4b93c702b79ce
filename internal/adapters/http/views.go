package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"eventdesk/internal/adapters/http/middleware"
	"eventdesk/internal/domain/user"
)

//go:embed templates/*.html
var templatesFS embed.FS

// mdRenderer renders event descriptions. Raw HTML in the input is escaped
// (WithUnsafe is NOT set), preventing XSS from stored descriptions.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderView executes the layout plus the route's view template. The
// layout is the chrome: its nav contents and logout control follow the
// session state passed through the func map, so every transition re-renders
// them. Any template failure falls back to the not-found view.
func renderView(w http.ResponseWriter, r *http.Request, route Route, data map[string]any, status int) {
	body, err := executeView(r, route, data)
	if err != nil {
		slog.Error("view_render_failed", "view", route.View, "error", err.Error())
		if route.View == notFoundRoute.View {
			// The fallback itself failed; degrade to plain text.
			http.Error(w, "page not found", http.StatusNotFound)
			return
		}
		renderView(w, r, notFoundRoute, map[string]any{}, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// executeView renders into a buffer so a mid-template failure never leaks
// a partial document to the client.
func executeView(r *http.Request, route Route, data map[string]any) ([]byte, error) {
	sess, authenticated := middleware.CurrentSession(r.Context())

	funcMap := template.FuncMap{
		"isLoggedIn":   func() bool { return authenticated },
		"currentRole":  func() string { return sess.Role },
		"currentEmail": func() string { return sess.Email },
		"isAdministrator": func() bool {
			return authenticated && sess.Role == user.RoleAdministrator
		},
		"csrfField": func() template.HTML { return csrf.TemplateField(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templatesFS,
		"templates/layout.html", "templates/"+route.View)
	if err != nil {
		return nil, err
	}

	if data == nil {
		data = map[string]any{}
	}
	data["IsDashboard"] = route.Dashboard

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
