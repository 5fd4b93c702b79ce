package browser_test

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"eventdesk/internal/adapters/email"
	web "eventdesk/internal/adapters/http"
	"eventdesk/internal/adapters/http/middleware"
	"eventdesk/internal/adapters/resource"
	"eventdesk/internal/adapters/resourceapi"
	"eventdesk/internal/adapters/storage"
	"eventdesk/internal/adapters/storage/collection"
	"eventdesk/internal/application/orchestrators"
	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/user"
)

// testApp runs the full stack: an in-process resource store backed by a
// temp SQLite DB, the web app pointed at it, and a headless browser.
type testApp struct {
	BaseURL  string
	DB       *sql.DB
	Server   *http.Server
	Resource *httptest.Server
	PW       *playwright.Playwright
	Browser  playwright.Browser
	Events   *resource.Client[event.Event]
	Users    *resource.Client[user.User]
}

// newTestApp wires the two processes of the deployment into one test
// process and starts both HTTP servers.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init test DB: %v", err)
	}

	api := resourceapi.New(collection.NewSQLiteStore(db), "users", "events")
	resourceSrv := httptest.NewServer(api.Router())

	users := resource.NewClient[user.User](resourceSrv.URL, "users", nil)
	events := resource.NewClient[event.Event](resourceSrv.URL, "events", nil)

	// Seed admin so login works out of the box.
	seedDeps := orchestrators.SeedAdminDeps{Users: users}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, "admin@events.com", "admin123"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	services := &web.Services{
		Users:  users,
		Events: events,
		Sender: email.NewNoopSender(),
	}
	sessionStore := middleware.NewSessionStore(bytes.Repeat([]byte("h"), 32), bytes.Repeat([]byte("b"), 32))
	web.RateLimitPerSecond = 1000

	mux := web.NewMux(services, sessionStore, bytes.Repeat([]byte("c"), 32))
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL:  baseURL,
		DB:       db,
		Server:   srv,
		Resource: resourceSrv,
		PW:       pw,
		Browser:  browser,
		Events:   events,
		Users:    users,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		resourceSrv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login fills the login form and waits for the dashboard redirect.
func (a *testApp) login(t *testing.T, page playwright.Page, emailAddr, password, wantPath string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=Email]").Fill(emailAddr); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill(password); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+wantPath, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to %s: %v", wantPath, err)
	}
}

// seedEvent creates an event directly through the resource store.
func (a *testApp) seedEvent(t *testing.T, title string, capacity int) event.Event {
	t.Helper()
	created, ok := a.Events.Create(context.Background(), event.Event{
		Title:     title,
		Date:      "2026-10-01",
		Location:  "Main Hall",
		Capacity:  capacity,
		Attendees: []string{},
	})
	if !ok {
		t.Fatalf("failed to seed event %q", title)
	}
	return created
}

// registerVisitor creates a visitor account directly.
func (a *testApp) registerVisitor(t *testing.T, emailAddr, password string) {
	t.Helper()
	deps := orchestrators.RegisterDeps{Users: a.Users}
	if _, err := orchestrators.ExecuteRegister(context.Background(), orchestrators.RegisterInput{
		Email:    emailAddr,
		Password: password,
	}, deps); err != nil {
		t.Fatalf("failed to register visitor: %v", err)
	}
}
