package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/securecookie"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

const sessionCookieName = "eventdesk_session"

// SecureCookies controls the Secure flag on session cookies. Set to true
// in production.
var SecureCookies = false

// Session is the minimal authenticated-identity record held client-side.
// It never includes credentials.
type Session struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// SessionStore reads and writes the session cookie. The cookie value is
// the JSON-encoded session record, encrypted and authenticated, so it
// survives reloads without server-side state.
type SessionStore struct {
	codec *securecookie.SecureCookie
}

// NewSessionStore creates a store keyed with the given hash and block keys.
// PRE: hashKey is 32 or 64 bytes; blockKey is 16, 24, or 32 bytes
func NewSessionStore(hashKey, blockKey []byte) *SessionStore {
	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(86400)
	return &SessionStore{codec: codec}
}

// Save persists the session record in the response cookie.
// PRE: sess carries id, email, and role only
// POST: The session cookie is set; storage write cannot fail observably
func (ss *SessionStore) Save(w http.ResponseWriter, sess Session) error {
	encoded, err := ss.codec.Encode(sessionCookieName, sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   86400,
	})
	return nil
}

// Clear removes the session cookie. Idempotent.
func (ss *SessionStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// Read returns the session carried by the request, if any. A cookie that
// fails to decode counts as no session.
func (ss *SessionStore) Read(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}
	var sess Session
	if err := ss.codec.Decode(sessionCookieName, cookie.Value, &sess); err != nil {
		return Session{}, false
	}
	if sess.UserID == "" {
		return Session{}, false
	}
	return sess, true
}

// Auth returns middleware that extracts the session from the cookie and
// sets it in the request context. It never blocks a request; guard policies
// decide what an unauthenticated request may see.
func Auth(sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, ok := sessions.Read(r); ok {
				r = r.WithContext(context.WithValue(r.Context(), sessionContextKey, sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentSession extracts the session from the request context.
func CurrentSession(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(Session)
	return sess, ok
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}
