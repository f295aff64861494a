// internal/server/handlers/cookie.go

package handlers

import (
	"net/http"
	"time"

	"listingseo/internal/service/session"
)

// SessionCookieName is the cookie carrying the session identifier
const SessionCookieName = "listing_session"

// CookieConfig controls how the session cookie is issued
type CookieConfig struct {
	TTL    time.Duration
	Secure bool
}

// sessionID returns the caller's session identifier, if it carries a valid one
func sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || !session.ValidSessionID(c.Value) {
		return "", false
	}
	return c.Value, true
}

// ensureSession returns the caller's session identifier, minting a new one
// and its cookie when the request carries none
func ensureSession(r *http.Request, cfg CookieConfig) (string, *http.Cookie) {
	if id, ok := sessionID(r); ok {
		return id, nil
	}

	id := session.NewSessionID()
	return id, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
