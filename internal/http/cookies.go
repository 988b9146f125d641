package http

import (
	"net/http"
	"time"

	"github.com/mauriciosalazarsh/anuncia/internal/service"
)

const sessionCookieName = "session_id"

// setSessionCookie attaches the session identifier to the response. The
// cookie Max-Age mirrors the store TTL for browser hygiene, but the store
// entry is what actually decides whether the session is live.
func setSessionCookie(w http.ResponseWriter, sess service.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
