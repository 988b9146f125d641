package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mauriciosalazarsh/anuncia/internal/service"
	"github.com/mauriciosalazarsh/anuncia/pkg/httpx"
)

// AuthHandler serves the credential endpoints. Session identifiers travel
// only in the session cookie; signed tokens never appear in any response.
type AuthHandler struct {
	AuthService  *service.AuthService
	SecureCookie bool
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and logs it straight in: 201 with the new
// profile and a fresh session cookie.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, sess, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setSessionCookie(w, sess, h.SecureCookie)
	httpx.WriteJSON(w, http.StatusCreated, newUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login accepts either a JSON body or a urlencoded form with email and
// password fields. The form variant exists so the per-email rate limit key
// can be read without touching the handler.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			httpx.Error(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido.")
			return
		}
		req.Email = r.PostForm.Get("email")
		req.Password = r.PostForm.Get("password")
	} else if !decodeJSON(w, r, &req) {
		return
	}

	user, sess, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setSessionCookie(w, sess, h.SecureCookie)
	httpx.WriteJSON(w, http.StatusOK, newUserResponse(user))
}

// Logout terminates the cookie's session and clears the cookie. A request
// without a cookie, or with a dead session, still logs out successfully.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := ""
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		sessionID = cookie.Value
	}

	if err := h.AuthService.Logout(r.Context(), sessionID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	clearSessionCookie(w, h.SecureCookie)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"msg": "Sesión cerrada."})
}

// Session reports who the cookie belongs to, or 401.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		writeUnauthenticated(w)
		return
	}

	user, err := h.AuthService.Validate(r.Context(), cookie.Value)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(user))
}

// decodeJSON parses the request body into v, writing a 400 and returning
// false on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido.")
		return false
	}
	return true
}
