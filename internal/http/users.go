package http

import (
	"net/http"

	"github.com/mauriciosalazarsh/anuncia/internal/service"
	"github.com/mauriciosalazarsh/anuncia/pkg/httpx"
)

// UsersHandler serves profile reads and updates. The path ID must match the
// authenticated user; the service enforces it.
type UsersHandler struct {
	UserService *service.UserService
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())

	user, err := h.UserService.Get(r.Context(), actor.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(user))
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), actor.ID, r.PathValue("id"), service.UpdateProfileParams{
		Name:      req.Name,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(user))
}
