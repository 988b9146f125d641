package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mauriciosalazarsh/anuncia/internal/domain"
	"github.com/mauriciosalazarsh/anuncia/internal/service"
	"github.com/mauriciosalazarsh/anuncia/pkg/httpx"
	"github.com/mauriciosalazarsh/anuncia/pkg/slogx"
)

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       *string   `json:"bio,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Features    *string   `json:"features,omitempty"`
	Price       float64   `json:"price"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Features:    p.Features,
		Price:       p.Price,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newProductListResponse(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, newProductResponse(p))
	}
	return out
}

type documentResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func newDocumentResponse(d domain.Document) documentResponse {
	return documentResponse{
		ID:        d.ID,
		Type:      d.Type,
		Content:   d.Content,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt,
	}
}

func newDocumentListResponse(documents []domain.Document) []documentResponse {
	out := make([]documentResponse, 0, len(documents))
	for _, d := range documents {
		out = append(out, newDocumentResponse(d))
	}
	return out
}

// writeServiceError translates service-layer sentinel errors into HTTP
// responses. Anything unrecognised is a 500 with a generic body; internals
// stay in the logs.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.Error(w, http.StatusBadRequest, "Credenciales inválidas.")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.Error(w, http.StatusBadRequest, "El email ya está registrado.")
	case errors.Is(err, service.ErrInvalidInput):
		httpx.Error(w, http.StatusUnprocessableEntity, inputDetail(err))
	case errors.Is(err, service.ErrSessionInvalid):
		writeUnauthenticated(w)
	case errors.Is(err, service.ErrForbidden):
		httpx.Error(w, http.StatusForbidden, "No autorizado.")
	case errors.Is(err, service.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "No encontrado.")
	case errors.Is(err, service.ErrSessionStore):
		slogx.FromContext(r.Context()).Error("session store failure", "error", err)
		httpx.Error(w, http.StatusServiceUnavailable, "Servicio no disponible. Intenta de nuevo.")
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "Error interno del servidor.")
	}
}

// inputDetail strips the sentinel prefix so the client sees only the
// human-readable part of a validation error.
func inputDetail(err error) string {
	msg := err.Error()
	if _, rest, ok := strings.Cut(msg, ": "); ok {
		return rest
	}
	return msg
}
