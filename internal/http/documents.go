package http

import (
	"net/http"

	"github.com/mauriciosalazarsh/anuncia/internal/service"
	"github.com/mauriciosalazarsh/anuncia/pkg/httpx"
)

// DocumentsHandler serves the authenticated user's generated documents.
type DocumentsHandler struct {
	DocumentService *service.DocumentService
}

type documentRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())
	offset, limit := pageParams(r)

	documents, err := h.DocumentService.List(r.Context(), actor.ID, offset, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newDocumentListResponse(documents))
}

func (h *DocumentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())

	var req documentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	document, err := h.DocumentService.Create(r.Context(), actor.ID, service.DocumentParams{
		Type:    req.Type,
		Content: req.Content,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, newDocumentResponse(document))
}

func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())

	document, err := h.DocumentService.Get(r.Context(), actor.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newDocumentResponse(document))
}

func (h *DocumentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())

	var req documentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	document, err := h.DocumentService.Update(r.Context(), actor.ID, r.PathValue("id"), service.DocumentParams{
		Type:    req.Type,
		Content: req.Content,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newDocumentResponse(document))
}

func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())

	if err := h.DocumentService.Delete(r.Context(), actor.ID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
