package http

import (
	"net/http"
	"strconv"

	"github.com/mauriciosalazarsh/anuncia/internal/service"
	"github.com/mauriciosalazarsh/anuncia/pkg/httpx"
)

// ProductsHandler serves the authenticated user's product catalogue.
type ProductsHandler struct {
	ProductService *service.ProductService
}

type productRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Features    *string `json:"features"`
	Price       float64 `json:"price"`
}

func (req productRequest) params() service.ProductParams {
	return service.ProductParams{
		Name:        req.Name,
		Description: req.Description,
		Features:    req.Features,
		Price:       req.Price,
	}
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())
	offset, limit := pageParams(r)

	products, err := h.ProductService.List(r.Context(), actor.ID, offset, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newProductListResponse(products))
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())

	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.ProductService.Create(r.Context(), actor.ID, req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, newProductResponse(product))
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())

	product, err := h.ProductService.Get(r.Context(), actor.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newProductResponse(product))
}

func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())

	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.ProductService.Update(r.Context(), actor.ID, r.PathValue("id"), req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newProductResponse(product))
}

func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())

	if err := h.ProductService.Delete(r.Context(), actor.ID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pageParams(r *http.Request) (offset, limit int) {
	q := r.URL.Query()
	offset, _ = strconv.Atoi(q.Get("offset"))
	limit, _ = strconv.Atoi(q.Get("limit"))
	return offset, limit
}
