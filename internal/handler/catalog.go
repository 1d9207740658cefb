package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/brandforge/printshop/internal/catalog"
)

type CatalogHandler struct {
	service catalog.Service
}

func NewCatalogHandler(service catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	products, err := h.service.ListProducts(r.Context(), category, search)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products via service")
		respondWithError(w, mapErrorToStatusCode(err), "Catalog is currently unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	product, err := h.service.GetProductByID(r.Context(), id)
	if err != nil {
		var clientMessage string
		if errors.Is(err, catalog.ErrProductNotFound) {
			clientMessage = "Product not found"
		} else {
			log.Error().Err(err).Str("product_id", id).Msg("Failed to get product via service")
			clientMessage = "Catalog is currently unavailable"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}
