package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/brandforge/printshop/internal/catalog"
	"github.com/brandforge/printshop/internal/middleware"
	"github.com/brandforge/printshop/internal/order"
)

// DraftHandler exposes the order draft engine over HTTP. Every operation
// responds with the resulting draft view so the client can render without a
// follow-up read.
type DraftHandler struct {
	drafts  *order.DraftRegistry
	catalog catalog.Service
}

func NewDraftHandler(drafts *order.DraftRegistry, catalogSvc catalog.Service) *DraftHandler {
	return &DraftHandler{drafts: drafts, catalog: catalogSvc}
}

func (h *DraftHandler) draftForRequest(w http.ResponseWriter, r *http.Request) (*order.Draft, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}
	return h.drafts.Get(userID.String()), true
}

func (h *DraftHandler) HandleGetDraft(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, draft.View())
}

func (h *DraftHandler) HandleSelectProduct(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	var requestPayload struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	product, err := h.catalog.GetProductByID(r.Context(), requestPayload.ProductID)
	if err != nil {
		var clientMessage string
		if errors.Is(err, catalog.ErrProductNotFound) {
			clientMessage = "Product not found"
		} else {
			log.Error().Err(err).Str("product_id", requestPayload.ProductID).Msg("Failed to load product for draft")
			clientMessage = "Catalog is currently unavailable"
		}
		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	if err := draft.SelectProduct(product); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, draft.View())
}

func (h *DraftHandler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	var requestPayload struct {
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := draft.SetQuantity(parseQuantity(requestPayload.Quantity)); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, draft.View())
}

func (h *DraftHandler) HandleSetCustomization(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	var requestPayload struct {
		OptionID string `json:"option_id"`
		Value    string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if requestPayload.OptionID == "" {
		respondWithError(w, http.StatusBadRequest, "option_id is required")
		return
	}

	if err := draft.SetCustomization(requestPayload.OptionID, requestPayload.Value); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, draft.View())
}

func (h *DraftHandler) HandleSetLogo(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	var requestPayload order.LogoRef
	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if requestPayload.Filename == "" {
		respondWithError(w, http.StatusBadRequest, "filename is required")
		return
	}

	if err := draft.SetLogo(requestPayload); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, draft.View())
}

func (h *DraftHandler) HandleCommitItem(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	if err := draft.CommitItem(); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, draft.View())
}

func (h *DraftHandler) HandleCancelItem(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	if err := draft.Cancel(); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, draft.View())
}

func (h *DraftHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid item index")
		return
	}

	if err := draft.RemoveItem(index); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, draft.View())
}

func (h *DraftHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	if err := draft.ProceedToShipping(); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, draft.View())
}

func (h *DraftHandler) HandleSetShippingField(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	var requestPayload struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := draft.SetShippingField(requestPayload.Field, requestPayload.Value); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, draft.View())
}

func (h *DraftHandler) HandleSetNotes(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	var requestPayload struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := draft.SetNotes(requestPayload.Notes); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, draft.View())
}

func (h *DraftHandler) HandleBack(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	if err := draft.Back(); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, draft.View())
}

// parseQuantity mirrors the form-first quantity field: numbers and numeric
// strings are accepted, fractional input truncates toward zero, and anything
// unparseable counts as 0, which blocks commit instead of erroring here.
func parseQuantity(raw json.RawMessage) int {
	s := strings.TrimSpace(string(raw))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" || s == "null" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
