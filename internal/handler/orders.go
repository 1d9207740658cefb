package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/brandforge/printshop/internal/middleware"
	"github.com/brandforge/printshop/internal/order"
)

const defaultRecentLimit = 5

type OrderHandler struct {
	service order.Service
	drafts  *order.DraftRegistry
}

func NewOrderHandler(service order.Service, drafts *order.DraftRegistry) *OrderHandler {
	return &OrderHandler{service: service, drafts: drafts}
}

// HandleSubmitOrder finalizes the user's draft into a stored order.
func (h *OrderHandler) HandleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	draft := h.drafts.Get(userID.String())

	ord, err := h.service.SubmitDraft(r.Context(), userID.String(), draft)
	if err != nil {
		middleware.RecordOrderOperation("submit", false)

		var clientMessage string
		switch {
		case errors.Is(err, order.ErrValidation), errors.Is(err, order.ErrInvalidState):
			clientMessage = err.Error()
		case errors.Is(err, order.ErrStoreWrite):
			clientMessage = "Failed to submit order. Please try again."
		default:
			log.Error().Err(err).Msg("Failed to submit order via service")
			clientMessage = "Failed to submit order"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	middleware.RecordOrderOperation("submit", true)
	respondWithJSON(w, http.StatusCreated, ord)
}

func (h *OrderHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	orders, err := h.service.GetOrdersByUserID(r.Context(), userID.String())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) HandleRecentOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	limit := defaultRecentLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	orders, err := h.service.RecentOrders(r.Context(), userID.String(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch recent orders via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	ord, err := h.service.GetOrderByID(r.Context(), userID.String(), id)
	if err != nil {
		var clientMessage string
		if errors.Is(err, order.ErrOrderNotFound) {
			clientMessage = "Order not found"
		} else {
			log.Error().Err(err).Str("order_id", id).Msg("Failed to get order via service")
			clientMessage = "Failed to fetch order"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, ord)
}

func (h *OrderHandler) HandleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	var requestPayload struct {
		Status order.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := h.service.UpdateOrderStatus(r.Context(), userID.String(), id, requestPayload.Status)
	if err != nil {
		middleware.RecordOrderOperation("update_status", false)

		var clientMessage string
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			clientMessage = "Order not found"
		case errors.Is(err, order.ErrInvalidStatusTransition):
			clientMessage = err.Error()
		default:
			log.Error().Err(err).Str("order_id", id).Msg("Failed to update order status via service")
			clientMessage = "Failed to update order status"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	middleware.RecordOrderOperation("update_status", true)
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	stats, err := h.service.DashboardStats(r.Context(), userID.String())
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute dashboard stats via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch dashboard")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
