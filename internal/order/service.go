package order

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

var (
	// ErrUnauthenticated is returned when submission is attempted without a
	// current session.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrStoreWrite wraps a rejected order store write.
	ErrStoreWrite = errors.New("order store write failed")

	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// EventPublisher emits order lifecycle events. Publishing is fire-and-forget:
// failures are logged, never surfaced to the submitting user.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, eventType string, ord *Order) error
}

// DashboardStats is the per-user summary shown on the dashboard.
type DashboardStats struct {
	TotalOrders   int     `json:"total_orders"`
	PendingOrders int     `json:"pending_orders"`
	TotalSpent    float64 `json:"total_spent"`
	RecentOrders  []Order `json:"recent_orders"`
}

type Service interface {
	SubmitDraft(ctx context.Context, userID string, draft *Draft) (*Order, error)
	GetOrderByID(ctx context.Context, userID, id string) (*Order, error)
	GetOrdersByUserID(ctx context.Context, userID string) ([]Order, error)
	RecentOrders(ctx context.Context, userID string, limit int) ([]Order, error)
	DashboardStats(ctx context.Context, userID string) (*DashboardStats, error)
	UpdateOrderStatus(ctx context.Context, userID, orderID string, newStatus Status) error
}

type service struct {
	repo      Repository
	publisher EventPublisher
}

func NewService(repo Repository, publisher EventPublisher) Service {
	return &service{repo: repo, publisher: publisher}
}

// SubmitDraft drives the draft through submission: preconditions are checked
// synchronously, the finalized order is written once, and the draft is
// cleared only after a successful write. On a store failure the draft
// returns to the shipping form with items, address and notes intact.
func (s *service) SubmitDraft(ctx context.Context, userID string, draft *Draft) (*Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	if err := draft.BeginSubmit(); err != nil {
		return nil, err
	}

	ord := draft.BuildOrder(userID)

	if _, err := s.repo.CreateOrder(ctx, ord); err != nil {
		draft.FailSubmit()
		log.Error().Err(err).Str("user_id", userID).Msg("service: failed to create order in repository")
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	draft.CompleteSubmit()

	if err := s.publisher.PublishOrderEvent(ctx, "order.created", ord); err != nil {
		log.Warn().Err(err).Stringer("order_id", ord.ID).Msg("service: failed to publish order created event")
	}

	log.Info().
		Stringer("order_id", ord.ID).
		Str("user_id", userID).
		Float64("total_amount", ord.TotalAmount).
		Int("items", len(ord.Items)).
		Msg("service: order submitted")

	return ord, nil
}

func (s *service) GetOrderByID(ctx context.Context, userID, id string) (*Order, error) {
	ord, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Str("order_id", id).Msg("service: failed to fetch order by id")
		return nil, fmt.Errorf("service: failed to fetch order by id: %w", err)
	}

	// Users only ever see their own orders.
	if ord.UserID != userID {
		return nil, ErrOrderNotFound
	}

	return ord, nil
}

// GetOrdersByUserID returns the user's history, newest first. The sort runs
// here rather than in the store query.
func (s *service) GetOrdersByUserID(ctx context.Context, userID string) ([]Order, error) {
	orders, err := s.repo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("service: failed to fetch user orders")
		return nil, fmt.Errorf("service: failed to fetch user orders: %w", err)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

func (s *service) RecentOrders(ctx context.Context, userID string, limit int) ([]Order, error) {
	orders, err := s.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}

	return orders, nil
}

// dashboardWindow is how many of the newest orders the dashboard shows and
// aggregates over.
const dashboardWindow = 5

// DashboardStats summarizes the dashboard's recent-orders window; counts and
// total spent cover the same window, not the whole history.
func (s *service) DashboardStats(ctx context.Context, userID string) (*DashboardStats, error) {
	orders, err := s.RecentOrders(ctx, userID, dashboardWindow)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{RecentOrders: orders}
	for _, ord := range orders {
		stats.TotalOrders++
		if ord.Status == StatusPending {
			stats.PendingOrders++
		}
		stats.TotalSpent += ord.TotalAmount
	}

	return stats, nil
}

// UpdateOrderStatus validates the fulfillment transition against the allowed
// transitions table before writing. Setting the current status again is a
// no-op. Like GetOrderByID, other users' orders are indistinguishable from
// missing ones.
func (s *service) UpdateOrderStatus(ctx context.Context, userID, orderID string, newStatus Status) error {
	current, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		log.Error().Err(err).Str("order_id", orderID).Msg("service: failed to get order for status update")
		return fmt.Errorf("service: failed to get order for status update: %w", err)
	}

	if current.UserID != userID {
		return ErrOrderNotFound
	}

	if current.Status == newStatus {
		log.Info().Str("order_id", orderID).Stringer("status", newStatus).Msg("service: order status already set, no update needed")
		return nil
	}

	transitions, ok := allowedTransitions[current.Status]
	if !ok || !transitions[newStatus] {
		log.Warn().
			Str("order_id", orderID).
			Stringer("current_status", current.Status).
			Stringer("new_status", newStatus).
			Msg("service: invalid status transition attempt")
		return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, current.Status, newStatus)
	}

	if err := s.repo.UpdateOrderStatus(ctx, orderID, newStatus); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		log.Error().Err(err).Str("order_id", orderID).Msg("service: failed to update order status")
		return fmt.Errorf("service: failed to update order status: %w", err)
	}

	current.Status = newStatus
	if err := s.publisher.PublishOrderEvent(ctx, "order.status_changed", current); err != nil {
		log.Warn().Err(err).Str("order_id", orderID).Msg("service: failed to publish status changed event")
	}

	log.Info().
		Str("order_id", orderID).
		Stringer("new_status", newStatus).
		Msg("service: order status updated")

	return nil
}
