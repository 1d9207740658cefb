package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brandforge/printshop/internal/order"
)

type mockOrderRepository struct {
	createOrderFunc       func(ctx context.Context, ord *order.Order) (primitive.ObjectID, error)
	getOrderByIDFunc      func(ctx context.Context, id string) (*order.Order, error)
	getOrdersByUserIDFunc func(ctx context.Context, userID string) ([]order.Order, error)
	updateOrderStatusFunc func(ctx context.Context, id string, newStatus order.Status) error
}

func (m *mockOrderRepository) CreateOrder(ctx context.Context, ord *order.Order) (primitive.ObjectID, error) {
	return m.createOrderFunc(ctx, ord)
}

func (m *mockOrderRepository) GetOrderByID(ctx context.Context, id string) (*order.Order, error) {
	return m.getOrderByIDFunc(ctx, id)
}

func (m *mockOrderRepository) GetOrdersByUserID(ctx context.Context, userID string) ([]order.Order, error) {
	return m.getOrdersByUserIDFunc(ctx, userID)
}

func (m *mockOrderRepository) UpdateOrderStatus(ctx context.Context, id string, newStatus order.Status) error {
	return m.updateOrderStatusFunc(ctx, id, newStatus)
}

var _ order.Repository = (*mockOrderRepository)(nil)

type mockPublisher struct {
	events []string
	err    error
}

func (m *mockPublisher) PublishOrderEvent(ctx context.Context, eventType string, ord *order.Order) error {
	m.events = append(m.events, eventType)
	return m.err
}

func submittableDraft(t *testing.T) *order.Draft {
	t.Helper()

	d := order.NewDraft()
	require.NoError(t, d.SelectProduct(testProduct()))
	require.NoError(t, d.SetQuantity(50))
	require.NoError(t, d.CommitItem())
	require.NoError(t, d.ProceedToShipping())
	fillShipping(t, d)
	return d
}

func TestOrderService_SubmitDraft(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var created *order.Order
		repo := &mockOrderRepository{
			createOrderFunc: func(ctx context.Context, ord *order.Order) (primitive.ObjectID, error) {
				created = ord
				ord.ID = primitive.NewObjectID()
				ord.CreatedAt = time.Now().UTC()
				ord.UpdatedAt = ord.CreatedAt
				return ord.ID, nil
			},
		}
		publisher := &mockPublisher{}
		svc := order.NewService(repo, publisher)

		draft := submittableDraft(t)
		ord, err := svc.SubmitDraft(context.Background(), "user-1", draft)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, order.StatusPending, ord.Status)
		assert.Equal(t, "user-1", ord.UserID)
		assert.InDelta(t, 125.00, ord.TotalAmount, 1e-9)
		assert.False(t, ord.ID.IsZero(), "store assigns the order id")

		assert.Equal(t, order.StateSelectingProduct, draft.State(), "draft resets after success")
		assert.Len(t, draft.Items(), 0)

		assert.Equal(t, []string{"order.created"}, publisher.events)
	})

	t.Run("store_write_failure_preserves_draft", func(t *testing.T) {
		repo := &mockOrderRepository{
			createOrderFunc: func(ctx context.Context, ord *order.Order) (primitive.ObjectID, error) {
				return primitive.NilObjectID, errors.New("connection reset")
			},
		}
		publisher := &mockPublisher{}
		svc := order.NewService(repo, publisher)

		draft := submittableDraft(t)
		_, err := svc.SubmitDraft(context.Background(), "user-1", draft)

		assert.ErrorIs(t, err, order.ErrStoreWrite)
		assert.Equal(t, order.StateReadyForShipping, draft.State(), "failed submit returns to shipping")
		assert.Len(t, draft.Items(), 1, "items survive a failed submit")
		assert.Equal(t, "1 Main St", draft.View().ShippingAddress.Street)
		assert.Empty(t, publisher.events)
	})

	t.Run("missing_address_never_reaches_store", func(t *testing.T) {
		storeCalled := false
		repo := &mockOrderRepository{
			createOrderFunc: func(ctx context.Context, ord *order.Order) (primitive.ObjectID, error) {
				storeCalled = true
				return primitive.NewObjectID(), nil
			},
		}
		svc := order.NewService(repo, &mockPublisher{})

		draft := order.NewDraft()
		require.NoError(t, draft.SelectProduct(testProduct()))
		require.NoError(t, draft.CommitItem())
		require.NoError(t, draft.ProceedToShipping())
		// street left empty
		require.NoError(t, draft.SetShippingField("city", "Springfield"))
		require.NoError(t, draft.SetShippingField("state", "IL"))
		require.NoError(t, draft.SetShippingField("zip_code", "62704"))

		_, err := svc.SubmitDraft(context.Background(), "user-1", draft)

		assert.ErrorIs(t, err, order.ErrValidation)
		assert.False(t, storeCalled, "no write is issued on a validation failure")
		assert.Equal(t, order.StateReadyForShipping, draft.State())
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := order.NewService(&mockOrderRepository{}, &mockPublisher{})

		_, err := svc.SubmitDraft(context.Background(), "", submittableDraft(t))
		assert.ErrorIs(t, err, order.ErrUnauthenticated)
	})

	t.Run("publish_failure_does_not_fail_submission", func(t *testing.T) {
		repo := &mockOrderRepository{
			createOrderFunc: func(ctx context.Context, ord *order.Order) (primitive.ObjectID, error) {
				ord.ID = primitive.NewObjectID()
				return ord.ID, nil
			},
		}
		svc := order.NewService(repo, &mockPublisher{err: errors.New("broker down")})

		_, err := svc.SubmitDraft(context.Background(), "user-1", submittableDraft(t))
		assert.NoError(t, err)
	})
}

func ordersFixture() []order.Order {
	base := time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC)
	return []order.Order{
		{ID: primitive.NewObjectID(), UserID: "user-1", TotalAmount: 125.00, Status: order.StatusPending, CreatedAt: base},
		{ID: primitive.NewObjectID(), UserID: "user-1", TotalAmount: 300.00, Status: order.StatusShipped, CreatedAt: base.Add(48 * time.Hour)},
		{ID: primitive.NewObjectID(), UserID: "user-1", TotalAmount: 80.00, Status: order.StatusPending, CreatedAt: base.Add(24 * time.Hour)},
	}
}

func TestOrderService_GetOrdersByUserID_SortsNewestFirst(t *testing.T) {
	repo := &mockOrderRepository{
		getOrdersByUserIDFunc: func(ctx context.Context, userID string) ([]order.Order, error) {
			return ordersFixture(), nil
		},
	}
	svc := order.NewService(repo, &mockPublisher{})

	orders, err := svc.GetOrdersByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, 300.00, orders[0].TotalAmount)
	assert.Equal(t, 80.00, orders[1].TotalAmount)
	assert.Equal(t, 125.00, orders[2].TotalAmount)
}

func TestOrderService_RecentOrders_CapsResult(t *testing.T) {
	repo := &mockOrderRepository{
		getOrdersByUserIDFunc: func(ctx context.Context, userID string) ([]order.Order, error) {
			return ordersFixture(), nil
		},
	}
	svc := order.NewService(repo, &mockPublisher{})

	orders, err := svc.RecentOrders(context.Background(), "user-1", 2)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 300.00, orders[0].TotalAmount, "cap keeps the newest orders")
}

func TestOrderService_DashboardStats(t *testing.T) {
	t.Run("short_history", func(t *testing.T) {
		repo := &mockOrderRepository{
			getOrdersByUserIDFunc: func(ctx context.Context, userID string) ([]order.Order, error) {
				return ordersFixture(), nil
			},
		}
		svc := order.NewService(repo, &mockPublisher{})

		stats, err := svc.DashboardStats(context.Background(), "user-1")
		require.NoError(t, err)

		assert.Equal(t, 3, stats.TotalOrders)
		assert.Equal(t, 2, stats.PendingOrders)
		assert.InDelta(t, 505.00, stats.TotalSpent, 1e-9)
		assert.Len(t, stats.RecentOrders, 3)
	})

	t.Run("aggregates_only_the_recent_window", func(t *testing.T) {
		base := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
		history := make([]order.Order, 0, 7)
		for i := 0; i < 7; i++ {
			history = append(history, order.Order{
				ID:          primitive.NewObjectID(),
				UserID:      "user-1",
				TotalAmount: 10.00,
				Status:      order.StatusPending,
				CreatedAt:   base.Add(time.Duration(i) * time.Hour),
			})
		}
		repo := &mockOrderRepository{
			getOrdersByUserIDFunc: func(ctx context.Context, userID string) ([]order.Order, error) {
				return history, nil
			},
		}
		svc := order.NewService(repo, &mockPublisher{})

		stats, err := svc.DashboardStats(context.Background(), "user-1")
		require.NoError(t, err)

		// Counts and spend cover the 5 newest orders, not the whole history.
		assert.Equal(t, 5, stats.TotalOrders)
		assert.Equal(t, 5, stats.PendingOrders)
		assert.InDelta(t, 50.00, stats.TotalSpent, 1e-9)
		require.Len(t, stats.RecentOrders, 5)
		assert.Equal(t, base.Add(6*time.Hour), stats.RecentOrders[0].CreatedAt)
	})
}

func TestOrderService_GetOrderByID_OwnershipEnforced(t *testing.T) {
	orderID := primitive.NewObjectID()
	repo := &mockOrderRepository{
		getOrderByIDFunc: func(ctx context.Context, id string) (*order.Order, error) {
			return &order.Order{ID: orderID, UserID: "user-2"}, nil
		},
	}
	svc := order.NewService(repo, &mockPublisher{})

	_, err := svc.GetOrderByID(context.Background(), "user-1", orderID.Hex())
	assert.ErrorIs(t, err, order.ErrOrderNotFound, "other users' orders look like not-found")
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name          string
		owner         string
		currentStatus order.Status
		newStatus     order.Status
		wantErr       error
		wantUpdated   bool
	}{
		{
			name:          "pending_to_confirmed",
			currentStatus: order.StatusPending,
			newStatus:     order.StatusConfirmed,
			wantUpdated:   true,
		},
		{
			name:          "shipped_to_delivered",
			currentStatus: order.StatusShipped,
			newStatus:     order.StatusDelivered,
			wantUpdated:   true,
		},
		{
			name:          "cancel_before_delivery",
			currentStatus: order.StatusInProduction,
			newStatus:     order.StatusCancelled,
			wantUpdated:   true,
		},
		{
			name:          "delivered_is_terminal",
			currentStatus: order.StatusDelivered,
			newStatus:     order.StatusCancelled,
			wantErr:       order.ErrInvalidStatusTransition,
		},
		{
			name:          "no_skipping_ahead",
			currentStatus: order.StatusPending,
			newStatus:     order.StatusShipped,
			wantErr:       order.ErrInvalidStatusTransition,
		},
		{
			name:          "same_status_is_noop",
			currentStatus: order.StatusPending,
			newStatus:     order.StatusPending,
		},
		{
			name:          "other_users_orders_look_missing",
			owner:         "user-2",
			currentStatus: order.StatusPending,
			newStatus:     order.StatusConfirmed,
			wantErr:       order.ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner := tt.owner
			if owner == "" {
				owner = "user-1"
			}

			updated := false
			repo := &mockOrderRepository{
				getOrderByIDFunc: func(ctx context.Context, id string) (*order.Order, error) {
					return &order.Order{ID: primitive.NewObjectID(), UserID: owner, Status: tt.currentStatus}, nil
				},
				updateOrderStatusFunc: func(ctx context.Context, id string, newStatus order.Status) error {
					updated = true
					return nil
				},
			}
			svc := order.NewService(repo, &mockPublisher{})

			err := svc.UpdateOrderStatus(context.Background(), "user-1", primitive.NewObjectID().Hex(), tt.newStatus)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantUpdated, updated)
		})
	}
}
