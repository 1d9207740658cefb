package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository interface {
	CreateOrder(ctx context.Context, ord *Order) (primitive.ObjectID, error)
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	GetOrdersByUserID(ctx context.Context, userID string) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id string, newStatus Status) error
}

type mongoRepository struct {
	orders *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{orders: db.Collection("orders")}
}

// CreateOrder assigns the order id and timestamps and writes the document.
func (r *mongoRepository) CreateOrder(ctx context.Context, ord *Order) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	ord.ID = primitive.NewObjectID()
	ord.CreatedAt = now
	ord.UpdatedAt = now

	if _, err := r.orders.InsertOne(ctx, ord); err != nil {
		return primitive.NilObjectID, fmt.Errorf("repository: failed to insert order: %w", err)
	}

	return ord.ID, nil
}

func (r *mongoRepository) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var ord Order
	err = r.orders.FindOne(ctx, bson.M{"_id": objectID}).Decode(&ord)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by id %s: %w", id, err)
	}

	return &ord, nil
}

// GetOrdersByUserID filters by user only. Sorting and capping happen in the
// service so the collection needs no compound index.
func (r *mongoRepository) GetOrdersByUserID(ctx context.Context, userID string) ([]Order, error) {
	cursor, err := r.orders.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders for user id %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	orders := make([]Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("repository: failed to decode orders for user id %s: %w", userID, err)
	}

	return orders, nil
}

func (r *mongoRepository) UpdateOrderStatus(ctx context.Context, id string, newStatus Status) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrOrderNotFound
	}

	result, err := r.orders.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"status":     newStatus,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update order status %s: %w", id, err)
	}

	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}

	return nil
}
