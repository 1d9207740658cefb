package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrProductNotFound = errors.New("product not found")

type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	EnsureSeeded(ctx context.Context, products []Product) error
}

type mongoRepository struct {
	products *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{products: db.Collection("products")}
}

func (r *mongoRepository) ListProducts(ctx context.Context) ([]Product, error) {
	cursor, err := r.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("repository: failed to decode products: %w", err)
	}

	return products, nil
}

func (r *mongoRepository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("repository: failed to select product by id %s: %w", id, err)
	}

	return &product, nil
}

// EnsureSeeded inserts the given products when the collection is empty.
func (r *mongoRepository) EnsureSeeded(ctx context.Context, products []Product) error {
	count, err := r.products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("repository: failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(products))
	for _, p := range products {
		docs = append(docs, p)
	}

	if _, err := r.products.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("repository: failed to seed products: %w", err)
	}

	log.Info().Int("count", len(products)).Msg("Seeded product catalog")
	return nil
}
