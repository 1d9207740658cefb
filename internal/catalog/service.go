package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrCatalogUnavailable indicates the catalog store could not be read.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

type Service interface {
	ListProducts(ctx context.Context, category, search string) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, category, search string) ([]Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list products from repository")
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	return Filter(products, category, search), nil
}

func (s *service) GetProductByID(ctx context.Context, id string) (*Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		log.Error().Err(err).Str("product_id", id).Msg("service: failed to fetch product by id")
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	return product, nil
}
