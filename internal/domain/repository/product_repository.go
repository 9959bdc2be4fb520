package repository

import (
	"context"

	"campustrade/internal/domain/entity"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Product, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error

	// SetStatus writes the availability status of a single product. Status
	// changes tied to request-state changes must go through the atomic
	// TradeRequestRepository methods instead.
	SetStatus(ctx context.Context, id string, status string) error
}
