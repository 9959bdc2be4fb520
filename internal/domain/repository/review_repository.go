package repository

import (
	"context"

	"campustrade/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByTransactionAndReviewer(ctx context.Context, transactionID, reviewerID string) (*entity.Review, error)
	ListByTarget(ctx context.Context, targetID string, reviewType string, limit, offset int) ([]*entity.Review, int64, error)
}
