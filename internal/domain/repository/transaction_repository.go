package repository

import (
	"context"

	"campustrade/internal/domain/entity"
)

type TransactionRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	GetByRequestID(ctx context.Context, requestID string) (*entity.Transaction, error)
	ListByUserID(ctx context.Context, userID string, role string, limit, offset int) ([]*entity.Transaction, int64, error)

	// SetReviewed marks one party's review bookkeeping flag. The ledger row is
	// otherwise immutable.
	SetReviewed(ctx context.Context, id string, reviewType string) error
}
