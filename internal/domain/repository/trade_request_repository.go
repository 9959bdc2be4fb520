package repository

import (
	"context"

	"campustrade/internal/domain/entity"
)

type TradeRequestRepository interface {
	GetByID(ctx context.Context, id string) (*entity.TradeRequest, error)
	ListByRequester(ctx context.Context, requesterID string, status string, limit, offset int) ([]*entity.TradeRequest, int64, error)
	ListBySeller(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.TradeRequest, int64, error)

	// CountActiveByProduct counts requests in {pending, accepted} that
	// reference the product as target or as offered item.
	CountActiveByProduct(ctx context.Context, productID string) (int, error)

	// CreateWithReservation inserts the pending request and flips every listed
	// product to reserved in one atomic unit. Every product must still be
	// available at commit time; otherwise nothing is written and a Conflict
	// error is returned.
	CreateWithReservation(ctx context.Context, request *entity.TradeRequest, reserve []string) error

	// Update writes the request document alone.
	Update(ctx context.Context, request *entity.TradeRequest) error

	// UpdateWithProductStatus writes the request and the given product
	// statuses in one atomic unit. When guardReserved is set, a product is
	// only written if its current status is still reserved, so a state
	// already advanced by another path is never clobbered.
	UpdateWithProductStatus(ctx context.Context, request *entity.TradeRequest, statuses map[string]string, guardReserved bool) error

	// Finalize completes the request, applies terminal product statuses, and
	// appends the ledger row in one atomic unit. Fails without writing if a
	// ledger row for the request already exists.
	Finalize(ctx context.Context, request *entity.TradeRequest, statuses map[string]string, txn *entity.Transaction) error
}
