package usecase

import (
	"context"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	"campustrade/pkg/errors"
)

// TransactionUseCase exposes read access to the ledger. Rows are written only
// by the trade request engine's finalize step.
type TransactionUseCase struct {
	transactionRepo repository.TransactionRepository
}

func NewTransactionUseCase(transactionRepo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

func (uc *TransactionUseCase) GetByID(ctx context.Context, callerID, transactionID string) (*entity.Transaction, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if txn.BuyerID != callerID && txn.SellerID != callerID {
		return nil, errors.Forbidden("You don't have permission to view this transaction", nil)
	}

	return txn, nil
}

// GetByRequest resolves the ledger row written when the given request
// completed.
func (uc *TransactionUseCase) GetByRequest(ctx context.Context, callerID, requestID string) (*entity.Transaction, error) {
	txn, err := uc.transactionRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if txn.BuyerID != callerID && txn.SellerID != callerID {
		return nil, errors.Forbidden("You don't have permission to view this transaction", nil)
	}

	return txn, nil
}

func (uc *TransactionUseCase) List(ctx context.Context, callerID, role string, page, limit int) ([]*entity.Transaction, int64, error) {
	if role != "buyer" && role != "seller" {
		role = "buyer"
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.transactionRepo.ListByUserID(ctx, callerID, role, limit, offset)
}
