package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	"campustrade/pkg/errors"
)

type firestoreTransactionRepository struct {
	client *firestore.Client
}

func NewFirestoreTransactionRepository(client *firestore.Client) repository.TransactionRepository {
	return &firestoreTransactionRepository{
		client: client,
	}
}

func (r *firestoreTransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	doc, err := r.client.Collection("transactions").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Transaction", err)
		}
		return nil, errors.Internal("Failed to get transaction", err)
	}

	var txn entity.Transaction
	if err := doc.DataTo(&txn); err != nil {
		return nil, errors.Internal("Failed to parse transaction data", err)
	}

	return &txn, nil
}

func (r *firestoreTransactionRepository) GetByRequestID(ctx context.Context, requestID string) (*entity.Transaction, error) {
	iter := r.client.Collection("transactions").
		Where("requestId", "==", requestID).Limit(1).Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Transaction", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get transaction", err)
	}

	var txn entity.Transaction
	if err := doc.DataTo(&txn); err != nil {
		return nil, errors.Internal("Failed to parse transaction data", err)
	}

	return &txn, nil
}

func (r *firestoreTransactionRepository) ListByUserID(ctx context.Context, userID string, role string, limit, offset int) ([]*entity.Transaction, int64, error) {
	field := "buyerId"
	if role == "seller" {
		field = "sellerId"
	}

	query := r.client.Collection("transactions").
		Where(field, "==", userID).
		OrderBy("completedAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count transactions", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var transactions []*entity.Transaction

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate transactions", err)
		}

		var txn entity.Transaction
		if err := doc.DataTo(&txn); err != nil {
			return nil, 0, errors.Internal("Failed to parse transaction data", err)
		}
		transactions = append(transactions, &txn)
	}

	return transactions, total, nil
}

func (r *firestoreTransactionRepository) SetReviewed(ctx context.Context, id string, reviewType string) error {
	field := "buyerReviewed"
	if reviewType == entity.ReviewTypeBuyer {
		// A buyer_review targets the buyer, so the seller is the reviewer.
		field = "sellerReviewed"
	}

	_, err := r.client.Collection("transactions").Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Transaction", err)
		}
		return errors.Internal("Failed to update transaction review flag", err)
	}

	return nil
}
