package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	"campustrade/pkg/errors"
)

type firestoreTradeRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreTradeRequestRepository(client *firestore.Client) repository.TradeRequestRepository {
	return &firestoreTradeRequestRepository{
		client: client,
	}
}

func (r *firestoreTradeRequestRepository) GetByID(ctx context.Context, id string) (*entity.TradeRequest, error) {
	doc, err := r.client.Collection("tradeRequests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Trade request", err)
		}
		return nil, errors.Internal("Failed to get trade request", err)
	}

	var request entity.TradeRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse trade request data", err)
	}

	return &request, nil
}

func (r *firestoreTradeRequestRepository) list(ctx context.Context, field, value, status string, limit, offset int) ([]*entity.TradeRequest, int64, error) {
	query := r.client.Collection("tradeRequests").Where(field, "==", value)
	if status != "" {
		query = query.Where("status", "==", status)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count trade requests", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var requests []*entity.TradeRequest

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate trade requests", err)
		}

		var request entity.TradeRequest
		if err := doc.DataTo(&request); err != nil {
			return nil, 0, errors.Internal("Failed to parse trade request data", err)
		}
		requests = append(requests, &request)
	}

	return requests, total, nil
}

func (r *firestoreTradeRequestRepository) ListByRequester(ctx context.Context, requesterID string, status string, limit, offset int) ([]*entity.TradeRequest, int64, error) {
	return r.list(ctx, "requesterId", requesterID, status, limit, offset)
}

func (r *firestoreTradeRequestRepository) ListBySeller(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.TradeRequest, int64, error) {
	return r.list(ctx, "sellerId", sellerID, status, limit, offset)
}

func (r *firestoreTradeRequestRepository) CountActiveByProduct(ctx context.Context, productID string) (int, error) {
	active := []string{entity.RequestStatusPending, entity.RequestStatusAccepted}

	count := 0
	for _, field := range []string{"targetProductId", "offeredProductId"} {
		docs, err := r.client.Collection("tradeRequests").
			Where(field, "==", productID).
			Where("status", "in", active).
			Documents(ctx).GetAll()
		if err != nil {
			return 0, errors.Internal("Failed to count active trade requests", err)
		}
		count += len(docs)
	}

	return count, nil
}

func (r *firestoreTradeRequestRepository) CreateWithReservation(ctx context.Context, request *entity.TradeRequest, reserve []string) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		productRefs := make([]*firestore.DocumentRef, 0, len(reserve))

		// All reads first: Firestore transactions require reads before writes.
		for _, productID := range reserve {
			ref := r.client.Collection("products").Doc(productID)
			doc, err := tx.Get(ref)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return errors.NotFound("Product", err)
				}
				return errors.Internal("Failed to read product", err)
			}

			var product entity.Product
			if err := doc.DataTo(&product); err != nil {
				return errors.Internal("Failed to parse product data", err)
			}

			if product.Status != entity.ProductStatusAvailable {
				return errors.Conflict("Product is no longer available")
			}

			productRefs = append(productRefs, ref)
		}

		if err := tx.Set(r.client.Collection("tradeRequests").Doc(request.ID), request); err != nil {
			return errors.Internal("Failed to create trade request", err)
		}

		for _, ref := range productRefs {
			err := tx.Update(ref, []firestore.Update{
				{Path: "status", Value: entity.ProductStatusReserved},
				{Path: "updatedAt", Value: now},
			})
			if err != nil {
				return errors.Internal("Failed to reserve product", err)
			}
		}

		return nil
	})

	return err
}

func (r *firestoreTradeRequestRepository) Update(ctx context.Context, request *entity.TradeRequest) error {
	request.UpdatedAt = time.Now()

	_, err := r.client.Collection("tradeRequests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to update trade request", err)
	}

	return nil
}

func (r *firestoreTradeRequestRepository) UpdateWithProductStatus(ctx context.Context, request *entity.TradeRequest, statuses map[string]string, guardReserved bool) error {
	now := time.Now()
	request.UpdatedAt = now

	for _, newStatus := range statuses {
		if !entity.ValidProductStatus(newStatus) {
			return errors.BadRequest("Invalid product status", nil)
		}
	}

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		writable := make(map[string]*firestore.DocumentRef, len(statuses))

		for productID := range statuses {
			ref := r.client.Collection("products").Doc(productID)
			doc, err := tx.Get(ref)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return errors.NotFound("Product", err)
				}
				return errors.Internal("Failed to read product", err)
			}

			var product entity.Product
			if err := doc.DataTo(&product); err != nil {
				return errors.Internal("Failed to parse product data", err)
			}

			// A guarded write only reverts a reservation that still holds;
			// a status already advanced by another path is left alone.
			if guardReserved && product.Status != entity.ProductStatusReserved {
				continue
			}

			writable[productID] = ref
		}

		if err := tx.Set(r.client.Collection("tradeRequests").Doc(request.ID), request); err != nil {
			return errors.Internal("Failed to update trade request", err)
		}

		for productID, ref := range writable {
			err := tx.Update(ref, []firestore.Update{
				{Path: "status", Value: statuses[productID]},
				{Path: "updatedAt", Value: now},
			})
			if err != nil {
				return errors.Internal("Failed to update product status", err)
			}
		}

		return nil
	})
}

func (r *firestoreTradeRequestRepository) Finalize(ctx context.Context, request *entity.TradeRequest, statuses map[string]string, txn *entity.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}

	now := time.Now()
	request.UpdatedAt = now
	txn.CreatedAt = now

	for _, newStatus := range statuses {
		if !entity.ValidProductStatus(newStatus) {
			return errors.BadRequest("Invalid product status", nil)
		}
	}

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// The ledger holds at most one row per request.
		existing := tx.Documents(r.client.Collection("transactions").
			Where("requestId", "==", request.ID).Limit(1))
		if _, err := existing.Next(); err != iterator.Done {
			if err == nil {
				return errors.Conflict("Transaction already recorded for this request")
			}
			return errors.Internal("Failed to check transaction ledger", err)
		}

		productRefs := make([]*firestore.DocumentRef, 0, len(statuses))
		for productID := range statuses {
			ref := r.client.Collection("products").Doc(productID)
			if _, err := tx.Get(ref); err != nil {
				if status.Code(err) == codes.NotFound {
					return errors.NotFound("Product", err)
				}
				return errors.Internal("Failed to read product", err)
			}
			productRefs = append(productRefs, ref)
		}

		if err := tx.Set(r.client.Collection("tradeRequests").Doc(request.ID), request); err != nil {
			return errors.Internal("Failed to update trade request", err)
		}

		for _, ref := range productRefs {
			err := tx.Update(ref, []firestore.Update{
				{Path: "status", Value: statuses[ref.ID]},
				{Path: "updatedAt", Value: now},
			})
			if err != nil {
				return errors.Internal("Failed to update product status", err)
			}
		}

		if err := tx.Set(r.client.Collection("transactions").Doc(txn.ID), txn); err != nil {
			return errors.Internal("Failed to record transaction", err)
		}

		return nil
	})
}
