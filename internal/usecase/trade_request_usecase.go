package usecase

import (
	"context"
	"time"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	"campustrade/internal/domain/service"
	"campustrade/internal/infrastructure/lock"
	"campustrade/pkg/errors"
	"campustrade/pkg/logger"
)

// TradeRequestUseCase owns the request lifecycle state machine and the
// product reservation protocol. Every read-then-write on product or request
// status runs inside a keyed critical section, and every multi-entity write
// goes through an atomic repository unit, so no interleaving can double-book
// a product or complete a request twice.
type TradeRequestUseCase struct {
	requestRepo     repository.TradeRequestRepository
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository
	notifier        service.Notifier
	locks           *lock.KeyedMutex
}

func NewTradeRequestUseCase(
	requestRepo repository.TradeRequestRepository,
	productRepo repository.ProductRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	notifier service.Notifier,
) *TradeRequestUseCase {
	return &TradeRequestUseCase{
		requestRepo:     requestRepo,
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		locks:           lock.NewKeyedMutex(),
	}
}

type CreateTradeRequestInput struct {
	TargetProductID  string
	Type             string
	OfferPrice       *float64
	OfferedProductID string
	Message          string
}

func (uc *TradeRequestUseCase) Create(ctx context.Context, requesterID string, input CreateTradeRequestInput) (*entity.TradeRequest, error) {
	// Field validation happens before any lock is taken.
	if input.Type != entity.RequestTypePurchase && input.Type != entity.RequestTypeTrade {
		return nil, errors.Validation("type must be one of: purchase trade")
	}
	if input.Type == entity.RequestTypePurchase {
		if input.OfferPrice == nil {
			return nil, errors.Validation("offer_price is required for purchase requests")
		}
		if *input.OfferPrice <= 0 {
			return nil, errors.Validation("offer_price must be positive")
		}
	}
	if input.Type == entity.RequestTypeTrade {
		if input.OfferedProductID == "" {
			return nil, errors.Validation("offered_product_id is required for trade requests")
		}
		if input.OfferedProductID == input.TargetProductID {
			return nil, errors.Validation("offered product cannot be the target product")
		}
	}

	lockKeys := []string{input.TargetProductID}
	if input.Type == entity.RequestTypeTrade {
		lockKeys = append(lockKeys, input.OfferedProductID)
	}
	unlock := uc.locks.Lock(lockKeys...)
	defer unlock()

	target, err := uc.productRepo.GetByID(ctx, input.TargetProductID)
	if err != nil {
		return nil, err
	}

	if target.SellerID == requesterID {
		return nil, errors.Forbidden("Cannot create a request against your own product", nil)
	}

	owner, err := uc.userRepo.GetByID(ctx, target.SellerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsActive() {
		return nil, errors.BadRequest("Product owner account is deactivated", nil)
	}

	if err := uc.checkTargetAvailable(ctx, target); err != nil {
		return nil, err
	}

	if input.Type == entity.RequestTypePurchase {
		if !target.AllowsPurchase() {
			return nil, errors.Validation("product does not accept purchase requests")
		}
	} else {
		if !target.AllowsTrade() {
			return nil, errors.Validation("product does not accept trade requests")
		}
		if err := uc.checkOfferedProduct(ctx, requesterID, input.OfferedProductID); err != nil {
			return nil, err
		}
	}

	request := &entity.TradeRequest{
		RequesterID:      requesterID,
		SellerID:         target.SellerID,
		TargetProductID:  target.ID,
		Type:             input.Type,
		OfferPrice:       input.OfferPrice,
		OfferedProductID: input.OfferedProductID,
		Message:          input.Message,
		Status:           entity.RequestStatusPending,
	}

	if err := uc.requestRepo.CreateWithReservation(ctx, request, request.ProductIDs()); err != nil {
		return nil, err
	}

	uc.notify(ctx, service.EventRequestCreated, request, "")

	return request, nil
}

func (uc *TradeRequestUseCase) checkTargetAvailable(ctx context.Context, target *entity.Product) error {
	switch target.Status {
	case entity.ProductStatusAvailable:
	case entity.ProductStatusReserved:
		return errors.Conflict("Product is reserved by another request")
	default:
		return errors.InvalidState("Product is not available for requests", target.Status)
	}

	active, err := uc.requestRepo.CountActiveByProduct(ctx, target.ID)
	if err != nil {
		return err
	}
	if active > 0 {
		return errors.Conflict("Product already has an active request")
	}

	return nil
}

func (uc *TradeRequestUseCase) checkOfferedProduct(ctx context.Context, requesterID, offeredID string) error {
	offered, err := uc.productRepo.GetByID(ctx, offeredID)
	if err != nil {
		return err
	}

	if offered.SellerID != requesterID {
		return errors.Forbidden("Offered product must be owned by the requester", nil)
	}
	if offered.Status != entity.ProductStatusAvailable {
		return errors.Conflict("Offered product is not available")
	}

	active, err := uc.requestRepo.CountActiveByProduct(ctx, offeredID)
	if err != nil {
		return err
	}
	if active > 0 {
		return errors.Conflict("Offered product already has an active request")
	}

	return nil
}

func (uc *TradeRequestUseCase) Accept(ctx context.Context, ownerID, requestID string) (*entity.TradeRequest, error) {
	request, unlock, err := uc.lockRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if request.SellerID != ownerID {
		return nil, errors.Forbidden("Only the product owner can accept this request", nil)
	}
	if request.Status != entity.RequestStatusPending {
		return nil, errors.InvalidState("Only pending requests can be accepted", request.Status)
	}

	// Sanity check: an active request must hold its reservation.
	target, err := uc.productRepo.GetByID(ctx, request.TargetProductID)
	if err != nil {
		return nil, err
	}
	if target.Status != entity.ProductStatusReserved {
		return nil, errors.InvalidState("Target product reservation is out of sync", target.Status)
	}

	now := time.Now()
	request.Status = entity.RequestStatusAccepted
	request.RespondedAt = &now

	// Re-asserting reserved is idempotent.
	statuses := make(map[string]string, 2)
	for _, id := range request.ProductIDs() {
		statuses[id] = entity.ProductStatusReserved
	}

	if err := uc.requestRepo.UpdateWithProductStatus(ctx, request, statuses, false); err != nil {
		return nil, err
	}

	uc.notify(ctx, service.EventRequestAccepted, request, "")

	return request, nil
}

func (uc *TradeRequestUseCase) Reject(ctx context.Context, ownerID, requestID string) (*entity.TradeRequest, error) {
	request, unlock, err := uc.lockRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if request.SellerID != ownerID {
		return nil, errors.Forbidden("Only the product owner can reject this request", nil)
	}
	if request.Terminal() {
		return nil, errors.InvalidState("Request is already closed", request.Status)
	}

	now := time.Now()
	request.Status = entity.RequestStatusRejected
	request.RespondedAt = &now
	request.ClosedAt = &now

	if err := uc.releaseReservations(ctx, request); err != nil {
		return nil, err
	}

	uc.notify(ctx, service.EventRequestRejected, request, "")

	return request, nil
}

func (uc *TradeRequestUseCase) Cancel(ctx context.Context, requesterID, requestID string) (*entity.TradeRequest, error) {
	request, unlock, err := uc.lockRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if request.RequesterID != requesterID {
		return nil, errors.Forbidden("Only the requester can cancel this request", nil)
	}
	if !request.Active() {
		return nil, errors.InvalidState("Only pending or accepted requests can be cancelled", request.Status)
	}

	now := time.Now()
	request.Status = entity.RequestStatusCancelled
	request.ClosedAt = &now

	if err := uc.releaseReservations(ctx, request); err != nil {
		return nil, err
	}

	uc.notify(ctx, service.EventRequestCancelled, request, "")

	return request, nil
}

// releaseReservations reverts the request's products to available. The write
// is guarded: a product whose status has already moved past reserved is left
// untouched.
func (uc *TradeRequestUseCase) releaseReservations(ctx context.Context, request *entity.TradeRequest) error {
	statuses := make(map[string]string, 2)
	for _, id := range request.ProductIDs() {
		statuses[id] = entity.ProductStatusAvailable
	}

	return uc.requestRepo.UpdateWithProductStatus(ctx, request, statuses, true)
}

type HandoffResult struct {
	Completed        bool   `json:"completed"`
	AlreadyConfirmed bool   `json:"already_confirmed"`
	TransactionID    string `json:"transaction_id,omitempty"`
	BuyerConfirmed   bool   `json:"buyer_confirmed"`
	SellerConfirmed  bool   `json:"seller_confirmed"`
	BuyerID          string `json:"buyer_id"`
	SellerID         string `json:"seller_id"`
}

// ConfirmHandoff records the caller's attestation that the physical exchange
// happened. When the second confirmation arrives the request finalizes in the
// same critical section: completed status, terminal product statuses, and
// exactly one ledger row.
func (uc *TradeRequestUseCase) ConfirmHandoff(ctx context.Context, callerID, requestID string) (*HandoffResult, error) {
	request, unlock, err := uc.lockRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	isBuyer := request.RequesterID == callerID
	isSeller := request.SellerID == callerID
	if !isBuyer && !isSeller {
		return nil, errors.Forbidden("Only the buyer or the seller can confirm the handoff", nil)
	}

	if request.Status != entity.RequestStatusAccepted {
		return nil, errors.InvalidState("Handoff can only be confirmed on an accepted request", request.Status)
	}

	result := &HandoffResult{
		BuyerID:  request.RequesterID,
		SellerID: request.SellerID,
	}

	now := time.Now()
	if isBuyer {
		if request.BuyerConfirmed {
			result.AlreadyConfirmed = true
			result.BuyerConfirmed = request.BuyerConfirmed
			result.SellerConfirmed = request.SellerConfirmed
			return result, nil
		}
		request.BuyerConfirmed = true
		request.BuyerConfirmedAt = &now
	} else {
		if request.SellerConfirmed {
			result.AlreadyConfirmed = true
			result.BuyerConfirmed = request.BuyerConfirmed
			result.SellerConfirmed = request.SellerConfirmed
			return result, nil
		}
		request.SellerConfirmed = true
		request.SellerConfirmedAt = &now
	}

	result.BuyerConfirmed = request.BuyerConfirmed
	result.SellerConfirmed = request.SellerConfirmed

	if !request.BuyerConfirmed || !request.SellerConfirmed {
		if err := uc.requestRepo.Update(ctx, request); err != nil {
			return nil, err
		}
		uc.notify(ctx, service.EventHandoffConfirmed, request, "")
		return result, nil
	}

	txn, err := uc.finalize(ctx, request, now)
	if err != nil {
		return nil, err
	}

	result.Completed = true
	result.TransactionID = txn.ID

	uc.notify(ctx, service.EventTransactionCompleted, request, txn.ID)

	return result, nil
}

// finalize runs with the request's locks held: both confirmations are set,
// so the request completes, the products reach their terminal status, and
// the ledger gains its single row for this request.
func (uc *TradeRequestUseCase) finalize(ctx context.Context, request *entity.TradeRequest, now time.Time) (*entity.Transaction, error) {
	request.Status = entity.RequestStatusCompleted
	request.ClosedAt = &now

	statuses := make(map[string]string, 2)
	if request.Type == entity.RequestTypePurchase {
		statuses[request.TargetProductID] = entity.ProductStatusSold
	} else {
		statuses[request.TargetProductID] = entity.ProductStatusExchanged
		statuses[request.OfferedProductID] = entity.ProductStatusExchanged
	}

	txn := &entity.Transaction{
		RequestID:        request.ID,
		TargetProductID:  request.TargetProductID,
		OfferedProductID: request.OfferedProductID,
		BuyerID:          request.RequesterID,
		SellerID:         request.SellerID,
		PaymentStatus:    entity.PaymentStatusRecorded,
		CompletedAt:      now,
	}
	if request.Type == entity.RequestTypePurchase {
		txn.TotalPrice = request.OfferPrice
	}

	if err := uc.requestRepo.Finalize(ctx, request, statuses, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

func (uc *TradeRequestUseCase) GetByID(ctx context.Context, callerID, requestID string) (*entity.TradeRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.RequesterID != callerID && request.SellerID != callerID {
		return nil, errors.Forbidden("You don't have permission to view this request", nil)
	}

	return request, nil
}

func (uc *TradeRequestUseCase) List(ctx context.Context, callerID, direction, status string, page, limit int) ([]*entity.TradeRequest, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	switch direction {
	case "received":
		return uc.requestRepo.ListBySeller(ctx, callerID, status, limit, offset)
	case "sent", "":
		return uc.requestRepo.ListByRequester(ctx, callerID, status, limit, offset)
	default:
		return nil, 0, errors.Validation("direction must be one of: sent received")
	}
}

// lockRequest reads the request, acquires the critical section covering the
// request and its products, then re-reads so the caller always validates
// against state observed under the lock.
func (uc *TradeRequestUseCase) lockRequest(ctx context.Context, requestID string) (*entity.TradeRequest, func(), error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}

	keys := append(request.ProductIDs(), request.ID)
	unlock := uc.locks.Lock(keys...)

	request, err = uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		unlock()
		return nil, nil, err
	}

	return request, unlock, nil
}

func (uc *TradeRequestUseCase) notify(ctx context.Context, eventType string, request *entity.TradeRequest, transactionID string) {
	if uc.notifier == nil {
		return
	}

	uc.notifier.Notify(ctx, service.Event{
		Type:          eventType,
		RequestID:     request.ID,
		TransactionID: transactionID,
		BuyerID:       request.RequesterID,
		SellerID:      request.SellerID,
		Payload: map[string]interface{}{
			"status":            request.Status,
			"target_product_id": request.TargetProductID,
		},
	})

	logger.Debug("Emitted %s event for request %s", eventType, request.ID)
}
