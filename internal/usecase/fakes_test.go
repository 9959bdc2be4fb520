package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/service"
	"campustrade/pkg/errors"
)

// memStore backs the fake repositories. A single mutex makes every
// repository call atomic, mirroring the Firestore transactions the real
// adapters run.
type memStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	requests map[string]*entity.TradeRequest
	txns     map[string]*entity.Transaction
	users    map[string]*entity.User
	reviews  map[string]*entity.Review
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		requests: make(map[string]*entity.TradeRequest),
		txns:     make(map[string]*entity.Transaction),
		users:    make(map[string]*entity.User),
		reviews:  make(map[string]*entity.Review),
	}
}

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	return &cp
}

func copyRequest(r *entity.TradeRequest) *entity.TradeRequest {
	cp := *r
	return &cp
}

func copyTxn(t *entity.Transaction) *entity.Transaction {
	cp := *t
	return &cp
}

type fakeProductRepo struct {
	s *memStore
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	f.s.products[product.ID] = copyProduct(product)
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	product, ok := f.s.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	return copyProduct(product), nil
}

func (f *fakeProductRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Product, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []*entity.Product
	for _, p := range f.s.products {
		if status, ok := filter["status"]; ok && p.Status != status {
			continue
		}
		if category, ok := filter["categoryId"]; ok && p.CategoryID != category {
			continue
		}
		out = append(out, copyProduct(p))
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Product, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []*entity.Product
	for _, p := range f.s.products {
		if p.SellerID != sellerID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, copyProduct(p))
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.products[product.ID]; !ok {
		return errors.NotFound("Product", nil)
	}
	f.s.products[product.ID] = copyProduct(product)
	return nil
}

func (f *fakeProductRepo) SetStatus(ctx context.Context, id string, status string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	product, ok := f.s.products[id]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	product.Status = status
	return nil
}

type fakeRequestRepo struct {
	s *memStore
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (*entity.TradeRequest, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	request, ok := f.s.requests[id]
	if !ok {
		return nil, errors.NotFound("Trade request", nil)
	}
	return copyRequest(request), nil
}

func (f *fakeRequestRepo) ListByRequester(ctx context.Context, requesterID string, status string, limit, offset int) ([]*entity.TradeRequest, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []*entity.TradeRequest
	for _, r := range f.s.requests {
		if r.RequesterID != requesterID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, copyRequest(r))
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) ListBySeller(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.TradeRequest, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []*entity.TradeRequest
	for _, r := range f.s.requests {
		if r.SellerID != sellerID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, copyRequest(r))
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) CountActiveByProduct(ctx context.Context, productID string) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	return f.countActiveLocked(productID), nil
}

func (f *fakeRequestRepo) countActiveLocked(productID string) int {
	count := 0
	for _, r := range f.s.requests {
		if !r.Active() {
			continue
		}
		if r.TargetProductID == productID || r.OfferedProductID == productID {
			count++
		}
	}
	return count
}

func (f *fakeRequestRepo) CreateWithReservation(ctx context.Context, request *entity.TradeRequest, reserve []string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, productID := range reserve {
		product, ok := f.s.products[productID]
		if !ok {
			return errors.NotFound("Product", nil)
		}
		if product.Status != entity.ProductStatusAvailable {
			return errors.Conflict("Product is no longer available")
		}
	}

	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	f.s.requests[request.ID] = copyRequest(request)
	for _, productID := range reserve {
		f.s.products[productID].Status = entity.ProductStatusReserved
	}
	return nil
}

func (f *fakeRequestRepo) Update(ctx context.Context, request *entity.TradeRequest) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.requests[request.ID]; !ok {
		return errors.NotFound("Trade request", nil)
	}
	request.UpdatedAt = time.Now()
	f.s.requests[request.ID] = copyRequest(request)
	return nil
}

func (f *fakeRequestRepo) UpdateWithProductStatus(ctx context.Context, request *entity.TradeRequest, statuses map[string]string, guardReserved bool) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.requests[request.ID]; !ok {
		return errors.NotFound("Trade request", nil)
	}
	for productID := range statuses {
		if _, ok := f.s.products[productID]; !ok {
			return errors.NotFound("Product", nil)
		}
	}

	request.UpdatedAt = time.Now()
	f.s.requests[request.ID] = copyRequest(request)
	for productID, status := range statuses {
		product := f.s.products[productID]
		if guardReserved && product.Status != entity.ProductStatusReserved {
			continue
		}
		product.Status = status
	}
	return nil
}

func (f *fakeRequestRepo) Finalize(ctx context.Context, request *entity.TradeRequest, statuses map[string]string, txn *entity.Transaction) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, existing := range f.s.txns {
		if existing.RequestID == request.ID {
			return errors.Conflict("Transaction already recorded for this request")
		}
	}

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	txn.CreatedAt = time.Now()
	request.UpdatedAt = txn.CreatedAt

	f.s.requests[request.ID] = copyRequest(request)
	for productID, status := range statuses {
		product, ok := f.s.products[productID]
		if !ok {
			return errors.NotFound("Product", nil)
		}
		product.Status = status
	}
	f.s.txns[txn.ID] = copyTxn(txn)
	return nil
}

type fakeTransactionRepo struct {
	s *memStore
}

func (f *fakeTransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	txn, ok := f.s.txns[id]
	if !ok {
		return nil, errors.NotFound("Transaction", nil)
	}
	return copyTxn(txn), nil
}

func (f *fakeTransactionRepo) GetByRequestID(ctx context.Context, requestID string) (*entity.Transaction, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, txn := range f.s.txns {
		if txn.RequestID == requestID {
			return copyTxn(txn), nil
		}
	}
	return nil, errors.NotFound("Transaction", nil)
}

func (f *fakeTransactionRepo) ListByUserID(ctx context.Context, userID string, role string, limit, offset int) ([]*entity.Transaction, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []*entity.Transaction
	for _, txn := range f.s.txns {
		if role == "seller" && txn.SellerID == userID {
			out = append(out, copyTxn(txn))
		}
		if role != "seller" && txn.BuyerID == userID {
			out = append(out, copyTxn(txn))
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTransactionRepo) SetReviewed(ctx context.Context, id string, reviewType string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	txn, ok := f.s.txns[id]
	if !ok {
		return errors.NotFound("Transaction", nil)
	}
	if reviewType == entity.ReviewTypeBuyer {
		txn.SellerReviewed = true
	} else {
		txn.BuyerReviewed = true
	}
	return nil
}

type fakeUserRepo struct {
	s *memStore
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	cp := *user
	f.s.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	user, ok := f.s.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	cp := *user
	f.s.users[user.ID] = &cp
	return nil
}

type fakeReviewRepo struct {
	s *memStore
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()
	cp := *review
	f.s.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	review, ok := f.s.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	cp := *review
	return &cp, nil
}

func (f *fakeReviewRepo) GetByTransactionAndReviewer(ctx context.Context, transactionID, reviewerID string) (*entity.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, review := range f.s.reviews {
		if review.TransactionID == transactionID && review.ReviewerID == reviewerID {
			cp := *review
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (f *fakeReviewRepo) ListByTarget(ctx context.Context, targetID string, reviewType string, limit, offset int) ([]*entity.Review, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []*entity.Review
	for _, review := range f.s.reviews {
		if review.TargetID != targetID {
			continue
		}
		if reviewType != "" && review.Type != reviewType {
			continue
		}
		cp := *review
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []service.Event
}

func (f *fakeNotifier) Notify(ctx context.Context, event service.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeNotifier) eventsOfType(eventType string) []service.Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []service.Event
	for _, e := range f.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
