package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campustrade/internal/domain/entity"
	"campustrade/pkg/errors"
)

func newReviewFixture(t *testing.T) (*ReviewUseCase, *memStore) {
	t.Helper()

	store := newMemStore()
	uc := NewReviewUseCase(
		&fakeReviewRepo{s: store},
		&fakeTransactionRepo{s: store},
		&fakeUserRepo{s: store},
	)

	for _, id := range []string{"seller-1", "buyer-1", "buyer-2"} {
		store.users[id] = &entity.User{ID: id, Status: entity.UserStatusActive}
	}

	price := 150000.0
	store.txns["txn-1"] = &entity.Transaction{
		ID:              "txn-1",
		RequestID:       "req-1",
		TargetProductID: "prod-1",
		BuyerID:         "buyer-1",
		SellerID:        "seller-1",
		TotalPrice:      &price,
		PaymentStatus:   entity.PaymentStatusRecorded,
		CompletedAt:     time.Now(),
	}

	return uc, store
}

func TestEligibilityStatus(t *testing.T) {
	uc, _ := newReviewFixture(t)

	eligibility, err := uc.EligibilityStatus(context.Background(), "buyer-1", "txn-1")
	require.NoError(t, err)
	assert.False(t, eligibility.BuyerReviewed)
	assert.False(t, eligibility.SellerReviewed)
	assert.Equal(t, "seller-1", eligibility.OtherPartyID)

	eligibility, err = uc.EligibilityStatus(context.Background(), "seller-1", "txn-1")
	require.NoError(t, err)
	assert.Equal(t, "buyer-1", eligibility.OtherPartyID)

	_, err = uc.EligibilityStatus(context.Background(), "buyer-2", "txn-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCreateReviewByBuyer(t *testing.T) {
	uc, store := newReviewFixture(t)

	review, err := uc.CreateReview(context.Background(), "buyer-1", CreateReviewInput{
		TransactionID: "txn-1",
		Rating:        5,
		Content:       "Smooth handoff, book as described",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReviewTypeSeller, review.Type)
	assert.Equal(t, "seller-1", review.TargetID)
	assert.Equal(t, "prod-1", review.ProductID)

	store.mu.Lock()
	txn := store.txns["txn-1"]
	seller := store.users["seller-1"]
	store.mu.Unlock()
	assert.True(t, txn.BuyerReviewed)
	assert.False(t, txn.SellerReviewed)
	assert.Equal(t, 5.0, seller.SellerRating)
	assert.Equal(t, 1, seller.SellerReviewCount)
}

func TestCreateReviewDuplicateRejected(t *testing.T) {
	uc, _ := newReviewFixture(t)

	_, err := uc.CreateReview(context.Background(), "buyer-1", CreateReviewInput{TransactionID: "txn-1", Rating: 4})
	require.NoError(t, err)

	_, err = uc.CreateReview(context.Background(), "buyer-1", CreateReviewInput{TransactionID: "txn-1", Rating: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestCreateReviewValidatesRating(t *testing.T) {
	uc, _ := newReviewFixture(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.CreateReview(context.Background(), "buyer-1", CreateReviewInput{TransactionID: "txn-1", Rating: rating})
		require.Error(t, err)
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	}
}

func TestCreateReviewNonParticipantForbidden(t *testing.T) {
	uc, _ := newReviewFixture(t)

	_, err := uc.CreateReview(context.Background(), "buyer-2", CreateReviewInput{TransactionID: "txn-1", Rating: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSellerReviewsBuyer(t *testing.T) {
	uc, store := newReviewFixture(t)

	review, err := uc.CreateReview(context.Background(), "seller-1", CreateReviewInput{
		TransactionID: "txn-1",
		Rating:        4,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReviewTypeBuyer, review.Type)
	assert.Equal(t, "buyer-1", review.TargetID)

	store.mu.Lock()
	txn := store.txns["txn-1"]
	buyer := store.users["buyer-1"]
	store.mu.Unlock()
	assert.True(t, txn.SellerReviewed)
	assert.Equal(t, 4.0, buyer.BuyerRating)
}

func TestRatingAverageAcrossReviews(t *testing.T) {
	uc, store := newReviewFixture(t)

	price := 90000.0
	store.txns["txn-2"] = &entity.Transaction{
		ID:              "txn-2",
		RequestID:       "req-2",
		TargetProductID: "prod-2",
		BuyerID:         "buyer-2",
		SellerID:        "seller-1",
		TotalPrice:      &price,
		PaymentStatus:   entity.PaymentStatusRecorded,
		CompletedAt:     time.Now(),
	}

	_, err := uc.CreateReview(context.Background(), "buyer-1", CreateReviewInput{TransactionID: "txn-1", Rating: 5})
	require.NoError(t, err)
	_, err = uc.CreateReview(context.Background(), "buyer-2", CreateReviewInput{TransactionID: "txn-2", Rating: 3})
	require.NoError(t, err)

	store.mu.Lock()
	seller := store.users["seller-1"]
	store.mu.Unlock()
	assert.Equal(t, 4.0, seller.SellerRating)
	assert.Equal(t, 2, seller.SellerReviewCount)

	reviews, total, err := uc.ListReviews(context.Background(), "seller-1", entity.ReviewTypeSeller, 1, 20)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.Equal(t, int64(2), total)
}
