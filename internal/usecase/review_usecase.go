package usecase

import (
	"context"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	"campustrade/pkg/errors"
	"campustrade/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo      repository.ReviewRepository
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:      reviewRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

type ReviewEligibility struct {
	BuyerReviewed  bool   `json:"buyer_reviewed"`
	SellerReviewed bool   `json:"seller_reviewed"`
	OtherPartyID   string `json:"other_party_id"`
}

// EligibilityStatus reports whether each side of a completed transaction has
// been reviewed, and who the caller would be reviewing.
func (uc *ReviewUseCase) EligibilityStatus(ctx context.Context, callerID, transactionID string) (*ReviewEligibility, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if txn.BuyerID != callerID && txn.SellerID != callerID {
		return nil, errors.Forbidden("Only a transaction participant can review it", nil)
	}

	other := txn.SellerID
	if callerID == txn.SellerID {
		other = txn.BuyerID
	}

	return &ReviewEligibility{
		BuyerReviewed:  txn.BuyerReviewed,
		SellerReviewed: txn.SellerReviewed,
		OtherPartyID:   other,
	}, nil
}

type CreateReviewInput struct {
	TransactionID string
	Rating        int
	Content       string
}

func (uc *ReviewUseCase) CreateReview(ctx context.Context, reviewerID string, input CreateReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.Validation("rating must be between 1 and 5")
	}

	txn, err := uc.transactionRepo.GetByID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}

	if txn.BuyerID != reviewerID && txn.SellerID != reviewerID {
		return nil, errors.Forbidden("Only a transaction participant can review it", nil)
	}

	existing, err := uc.reviewRepo.GetByTransactionAndReviewer(ctx, input.TransactionID, reviewerID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("You have already reviewed this transaction")
	}

	targetID := txn.SellerID
	reviewType := entity.ReviewTypeSeller
	if reviewerID == txn.SellerID {
		targetID = txn.BuyerID
		reviewType = entity.ReviewTypeBuyer
	}

	review := &entity.Review{
		TransactionID: input.TransactionID,
		ProductID:     txn.TargetProductID,
		ReviewerID:    reviewerID,
		TargetID:      targetID,
		Type:          reviewType,
		Rating:        input.Rating,
		Content:       input.Content,
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.SetReviewed(ctx, txn.ID, reviewType); err != nil {
		logger.Error("Failed to flag transaction %s as reviewed: %v", txn.ID, err)
	}

	if err := uc.updateUserRating(ctx, targetID, reviewType, input.Rating); err != nil {
		logger.Error("Failed to update rating for user %s: %v", targetID, err)
	}

	return review, nil
}

func (uc *ReviewUseCase) ListReviews(ctx context.Context, targetID, reviewType string, page, limit int) ([]*entity.Review, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.reviewRepo.ListByTarget(ctx, targetID, reviewType, limit, offset)
}

func (uc *ReviewUseCase) updateUserRating(ctx context.Context, userID, reviewType string, newRating int) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if reviewType == entity.ReviewTypeSeller {
		totalRating := user.SellerRating * float64(user.SellerReviewCount)
		user.SellerReviewCount++
		user.SellerRating = (totalRating + float64(newRating)) / float64(user.SellerReviewCount)
	} else {
		totalRating := user.BuyerRating * float64(user.BuyerReviewCount)
		user.BuyerReviewCount++
		user.BuyerRating = (totalRating + float64(newRating)) / float64(user.BuyerReviewCount)
	}

	return uc.userRepo.Update(ctx, user)
}
