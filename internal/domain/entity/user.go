package entity

import (
	"time"
)

const (
	UserStatusActive      = "active"
	UserStatusDeactivated = "deactivated"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Campus   string `json:"campus,omitempty" firestore:"campus,omitempty"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Status   string `json:"status" firestore:"status"`

	SellerRating      float64 `json:"seller_rating,omitempty" firestore:"sellerRating,omitempty"`
	SellerReviewCount int     `json:"seller_review_count,omitempty" firestore:"sellerReviewCount,omitempty"`
	BuyerRating       float64 `json:"buyer_rating,omitempty" firestore:"buyerRating,omitempty"`
	BuyerReviewCount  int     `json:"buyer_review_count,omitempty" firestore:"buyerReviewCount,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
