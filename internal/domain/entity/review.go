package entity

import (
	"time"
)

const (
	ReviewTypeSeller = "seller_review"
	ReviewTypeBuyer  = "buyer_review"
)

type Review struct {
	ID            string `json:"id" firestore:"id"`
	TransactionID string `json:"transaction_id" firestore:"transactionId"`
	ProductID     string `json:"product_id" firestore:"productId"`
	ReviewerID    string `json:"reviewer_id" firestore:"reviewerId"`
	TargetID      string `json:"target_id" firestore:"targetId"`
	Type          string `json:"type" firestore:"type"`
	Rating        int    `json:"rating" firestore:"rating"`
	Content       string `json:"content,omitempty" firestore:"content,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
