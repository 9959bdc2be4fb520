package entity

import (
	"time"
)

const (
	PaymentStatusRecorded = "recorded"
	PaymentStatusSettled  = "settled"
)

// Transaction is the append-only ledger row written exactly once when both
// handoff confirmations are present. Only the two reviewed flags may change
// after creation.
type Transaction struct {
	ID               string   `json:"id" firestore:"id"`
	RequestID        string   `json:"request_id" firestore:"requestId"`
	TargetProductID  string   `json:"target_product_id" firestore:"targetProductId"`
	OfferedProductID string   `json:"offered_product_id,omitempty" firestore:"offeredProductId,omitempty"`
	BuyerID          string   `json:"buyer_id" firestore:"buyerId"`
	SellerID         string   `json:"seller_id" firestore:"sellerId"`
	TotalPrice       *float64 `json:"total_price,omitempty" firestore:"totalPrice,omitempty"`
	PaymentStatus    string   `json:"payment_status" firestore:"paymentStatus"`

	BuyerReviewed  bool `json:"buyer_reviewed" firestore:"buyerReviewed"`
	SellerReviewed bool `json:"seller_reviewed" firestore:"sellerReviewed"`

	CompletedAt time.Time `json:"completed_at" firestore:"completedAt"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
