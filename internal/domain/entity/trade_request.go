package entity

import (
	"time"
)

const (
	RequestStatusPending   = "pending"
	RequestStatusAccepted  = "accepted"
	RequestStatusRejected  = "rejected"
	RequestStatusCancelled = "cancelled"
	RequestStatusCompleted = "completed"
)

const (
	RequestTypePurchase = "purchase"
	RequestTypeTrade    = "trade"
)

type TradeRequest struct {
	ID              string   `json:"id" firestore:"id"`
	RequesterID     string   `json:"requester_id" firestore:"requesterId"`
	SellerID        string   `json:"seller_id" firestore:"sellerId"`
	TargetProductID string   `json:"target_product_id" firestore:"targetProductId"`
	Type            string   `json:"type" firestore:"type"`
	OfferPrice      *float64 `json:"offer_price,omitempty" firestore:"offerPrice,omitempty"`
	OfferedProductID string  `json:"offered_product_id,omitempty" firestore:"offeredProductId,omitempty"`
	Message         string   `json:"message,omitempty" firestore:"message,omitempty"`
	Status          string   `json:"status" firestore:"status"`

	BuyerConfirmed    bool       `json:"buyer_confirmed" firestore:"buyerConfirmed"`
	SellerConfirmed   bool       `json:"seller_confirmed" firestore:"sellerConfirmed"`
	BuyerConfirmedAt  *time.Time `json:"buyer_confirmed_at,omitempty" firestore:"buyerConfirmedAt,omitempty"`
	SellerConfirmedAt *time.Time `json:"seller_confirmed_at,omitempty" firestore:"sellerConfirmedAt,omitempty"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	RespondedAt *time.Time `json:"responded_at,omitempty" firestore:"respondedAt,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty" firestore:"closedAt,omitempty"`
}

// Active reports whether the request currently holds a reservation on its
// target (and, for trades, offered) product.
func (r *TradeRequest) Active() bool {
	return r.Status == RequestStatusPending || r.Status == RequestStatusAccepted
}

// Terminal reports whether the request has reached a final state.
func (r *TradeRequest) Terminal() bool {
	switch r.Status {
	case RequestStatusRejected, RequestStatusCancelled, RequestStatusCompleted:
		return true
	}
	return false
}

// ProductIDs returns every product id the request reserves: the target, plus
// the offered product for trade-type requests.
func (r *TradeRequest) ProductIDs() []string {
	ids := []string{r.TargetProductID}
	if r.Type == RequestTypeTrade && r.OfferedProductID != "" {
		ids = append(ids, r.OfferedProductID)
	}
	return ids
}
