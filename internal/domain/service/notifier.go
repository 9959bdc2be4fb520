package service

import "context"

// Event is a fire-and-forget notification emitted by the trade request
// engine. Delivery failure never affects the operation that produced it.
type Event struct {
	Type          string      `json:"type"`
	RequestID     string      `json:"request_id"`
	TransactionID string      `json:"transaction_id,omitempty"`
	BuyerID       string      `json:"buyer_id"`
	SellerID      string      `json:"seller_id"`
	Payload       interface{} `json:"payload,omitempty"`
}

const (
	EventRequestCreated       = "request_created"
	EventRequestAccepted      = "request_accepted"
	EventRequestRejected      = "request_rejected"
	EventRequestCancelled     = "request_cancelled"
	EventHandoffConfirmed     = "handoff_confirmed"
	EventTransactionCompleted = "transaction_completed"
)

type Notifier interface {
	Notify(ctx context.Context, event Event)
}
