package entity

import (
	"time"
)

const (
	ProductStatusAvailable = "available"
	ProductStatusReserved  = "reserved"
	ProductStatusSold      = "sold"
	ProductStatusExchanged = "exchanged"
	ProductStatusRemoved   = "removed"
)

const (
	TradeOptionSale  = "sale"
	TradeOptionTrade = "trade"
	TradeOptionBoth  = "both"
)

type ProductImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

type Product struct {
	ID          string         `json:"id" firestore:"id"`
	SellerID    string         `json:"seller_id" firestore:"sellerId"`
	CategoryID  string         `json:"category_id" firestore:"categoryId"`
	Title       string         `json:"title" firestore:"title"`
	Description string         `json:"description" firestore:"description"`
	Price       *float64       `json:"price,omitempty" firestore:"price,omitempty"`
	TradeOption string         `json:"trade_option" firestore:"tradeOption"`
	Condition   string         `json:"condition" firestore:"condition"`
	Tags        []string       `json:"tags,omitempty" firestore:"tags,omitempty"`
	Location    string         `json:"location,omitempty" firestore:"location,omitempty"`
	TradeWish   string         `json:"trade_wish,omitempty" firestore:"tradeWish,omitempty"`
	Images      []ProductImage `json:"images" firestore:"images"`
	Status      string         `json:"status" firestore:"status"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func ValidProductStatus(status string) bool {
	switch status {
	case ProductStatusAvailable, ProductStatusReserved, ProductStatusSold,
		ProductStatusExchanged, ProductStatusRemoved:
		return true
	}
	return false
}

func ValidTradeOption(option string) bool {
	switch option {
	case TradeOptionSale, TradeOptionTrade, TradeOptionBoth:
		return true
	}
	return false
}

// AllowsPurchase reports whether purchase-type requests may target this product.
func (p *Product) AllowsPurchase() bool {
	return p.TradeOption == TradeOptionSale || p.TradeOption == TradeOptionBoth
}

// AllowsTrade reports whether trade-type requests may target this product.
func (p *Product) AllowsTrade() bool {
	return p.TradeOption == TradeOptionTrade || p.TradeOption == TradeOptionBoth
}
