package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/geekyathlete/poster-shop/internal/pricing"
)

// Line is one poster's persisted price/quantity/total group.
type Line struct {
	Price pricing.Money
	Qty   int
	Total pricing.Money
}

// Record is one customer submission. It is constructed only after
// validation and the minimum-purchase check pass, written once, and
// never mutated afterwards.
type Record struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Address      string
	City         string
	Province     string
	PhoneNo      string
	Email        string
	Postcode     string
	DeliveryTime string
	Posters      [3]Line
	Subtotal     pricing.Money
	TaxRateBps   int
	Tax          pricing.Money
	Total        pricing.Money
	CreatedAt    time.Time
}

// Store persists finalized orders.
type Store interface {
	// Save durably writes one order. Called exactly once per
	// successful submission.
	Save(ctx context.Context, rec Record) error
	// ListAll returns every stored order in insertion order.
	ListAll(ctx context.Context) ([]Record, error)
}
