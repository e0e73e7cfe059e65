package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/geekyathlete/poster-shop/internal/events"
	"github.com/geekyathlete/poster-shop/internal/form"
	"github.com/geekyathlete/poster-shop/internal/obs"
	"github.com/geekyathlete/poster-shop/internal/order"
	"github.com/geekyathlete/poster-shop/internal/pricing"
	"github.com/geekyathlete/poster-shop/internal/tax"
)

// ReceiptLine is one poster's formatted line on the receipt.
type ReceiptLine struct {
	Price string
	Qty   int
	Total string
}

// Receipt is the fully formatted confirmation shown to the customer
// after a successful submission. All currency figures carry exactly two
// decimals; the tax rate is a display percentage.
type Receipt struct {
	OrderID      string
	FirstName    string
	LastName     string
	Address      string
	City         string
	Province     string
	PhoneNo      string
	Email        string
	Postcode     string
	DeliveryTime string
	Posters      [3]ReceiptLine
	Subtotal     string
	TaxPercent   string
	Tax          string
	Total        string
}

// Service runs the order submission pipeline: validate, price, persist,
// emit, render.
type Service struct {
	Forms   *form.Validator
	Pricing pricing.Engine
	Orders  order.Store
	Events  *events.Bus
	Log     zerolog.Logger
}

// Submit processes one order form. Field-level and business-rule
// failures come back as form errors with a nil receipt; only
// infrastructure failures (the order could not be persisted) are
// returned as an error. The receipt is rendered strictly after the
// order has been saved.
func (s *Service) Submit(ctx context.Context, f form.Order) (*Receipt, []form.Error, error) {
	if s == nil || s.Forms == nil || s.Orders == nil {
		return nil, nil, errors.New("checkout service not configured")
	}

	if errs := s.Forms.Check(f); len(errs) > 0 {
		s.count("validation_failed")
		return nil, errs, nil
	}

	quote, err := s.Pricing.Quote(f.Quantities(), f.Province)
	if err != nil {
		var below *pricing.BelowMinimumError
		if errors.As(err, &below) {
			s.count("below_minimum")
			return nil, []form.Error{{Message: below.Error()}}, nil
		}
		if errors.Is(err, pricing.ErrUnknownProvince) {
			// The validator guarantees membership, but guard the
			// library path all the same.
			s.count("validation_failed")
			return nil, []form.Error{{Field: "province", Message: "Please select a valid Province."}}, nil
		}
		return nil, nil, fmt.Errorf("price order: %w", err)
	}

	rec := order.Record{
		ID:           uuid.New(),
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Address:      f.Address,
		City:         f.City,
		Province:     f.Province,
		PhoneNo:      f.PhoneNo,
		Email:        f.Email,
		Postcode:     f.Postcode,
		DeliveryTime: f.DeliveryTime,
		Subtotal:     quote.Subtotal,
		TaxRateBps:   quote.TaxRateBps,
		Tax:          quote.Tax,
		Total:        quote.Total,
		CreatedAt:    time.Now().UTC(),
	}
	for i, line := range quote.Lines {
		rec.Posters[i] = order.Line{Price: line.UnitPrice, Qty: line.Qty, Total: line.Total}
	}

	if err := s.Orders.Save(ctx, rec); err != nil {
		s.count("save_failed")
		return nil, nil, fmt.Errorf("persist order: %w", err)
	}

	if s.Events != nil {
		if err := s.Events.Emit(ctx, events.TopicOrderCreated, rec.ID, map[string]string{
			"province": rec.Province,
			"total":    pricing.FormatMoney(rec.Total),
		}); err != nil {
			s.Log.Error().Err(err).Str("order_id", rec.ID.String()).Msg("emit order event")
		}
	}

	s.count("accepted")
	if obs.OrderValueCents != nil {
		obs.OrderValueCents.Observe(float64(rec.Total))
	}

	receipt := buildReceipt(rec)
	return &receipt, nil, nil
}

func (s *Service) count(result string) {
	if obs.OrdersSubmittedTotal != nil {
		obs.OrdersSubmittedTotal.WithLabelValues(result).Inc()
	}
}

func buildReceipt(rec order.Record) Receipt {
	r := Receipt{
		OrderID:      rec.ID.String(),
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		Address:      rec.Address,
		City:         rec.City,
		Province:     rec.Province,
		PhoneNo:      rec.PhoneNo,
		Email:        rec.Email,
		Postcode:     rec.Postcode,
		DeliveryTime: rec.DeliveryTime,
		Subtotal:     pricing.FormatMoney(rec.Subtotal),
		TaxPercent:   tax.PercentString(rec.TaxRateBps),
		Tax:          pricing.FormatMoney(rec.Tax),
		Total:        pricing.FormatMoney(rec.Total),
	}
	for i, line := range rec.Posters {
		r.Posters[i] = ReceiptLine{
			Price: pricing.FormatMoney(line.Price),
			Qty:   line.Qty,
			Total: pricing.FormatMoney(line.Total),
		}
	}
	return r
}
