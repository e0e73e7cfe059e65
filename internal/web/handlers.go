package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/geekyathlete/poster-shop/internal/checkout"
	"github.com/geekyathlete/poster-shop/internal/form"
	"github.com/geekyathlete/poster-shop/internal/order"
	"github.com/geekyathlete/poster-shop/internal/pricing"
	"github.com/geekyathlete/poster-shop/internal/tax"
)

// deliveryTimes are the slots offered by the shop form.
var deliveryTimes = []string{"morning", "afternoon", "evening"}

// Handler serves the shop's HTML pages.
type Handler struct {
	Checkout *checkout.Service
	Taxes    *tax.Table
	Orders   order.Store
	Tmpl     *Templates
	Log      zerolog.Logger
}

type provinceOption struct {
	Name    string
	Percent string
}

type shopView struct {
	Provinces     []provinceOption
	DeliveryTimes []string
	UnitPrice     string
	MinPurchase   string
	Errors        []form.Error
	Form          form.Order
}

// Home renders the landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "index.html.tmpl", nil)
}

// Shop renders the empty order form with the province selector.
func (h *Handler) Shop(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "shop.html.tmpl", h.shopView(nil, form.Order{}))
}

// Submit accepts the posted order form. Validation and business-rule
// failures re-render the form with the submitted values echoed back;
// a persistence failure is a hard error and the order is not
// acknowledged.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	f := form.Parse(r)

	receipt, formErrs, err := h.Checkout.Submit(r.Context(), f)
	if err != nil {
		h.Log.Error().Err(err).Msg("submit order")
		h.render(w, http.StatusInternalServerError, "error.html.tmpl", map[string]string{
			"Message": "We could not save your order. Please try again in a moment.",
		})
		return
	}
	if len(formErrs) > 0 {
		h.render(w, http.StatusUnprocessableEntity, "shop.html.tmpl", h.shopView(formErrs, f))
		return
	}
	h.render(w, http.StatusOK, "receipt.html.tmpl", receipt)
}

type orderRow struct {
	Placed     string
	Customer   string
	Province   string
	Quantities string
	Subtotal   string
	Tax        string
	Total      string
}

// ListOrders renders the administrative listing of all stored orders.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	records, err := h.Orders.ListAll(r.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list orders")
		h.render(w, http.StatusInternalServerError, "error.html.tmpl", map[string]string{
			"Message": "We could not load the order list.",
		})
		return
	}
	rows := make([]orderRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, orderRow{
			Placed:     rec.CreatedAt.Format(time.RFC3339),
			Customer:   rec.FirstName + " " + rec.LastName,
			Province:   rec.Province,
			Quantities: fmt.Sprintf("%d / %d / %d", rec.Posters[0].Qty, rec.Posters[1].Qty, rec.Posters[2].Qty),
			Subtotal:   pricing.FormatMoney(rec.Subtotal),
			Tax:        pricing.FormatMoney(rec.Tax),
			Total:      pricing.FormatMoney(rec.Total),
		})
	}
	h.render(w, http.StatusOK, "orders.html.tmpl", map[string]any{"Orders": rows})
}

func (h *Handler) shopView(errs []form.Error, f form.Order) shopView {
	entries := h.Taxes.Entries()
	provinces := make([]provinceOption, 0, len(entries))
	for _, e := range entries {
		provinces = append(provinces, provinceOption{Name: e.Province, Percent: tax.PercentString(e.RateBps)})
	}
	return shopView{
		Provinces:     provinces,
		DeliveryTimes: deliveryTimes,
		UnitPrice:     pricing.FormatMoney(h.Checkout.Pricing.UnitPrice),
		MinPurchase:   pricing.FormatMoney(h.Checkout.Pricing.MinPurchase),
		Errors:        errs,
		Form:          f,
	}
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	if err := h.Tmpl.Render(w, status, name, data); err != nil {
		h.Log.Error().Err(err).Msg("render template")
	}
}
