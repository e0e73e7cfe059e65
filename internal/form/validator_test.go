package form

import (
	"testing"

	"github.com/geekyathlete/poster-shop/internal/tax"
)

func validOrder() Order {
	return Order{
		FirstName:    "Jordan",
		LastName:     "Smith",
		Address:      "12 King St. W, Unit #4",
		City:         "Toronto",
		Province:     "Ontario",
		PhoneNo:      "4165551234",
		Email:        "jordan.smith@example.com",
		Postcode:     "A2A A2A",
		DeliveryTime: "morning",
		Poster1Qty:   "1",
		Poster2Qty:   "0",
		Poster3Qty:   "2",
	}
}

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(tax.DefaultTable())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func TestValidOrderPasses(t *testing.T) {
	v := newValidator(t)
	if errs := v.Check(validOrder()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
}

func TestSingleFieldErrors(t *testing.T) {
	v := newValidator(t)

	cases := []struct {
		name   string
		mutate func(*Order)
		field  string
	}{
		{"empty first name", func(o *Order) { o.FirstName = "" }, "firstName"},
		{"digits in first name", func(o *Order) { o.FirstName = "J0rdan" }, "firstName"},
		{"bad last name", func(o *Order) { o.LastName = "Smith!" }, "lastName"},
		{"bad address", func(o *Order) { o.Address = "12 King St @ W" }, "address"},
		{"bad city", func(o *Order) { o.City = "T0ronto" }, "city"},
		{"unknown province", func(o *Order) { o.Province = "Atlantis" }, "province"},
		{"lowercase province", func(o *Order) { o.Province = "ontario" }, "province"},
		{"short phone", func(o *Order) { o.PhoneNo = "555123" }, "phoneno"},
		{"letters in phone", func(o *Order) { o.PhoneNo = "41655512ab" }, "phoneno"},
		{"bad email", func(o *Order) { o.Email = "bad-email" }, "email"},
		{"uppercase email local part", func(o *Order) { o.Email = "Jordan@example.com" }, "email"},
		{"lowercase postcode", func(o *Order) { o.Postcode = "a2a a2a" }, "postcode"},
		{"postcode without space", func(o *Order) { o.Postcode = "A2AA2A" }, "postcode"},
		{"empty delivery time", func(o *Order) { o.DeliveryTime = "" }, "deliverytime"},
		{"negative quantity", func(o *Order) { o.Poster2Qty = "-1" }, "poster2Qty"},
		{"decimal quantity", func(o *Order) { o.Poster3Qty = "1.5" }, "poster3Qty"},
		{"empty quantity", func(o *Order) { o.Poster1Qty = "" }, "poster1Qty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := validOrder()
			tc.mutate(&o)
			errs := v.Check(o)
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %+v", errs)
			}
			if errs[0].Field != tc.field {
				t.Fatalf("error field = %q, want %q", errs[0].Field, tc.field)
			}
			if errs[0].Message != messages[tc.field] {
				t.Fatalf("error message = %q, want %q", errs[0].Message, messages[tc.field])
			}
		})
	}
}

func TestValidPostcodeUppercase(t *testing.T) {
	v := newValidator(t)
	o := validOrder()
	o.Postcode = "M5V 2T6"
	if errs := v.Check(o); len(errs) != 0 {
		t.Fatalf("expected postcode to pass, got %+v", errs)
	}
}

func TestErrorsFollowFieldOrder(t *testing.T) {
	v := newValidator(t)
	o := validOrder()
	o.FirstName = ""
	o.Email = "bad-email"
	o.Poster3Qty = "x"

	errs := v.Check(o)
	if len(errs) != 3 {
		t.Fatalf("expected three errors, got %+v", errs)
	}
	if errs[0].Field != "firstName" || errs[1].Field != "email" || errs[2].Field != "poster3Qty" {
		t.Fatalf("unexpected order: %+v", errs)
	}
}

func TestQuantities(t *testing.T) {
	o := validOrder()
	qty := o.Quantities()
	if qty != [3]int{1, 0, 2} {
		t.Fatalf("unexpected quantities: %v", qty)
	}
}
