package form

import (
	"net/http"
	"strconv"
)

// Order carries the raw order form submission. Field tags are the
// exact input names the shop form posts.
type Order struct {
	FirstName    string `form:"firstName" validate:"required,person_name"`
	LastName     string `form:"lastName" validate:"required,person_name"`
	Address      string `form:"address" validate:"required,street_address"`
	City         string `form:"city" validate:"required,letters_spaces"`
	Province     string `form:"province" validate:"required,known_province"`
	PhoneNo      string `form:"phoneno" validate:"required,phone_digits"`
	Email        string `form:"email" validate:"required,shop_email"`
	Postcode     string `form:"postcode" validate:"required,ca_postcode"`
	DeliveryTime string `form:"deliverytime" validate:"required"`
	Poster1Qty   string `form:"poster1Qty" validate:"required,digits"`
	Poster2Qty   string `form:"poster2Qty" validate:"required,digits"`
	Poster3Qty   string `form:"poster3Qty" validate:"required,digits"`
}

// Parse reads the order form fields from a request.
func Parse(r *http.Request) Order {
	return Order{
		FirstName:    r.FormValue("firstName"),
		LastName:     r.FormValue("lastName"),
		Address:      r.FormValue("address"),
		City:         r.FormValue("city"),
		Province:     r.FormValue("province"),
		PhoneNo:      r.FormValue("phoneno"),
		Email:        r.FormValue("email"),
		Postcode:     r.FormValue("postcode"),
		DeliveryTime: r.FormValue("deliverytime"),
		Poster1Qty:   r.FormValue("poster1Qty"),
		Poster2Qty:   r.FormValue("poster2Qty"),
		Poster3Qty:   r.FormValue("poster3Qty"),
	}
}

// Quantities converts the three validated quantity fields to integers.
// Fields that fail to parse count as zero; the validator rejects them
// before pricing ever sees such a form.
func (o Order) Quantities() [3]int {
	return [3]int{atoi(o.Poster1Qty), atoi(o.Poster2Qty), atoi(o.Poster3Qty)}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
