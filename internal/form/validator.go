package form

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/geekyathlete/poster-shop/internal/tax"
)

// Error is one field-level validation failure.
type Error struct {
	Field   string
	Message string
}

// Patterns for the custom validators. The quantity pattern permits only
// digits, so negative and decimal values never reach pricing.
var (
	personNameRe    = regexp.MustCompile(`^[A-Za-z,. ]*$`)
	streetAddressRe = regexp.MustCompile(`^[#.0-9a-zA-Z\s,-]*$`)
	lettersSpacesRe = regexp.MustCompile(`^[A-Za-z ]*$`)
	phoneRe         = regexp.MustCompile(`^[0-9]{10}$`)
	emailRe         = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,4}$`)
	digitsRe        = regexp.MustCompile(`^[0-9]*$`)
	postcodeRe      = regexp.MustCompile(`^[A-Z][0-9][A-Z]\s[A-Z][0-9][A-Z]$`)
)

// messages holds the fixed user-facing text per form field.
var messages = map[string]string{
	"firstName":    "Please enter correct First Name. Only characters allowed.",
	"lastName":     "Please enter correct Last Name. Only characters allowed.",
	"address":      "Please enter correct Address. Only Characters, Numbers, and Special Characters (,-) allowed.",
	"city":         "Please enter correct City. Only characters allowed.",
	"province":     "Please select a valid Province.",
	"phoneno":      "Please enter correct Phone No. It should be 10 digits.",
	"email":        "Email address should be like username@website.com",
	"postcode":     "Please enter correct Postcode. eg. A2A A2A.",
	"deliverytime": "Please select a valid Delivery Time.",
	"poster1Qty":   "Please enter valid Quantity. Only +ve values allowed.",
	"poster2Qty":   "Please enter valid Quantity. Only +ve values allowed.",
	"poster3Qty":   "Please enter valid Quantity. Only +ve values allowed.",
}

// Validator checks order form submissions. Province values are accepted
// only when they name an entry of the tax table, so the pricing lookup
// can never miss on validated input.
type Validator struct {
	v *validator.Validate
}

// NewValidator wires the custom field validators against the given tax
// table.
func NewValidator(taxes *tax.Table) (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	patterns := map[string]*regexp.Regexp{
		"person_name":    personNameRe,
		"street_address": streetAddressRe,
		"letters_spaces": lettersSpacesRe,
		"phone_digits":   phoneRe,
		"shop_email":     emailRe,
		"digits":         digitsRe,
		"ca_postcode":    postcodeRe,
	}
	for tag, re := range patterns {
		re := re
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			return nil, fmt.Errorf("register %s: %w", tag, err)
		}
	}

	if err := v.RegisterValidation("known_province", func(fl validator.FieldLevel) bool {
		return taxes.Contains(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("register known_province: %w", err)
	}

	return &Validator{v: v}, nil
}

// Check validates the submission and returns field errors in form field
// order. An empty slice means the form is valid. Check never fails
// fatally; a submission either passes or collects errors.
func (val *Validator) Check(o Order) []Error {
	err := val.v.Struct(o)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Struct-level failures cannot happen for a flat string struct;
		// treat anything unexpected as a generic form error.
		return []Error{{Message: "Invalid form submission."}}
	}
	out := make([]Error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = "Invalid value."
		}
		out = append(out, Error{Field: fe.Field(), Message: msg})
	}
	return out
}
