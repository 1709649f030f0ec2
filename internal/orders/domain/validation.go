package domain

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer settles the order.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Field names reported in validation errors.
const (
	FieldCustomerName  = "customer_name"
	FieldCustomerEmail = "customer_email"
	FieldCustomerPhone = "customer_phone"
	FieldPaymentMethod = "payment_method"
	FieldCashGiven     = "cash_given"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)
	// Vietnamese mobile numbers: 0 or +84, a carrier prefix digit, then 8 digits.
	phonePattern = regexp.MustCompile(`^(0|\+84)(9|3|7|8|5)\d{8}$`)

	customerValidator = newCustomerValidator()
)

// FormData holds the customer and payment fields of the order form.
// CashGiven is nil until the customer's tendered amount has been entered.
type FormData struct {
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	CustomerPhone string           `json:"customer_phone"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	CashGiven     *decimal.Decimal `json:"cash_given,omitempty"`
}

// NewFormData returns an empty form with cash preselected.
func NewFormData() FormData {
	return FormData{PaymentMethod: PaymentCash}
}

// Normalized returns a copy with surrounding whitespace removed from the customer fields.
func (f FormData) Normalized() FormData {
	f.CustomerName = strings.TrimSpace(f.CustomerName)
	f.CustomerEmail = strings.TrimSpace(f.CustomerEmail)
	f.CustomerPhone = strings.TrimSpace(f.CustomerPhone)
	return f
}

type customerFields struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email_shape"`
	Phone string `validate:"required,vn_mobile"`
}

var customerFieldErrors = map[string]*ValidationError{
	"Name":  MissingField(FieldCustomerName),
	"Email": InvalidField(FieldCustomerEmail),
	"Phone": InvalidField(FieldCustomerPhone),
}

func newCustomerValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "email_shape", emailPattern)
	mustRegister(v, "vn_mobile", phonePattern)
	return v
}

func mustRegister(v *validator.Validate, tag string, pattern *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Validate decides whether an order with the given form and total may be
// confirmed. Rules run in order and the first failure is returned as a
// *ValidationError.
func Validate(form FormData, total decimal.Decimal) error {
	form = form.Normalized()

	err := customerValidator.Struct(customerFields{
		Name:  form.CustomerName,
		Email: form.CustomerEmail,
		Phone: form.CustomerPhone,
	})
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return err
		}
		// Errors come back in struct field order, which is the rule order.
		if mapped, ok := customerFieldErrors[fieldErrs[0].StructField()]; ok {
			rejected := *mapped
			return &rejected
		}
		return err
	}

	switch form.PaymentMethod {
	case PaymentCash:
		if form.CashGiven == nil {
			return MissingField(FieldCashGiven)
		}
		if form.CashGiven.LessThan(total) {
			return &ValidationError{Reason: ReasonInsufficientCash}
		}
	case PaymentCard:
	default:
		return InvalidField(FieldPaymentMethod)
	}

	return nil
}
