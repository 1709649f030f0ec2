package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dejobratic/posorder/internal/money"
	"github.com/dejobratic/posorder/internal/orders/app/commands"
	"github.com/dejobratic/posorder/internal/orders/app/queries"
	"github.com/dejobratic/posorder/internal/orders/domain"
	"github.com/dejobratic/posorder/internal/orders/metrics"
	"github.com/dejobratic/posorder/internal/orders/ports"
)

// Cart line fields accepted by SetLineField.
const (
	LineFieldPrice        = "price"
	LineFieldQuantity     = "quantity"
	LineFieldDiscountCode = "discountCode"
)

// Session is one order form: its cart, customer fields, lifecycle and the
// snapshot produced by the last accepted submission. A Session belongs to a
// single caller and is not safe for concurrent use.
type Session struct {
	catalog   ports.ProductCatalog
	events    ports.EventBus
	logger    *slog.Logger
	metrics   *metrics.Metrics
	submit    commands.SubmitOrderHandler
	discounts *commands.ApplyDiscountCommandHandler
	products  *queries.ListProductsQueryHandler
	quotes    *queries.QuoteQueryHandler

	cart      domain.Cart
	form      domain.FormData
	lifecycle domain.Lifecycle
	last      *domain.OrderDetails
}

// NewSession wires the use cases behind one order form.
func NewSession(
	catalog ports.ProductCatalog,
	discounts ports.DiscountCatalog,
	events ports.EventBus,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	opts ...commands.SubmitOption,
) *Session {
	coreSubmit := commands.NewSubmitOrderCommandHandler(events, opts...)

	return &Session{
		catalog:   catalog,
		events:    events,
		logger:    logger,
		metrics:   metrics,
		submit:    commands.NewObservableSubmitOrderHandler(coreSubmit, logger, metrics),
		discounts: commands.NewApplyDiscountCommandHandler(discounts),
		products:  queries.NewListProductsQueryHandler(catalog),
		quotes:    queries.NewQuoteQueryHandler(),
		form:      domain.NewFormData(),
		lifecycle: domain.NewLifecycle(),
	}
}

func (s *Session) Products(ctx context.Context) ([]domain.Product, error) {
	return s.products.Handle(ctx, queries.ListProductsQuery{})
}

// AddProduct appends the product with the given id. An unknown id is ignored.
func (s *Session) AddProduct(ctx context.Context, id int64) error {
	if err := s.guardEdit(); err != nil {
		return err
	}

	product, err := s.catalog.FindProduct(ctx, id)
	if errors.Is(err, ports.ErrProductNotFound) {
		s.logger.DebugContext(ctx, "ignoring unknown product", "product_id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("find product %d: %w", id, err)
	}

	s.cart = s.cart.AddLine(*product)
	return nil
}

// SetLineField updates one field of one line from raw user input. Input that
// does not parse is rejected and the line is left as it was.
func (s *Session) SetLineField(ctx context.Context, index int, field, raw string) error {
	switch field {
	case LineFieldPrice:
		price, err := money.ParseAmount(raw)
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		return s.UpdatePrice(index, price)
	case LineFieldQuantity:
		quantity, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %q", domain.ErrInvalidQuantity, raw)
		}
		return s.UpdateQuantity(index, quantity)
	case LineFieldDiscountCode:
		return s.ApplyDiscountCode(ctx, index, raw)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
}

func (s *Session) UpdatePrice(index int, price decimal.Decimal) error {
	return s.editCart(func(c domain.Cart) (domain.Cart, error) {
		return c.SetPrice(index, price)
	})
}

func (s *Session) UpdateQuantity(index, quantity int) error {
	return s.editCart(func(c domain.Cart) (domain.Cart, error) {
		return c.SetQuantity(index, quantity)
	})
}

func (s *Session) ApplyDiscountCode(ctx context.Context, index int, code string) error {
	return s.editCart(func(c domain.Cart) (domain.Cart, error) {
		return s.discounts.Handle(ctx, commands.ApplyDiscountCommand{Cart: c, Index: index, Code: code})
	})
}

func (s *Session) RemoveLine(index int) error {
	return s.editCart(func(c domain.Cart) (domain.Cart, error) {
		return c.RemoveLine(index)
	})
}

func (s *Session) Cart() domain.Cart {
	return s.cart
}

func (s *Session) Total() decimal.Decimal {
	return s.cart.Total()
}

func (s *Session) Form() domain.FormData {
	form := s.form
	if form.CashGiven != nil {
		cash := *form.CashGiven
		form.CashGiven = &cash
	}
	return form
}

func (s *Session) SetCustomerName(name string) error {
	return s.editForm(func(f *domain.FormData) { f.CustomerName = name })
}

func (s *Session) SetCustomerEmail(email string) error {
	return s.editForm(func(f *domain.FormData) { f.CustomerEmail = email })
}

func (s *Session) SetCustomerPhone(phone string) error {
	return s.editForm(func(f *domain.FormData) { f.CustomerPhone = phone })
}

func (s *Session) SetPaymentMethod(method domain.PaymentMethod) error {
	return s.editForm(func(f *domain.FormData) { f.PaymentMethod = method })
}

// SetCashGiven records the tendered amount; nil clears it.
func (s *Session) SetCashGiven(amount *decimal.Decimal) error {
	return s.editForm(func(f *domain.FormData) {
		if amount == nil {
			f.CashGiven = nil
			return
		}
		cash := *amount
		f.CashGiven = &cash
	})
}

// Quote reports the running totals, including change due for cash.
func (s *Session) Quote(ctx context.Context) queries.Quote {
	return s.quotes.Handle(ctx, queries.QuoteQuery{Cart: s.cart, Form: s.form})
}

// Submit validates the form and, when it passes, moves the session to
// confirming with a fresh snapshot. A rejection leaves the session editing.
func (s *Session) Submit(ctx context.Context) (*domain.OrderDetails, error) {
	next, err := s.lifecycle.Submit()
	if err != nil {
		return nil, err
	}

	order, err := s.submit.Handle(ctx, commands.SubmitOrderCommand{Form: s.form, Cart: s.cart})
	if order == nil {
		return nil, err
	}
	if err != nil {
		s.logger.WarnContext(ctx, "continuing with unannounced order", "order_id", order.ID, "error", err)
	}

	s.lifecycle = next
	s.last = order
	return s.LastOrder(), nil
}

// Confirm closes the confirmation view. Nothing is stored.
func (s *Session) Confirm(ctx context.Context) error {
	next, err := s.lifecycle.Confirm()
	if err != nil {
		return err
	}
	s.lifecycle = next
	s.metrics.RecordConfirmed(ctx)

	if err := s.events.PublishOrderConfirmed(ctx, s.last.ID); err != nil {
		s.logger.WarnContext(ctx, "failed to announce confirmation", "order_id", s.last.ID, "error", err)
	}
	return nil
}

// Cancel returns to editing with the cart and form as they were.
func (s *Session) Cancel(ctx context.Context) error {
	next, err := s.lifecycle.Cancel()
	if err != nil {
		return err
	}
	s.lifecycle = next
	s.metrics.RecordCanceled(ctx)

	if err := s.events.PublishOrderCanceled(ctx, s.last.ID); err != nil {
		s.logger.WarnContext(ctx, "failed to announce cancellation", "order_id", s.last.ID, "error", err)
	}
	return nil
}

func (s *Session) Stage() domain.Stage {
	return s.lifecycle.Stage()
}

// LastOrder returns a copy of the most recent snapshot, or nil before the
// first accepted submission.
func (s *Session) LastOrder() *domain.OrderDetails {
	if s.last == nil {
		return nil
	}
	order := *s.last
	order.Cart = append([]domain.CartLine(nil), s.last.Cart...)
	if s.last.CashGiven != nil {
		cash := *s.last.CashGiven
		order.CashGiven = &cash
	}
	return &order
}

func (s *Session) guardEdit() error {
	if !s.lifecycle.CanEdit() {
		return domain.ErrAwaitingConfirmation
	}
	return nil
}

func (s *Session) editCart(fn func(domain.Cart) (domain.Cart, error)) error {
	if err := s.guardEdit(); err != nil {
		return err
	}
	next, err := fn(s.cart)
	if err != nil {
		return err
	}
	s.cart = next
	return nil
}

func (s *Session) editForm(fn func(*domain.FormData)) error {
	if err := s.guardEdit(); err != nil {
		return err
	}
	fn(&s.form)
	return nil
}
