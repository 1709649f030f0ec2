// Package console drives an order form from line commands, standing in for
// the point-of-sale screen.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dejobratic/posorder/internal/money"
	"github.com/dejobratic/posorder/internal/orders/app"
	"github.com/dejobratic/posorder/internal/orders/domain"
)

const prompt = "> "

const helpText = `Commands:
  products                    list the catalog
  add <product-id>            add a product to the cart
  price <line> <amount>       change a line's unit price
  qty <line> <quantity>       change a line's quantity
  code <line> [code]          apply or clear a discount code
  remove <line>               remove a cart line
  name <customer name>        set the customer name
  email <address>             set the customer email
  phone <number>              set the customer phone
  pay cash|card               choose the payment method
  cash [amount]               set or clear the cash given
  show                        show the cart and totals
  submit                      validate and show the order summary
  confirm                     confirm the order summary
  cancel                      go back to editing
  help                        show this help
  quit                        leave
`

var errUsage = errors.New("usage")

// Console reads commands from in and writes results to out. Lines are
// numbered from 1 for the cashier.
type Console struct {
	session *app.Session
	in      io.Reader
	out     io.Writer
	logger  *slog.Logger
}

func New(session *app.Session, in io.Reader, out io.Writer, logger *slog.Logger) *Console {
	return &Console{session: session, in: in, out: out, logger: logger}
}

// Run processes commands until quit, end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	fmt.Fprint(c.out, "Order form. Type 'help' for commands.\n"+prompt)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		quit := c.Execute(ctx, scanner.Text())
		if quit {
			return nil
		}
		fmt.Fprint(c.out, prompt)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}

// Execute runs one command line and reports whether the cashier asked to quit.
func (c *Console) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	var err error
	switch name {
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprint(c.out, helpText)
	case "products":
		err = c.products(ctx)
	case "add":
		err = c.add(ctx, args)
	case "price":
		err = c.setField(ctx, args, app.LineFieldPrice)
	case "qty", "quantity":
		err = c.setField(ctx, args, app.LineFieldQuantity)
	case "code", "discount":
		err = c.setField(ctx, args, app.LineFieldDiscountCode)
	case "remove", "rm":
		err = c.remove(args)
	case "name":
		err = c.session.SetCustomerName(rest)
	case "email":
		err = c.session.SetCustomerEmail(rest)
	case "phone":
		err = c.session.SetCustomerPhone(rest)
	case "pay":
		err = c.pay(args)
	case "cash":
		err = c.cash(rest)
	case "show", "cart":
		c.show(ctx)
	case "submit":
		err = c.submit(ctx)
	case "confirm":
		err = c.confirm(ctx)
	case "cancel":
		err = c.cancel(ctx)
	default:
		err = fmt.Errorf("unknown command %q, type 'help'", name)
	}

	if err != nil {
		c.report(ctx, err)
	}
	return false
}

func (c *Console) products(ctx context.Context) error {
	products, err := c.session.Products(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tProduct\tPrice\t")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", p.ID, p.Name, money.Format(p.Price))
	}
	return tw.Flush()
}

func (c *Console) add(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: add <product-id>", errUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: product id must be a number", errUsage)
	}

	before := c.session.Cart().Len()
	if err := c.session.AddProduct(ctx, id); err != nil {
		return err
	}
	if c.session.Cart().Len() == before {
		fmt.Fprintf(c.out, "No product %d.\n", id)
		return nil
	}
	c.show(ctx)
	return nil
}

func (c *Console) setField(ctx context.Context, args []string, field string) error {
	if len(args) < 1 || (field != app.LineFieldDiscountCode && len(args) < 2) {
		return fmt.Errorf("%w: %s <line> <value>", errUsage, field)
	}
	index, err := lineIndex(args[0])
	if err != nil {
		return err
	}
	if err := c.session.SetLineField(ctx, index, field, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	c.show(ctx)
	return nil
}

func (c *Console) remove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: remove <line>", errUsage)
	}
	index, err := lineIndex(args[0])
	if err != nil {
		return err
	}
	return c.session.RemoveLine(index)
}

func (c *Console) pay(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: pay cash|card", errUsage)
	}
	method := domain.PaymentMethod(strings.ToLower(args[0]))
	if method != domain.PaymentCash && method != domain.PaymentCard {
		return fmt.Errorf("%w: pay cash|card", errUsage)
	}
	return c.session.SetPaymentMethod(method)
}

func (c *Console) cash(raw string) error {
	if raw == "" {
		return c.session.SetCashGiven(nil)
	}
	amount, err := money.ParseAmount(raw)
	if err != nil {
		return err
	}
	return c.session.SetCashGiven(&amount)
}

func (c *Console) show(ctx context.Context) {
	quote := c.session.Quote(ctx)
	if len(quote.Lines) == 0 {
		fmt.Fprintln(c.out, "Cart is empty.")
	} else {
		tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tProduct\tPrice\tQty\tCode\tDiscount\tSubtotal")
		for i, line := range quote.Lines {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
				i+1, line.Name, money.Format(line.Price), line.Quantity,
				line.DiscountCode, money.Format(line.DiscountAmount), money.Format(line.Subtotal))
		}
		_ = tw.Flush()
	}

	fmt.Fprintf(c.out, "Total: %s\n", money.Format(quote.Total))

	form := c.session.Form()
	if form.PaymentMethod == domain.PaymentCash && form.CashGiven != nil {
		fmt.Fprintf(c.out, "Cash given: %s\n", money.Format(*form.CashGiven))
		if quote.CashCovered {
			fmt.Fprintf(c.out, "Change due: %s\n", money.Format(quote.ChangeDue))
		} else {
			fmt.Fprintln(c.out, "Cash given does not cover the total.")
		}
	}
}

func (c *Console) submit(ctx context.Context) error {
	order, err := c.session.Submit(ctx)
	if err != nil {
		return err
	}
	c.summary(order)
	fmt.Fprintln(c.out, "Type 'confirm' to finish or 'cancel' to keep editing.")
	return nil
}

func (c *Console) summary(order *domain.OrderDetails) {
	fmt.Fprintf(c.out, "Order %s\n", order.ID)
	fmt.Fprintf(c.out, "Customer: %s\n", order.CustomerName)
	fmt.Fprintf(c.out, "Email: %s\n", order.CustomerEmail)
	fmt.Fprintf(c.out, "Phone: %s\n", order.CustomerPhone)

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, line := range order.Cart {
		fmt.Fprintf(tw, "  %s\tx%d\t%s\n", line.Name, line.Quantity, money.Format(line.Subtotal()))
	}
	_ = tw.Flush()

	fmt.Fprintf(c.out, "Total: %s\n", money.Format(order.Total))
	switch order.PaymentMethod {
	case domain.PaymentCash:
		fmt.Fprintln(c.out, "Payment: cash")
		if order.CashGiven != nil {
			fmt.Fprintf(c.out, "Cash given: %s\n", money.Format(*order.CashGiven))
		}
		fmt.Fprintf(c.out, "Change due: %s\n", money.Format(order.ChangeDue()))
	case domain.PaymentCard:
		fmt.Fprintln(c.out, "Payment: card")
	}
}

func (c *Console) confirm(ctx context.Context) error {
	if err := c.session.Confirm(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Order confirmed.")
	return nil
}

func (c *Console) cancel(ctx context.Context) error {
	if err := c.session.Cancel(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Back to editing.")
	return nil
}

func (c *Console) report(ctx context.Context, err error) {
	var rejected *domain.ValidationError
	switch {
	case errors.As(err, &rejected):
		fmt.Fprintf(c.out, "Rejected: %s\n", rejectionMessage(rejected))
	case errors.Is(err, domain.ErrAwaitingConfirmation):
		fmt.Fprintln(c.out, "The order is awaiting confirmation. Type 'confirm' or 'cancel'.")
	case errors.Is(err, domain.ErrInvalidTransition):
		fmt.Fprintln(c.out, "There is no order awaiting confirmation.")
	case errors.Is(err, domain.ErrLineIndexOutOfRange):
		fmt.Fprintln(c.out, "No such cart line.")
	default:
		c.logger.DebugContext(ctx, "command failed", "error", err)
		fmt.Fprintf(c.out, "Error: %s\n", err)
	}
}

func rejectionMessage(err *domain.ValidationError) string {
	switch {
	case errors.Is(err, domain.MissingField(domain.FieldCustomerName)):
		return "customer name is required"
	case errors.Is(err, domain.InvalidField(domain.FieldCustomerEmail)):
		return "customer email is not valid"
	case errors.Is(err, domain.InvalidField(domain.FieldCustomerPhone)):
		return "customer phone is not a valid Vietnamese mobile number"
	case errors.Is(err, domain.MissingField(domain.FieldCashGiven)):
		return "enter the cash given"
	case errors.Is(err, domain.ErrInsufficientCash):
		return "cash given does not cover the total"
	default:
		return err.Error()
	}
}

func lineIndex(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: line must be a number", errUsage)
	}
	return n - 1, nil
}
