package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

const defaultPaymentMethod = "card"

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// Checkout turns the server cart into an order shipped to the given address
// and starts its payment.
func (a *App) Checkout(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return a.usage("checkout <addressID> [payment method]", errUsage)
	}
	addressID, err := parseID(args[0])
	if err != nil {
		return a.usage("checkout <addressID> [payment method]", err)
	}
	method := defaultPaymentMethod
	if len(args) == 2 {
		method = args[1]
	}
	a.goTo(RouteCheckout)

	o, err := a.orderService.Create(ctx, models.CreateOrder{
		ShippingAddressID: addressID,
		PaymentMethod:     method,
	})
	if err != nil {
		a.printError(err)
		return err
	}
	a.printf("Order %s placed, total %s.\n", o.OrderNumber, o.Total)

	intent, err := a.paymentService.CreateIntent(ctx, o.ID)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printf("Payment %s for %s %s is %s. Confirm with: pay %d %s\n",
		intent.ID, intent.Amount, strings.ToUpper(intent.Currency), intent.Status, o.ID, intent.ID)
	return nil
}

func (a *App) Pay(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.usage("pay <orderID> <paymentID>", errUsage)
	}
	orderID, err := parseID(args[0])
	if err != nil {
		return a.usage("pay <orderID> <paymentID>", err)
	}

	p, err := a.paymentService.Confirm(ctx, orderID, args[1])
	if err != nil {
		a.printError(err)
		return err
	}
	a.printf("Payment of %s is %s.\n", p.Amount, p.Status)
	return nil
}

func (a *App) Order(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("order <orderID>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return a.usage("order <orderID>", err)
	}
	a.goTo(fmt.Sprintf("%s/%d", RouteOrders, id))

	o, err := a.orderService.Get(ctx, id)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printf("Order %s (%s)\n", o.OrderNumber, o.Status)
	for _, it := range o.Items {
		a.printf("  %4d x %-30s %10s\n", it.Quantity, it.ProductName, it.Total)
	}
	a.printf("Subtotal %s  Tax %s  Shipping %s  Total %s\n", o.Subtotal, o.Tax, o.ShippingCost, o.Total)
	return nil
}

// CancelOrder cancels an order that has not shipped yet.
func (a *App) CancelOrder(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("cancel <orderID>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return a.usage("cancel <orderID>", err)
	}

	o, err := a.orderService.Cancel(ctx, id)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printf("Order %s is %s.\n", o.OrderNumber, o.Status)
	return nil
}
