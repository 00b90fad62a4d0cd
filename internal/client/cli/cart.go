package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/guestcart"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

var errUsage = errors.New("usage")

// lineArgs is "<id> [qty] [variant] [k=v ...]" as typed by the user.
type lineArgs struct {
	id      int64
	qty     int
	variant int64
	options guestcart.Options
}

// parseLineArgs reads an id, an optional quantity when withQty is set, an
// optional variant and then option pairs.
func parseLineArgs(args []string, withQty, qtyRequired bool) (lineArgs, error) {
	la := lineArgs{qty: 1}
	if len(args) == 0 {
		return la, errUsage
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return la, fmt.Errorf("invalid id %q", args[0])
	}
	la.id = id
	rest := args[1:]

	if withQty {
		if len(rest) == 0 || strings.Contains(rest[0], "=") {
			if qtyRequired {
				return la, errUsage
			}
		} else {
			q, err := strconv.Atoi(rest[0])
			if err != nil {
				return la, fmt.Errorf("invalid quantity %q", rest[0])
			}
			la.qty = q
			rest = rest[1:]
		}
	}

	if len(rest) > 0 && !strings.Contains(rest[0], "=") {
		v, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil || v < 0 {
			return la, fmt.Errorf("invalid variant %q", rest[0])
		}
		la.variant = v
		rest = rest[1:]
	}

	la.options, err = guestcart.ParseOptions(rest)
	if err != nil {
		return la, err
	}
	return la, nil
}

func (la lineArgs) itemOptions() []guestcart.ItemOption {
	return []guestcart.ItemOption{guestcart.WithVariant(la.variant), guestcart.WithOptions(la.options)}
}

// Add puts a product in the server cart when signed in and in the guest cart
// otherwise.
func (a *App) Add(ctx context.Context, args []string) error {
	la, err := parseLineArgs(args, true, false)
	if err != nil {
		return a.usage("add <productID> [qty] [variant] [k=v ...]", err)
	}

	if a.isLoggedIn(ctx) {
		item := models.AddCartItem{ProductID: la.id, Quantity: la.qty, Options: la.options}
		if la.variant > 0 {
			item.VariantID = &la.variant
		}
		c, err := a.cartService.AddItem(ctx, item)
		if err != nil {
			a.printError(err)
			return err
		}
		a.printServerCart(c)
		return nil
	}

	if _, err := a.guestCart.AddItem(ctx, la.id, la.qty, la.itemOptions()...); err != nil {
		a.printError(err)
		return err
	}
	return nil
}

func (a *App) Update(ctx context.Context, args []string) error {
	if a.isLoggedIn(ctx) {
		if len(args) != 2 {
			return a.usage("update <itemID> <qty>", errUsage)
		}
		la, err := parseLineArgs(args, true, true)
		if err != nil {
			return a.usage("update <itemID> <qty>", err)
		}
		c, err := a.cartService.UpdateItem(ctx, la.id, la.qty)
		if err != nil {
			a.printError(err)
			return err
		}
		a.printServerCart(c)
		return nil
	}

	la, err := parseLineArgs(args, true, true)
	if err != nil {
		return a.usage("update <productID> <qty> [variant] [k=v ...]", err)
	}
	if _, err := a.guestCart.UpdateItem(ctx, la.id, la.qty, la.itemOptions()...); err != nil {
		a.printError(err)
		return err
	}
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if a.isLoggedIn(ctx) {
		if len(args) != 1 {
			return a.usage("remove <itemID>", errUsage)
		}
		la, err := parseLineArgs(args, false, false)
		if err != nil {
			return a.usage("remove <itemID>", err)
		}
		c, err := a.cartService.RemoveItem(ctx, la.id)
		if err != nil {
			a.printError(err)
			return err
		}
		a.printServerCart(c)
		return nil
	}

	la, err := parseLineArgs(args, false, false)
	if err != nil {
		return a.usage("remove <productID> [variant] [k=v ...]", err)
	}
	if _, err := a.guestCart.RemoveItem(ctx, la.id, la.itemOptions()...); err != nil {
		a.printError(err)
		return err
	}
	return nil
}

func (a *App) Cart(ctx context.Context) error {
	a.goTo(RouteCart)

	if a.isLoggedIn(ctx) {
		c, err := a.cartService.Get(ctx)
		if err != nil {
			a.printError(err)
			return err
		}
		a.printServerCart(c)
		return nil
	}

	lines := a.guestCart.GetCart(ctx)
	if len(lines) == 0 {
		a.println("Your cart is empty.")
		return nil
	}
	for _, l := range lines {
		desc := fmt.Sprintf("product %d", l.ProductID)
		if l.VariantID != 0 {
			desc += fmt.Sprintf(" variant %d", l.VariantID)
		}
		if len(l.Options) > 0 {
			desc += " " + l.Options.Canonical()
		}
		a.printf("%4d x %s\n", l.Quantity, desc)
	}
	a.printf("Items: %d\n", a.guestCart.GetCartCount(ctx))
	return nil
}

func (a *App) ClearCart(ctx context.Context) error {
	if a.isLoggedIn(ctx) {
		if err := a.cartService.Clear(ctx); err != nil {
			a.printError(err)
			return err
		}
		a.println("Cart cleared.")
		return nil
	}

	if err := a.guestCart.ClearCart(ctx); err != nil {
		a.printError(err)
		return err
	}
	return nil
}

func (a *App) printServerCart(c *models.Cart) {
	if c == nil || len(c.Items) == 0 {
		a.println("Your cart is empty.")
		return
	}
	for _, it := range c.Items {
		name := fmt.Sprintf("product %d", it.ProductID)
		if it.Product != nil {
			name = it.Product.Name
		}
		a.printf("#%-5d %4d x %-30s %10s\n", it.ID, it.Quantity, name, it.Subtotal())
	}
	a.printf("Total: %s\n", c.Total)
}

func (a *App) usage(text string, err error) error {
	if !errors.Is(err, errUsage) {
		a.println("Error:", err)
	}
	a.println("Usage:", text)
	return err
}
