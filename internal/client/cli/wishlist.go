package cli

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/guestwishlist"
)

// Wish saves a product to the wishlist together with its display fields when
// the catalog can supply them.
func (a *App) Wish(ctx context.Context, args []string) error {
	la, err := parseLineArgs(args, false, false)
	if err != nil || len(args) != 1 {
		return a.usage("wish <productID>", errUsage)
	}

	if a.wishlist.IsInWishlist(ctx, la.id) {
		a.println("Already in your wishlist.")
		return nil
	}

	var display *guestwishlist.Display
	if p, err := a.productService.GetByID(ctx, la.id); err == nil {
		display = &guestwishlist.Display{
			Name:    p.Name,
			Slug:    p.Slug,
			Price:   float64(p.Price),
			Image:   p.PrimaryImage(),
			InStock: p.InStock(),
		}
		if p.SalePrice != nil {
			sale := float64(*p.SalePrice)
			display.SalePrice = &sale
		}
	} else {
		a.logger.Debug(ctx, "wishlisting without display fields", "product", la.id, "error", err)
	}

	if _, err := a.wishlist.AddItem(ctx, la.id, display); err != nil {
		a.printError(err)
		return err
	}
	return nil
}

func (a *App) Unwish(ctx context.Context, args []string) error {
	la, err := parseLineArgs(args, false, false)
	if err != nil || len(args) != 1 {
		return a.usage("unwish <productID>", errUsage)
	}
	if _, err := a.wishlist.RemoveItem(ctx, la.id); err != nil {
		a.printError(err)
		return err
	}
	return nil
}

func (a *App) Wishlist(ctx context.Context) error {
	a.goTo(RouteWishlist)

	entries := a.wishlist.GetWishlist(ctx)
	if len(entries) == 0 {
		a.println("Your wishlist is empty.")
		return nil
	}
	for _, e := range entries {
		if e.Display != nil {
			a.printf("%6d  %-40s %10.2f  added %s\n", e.ProductID, e.Display.Name, e.Display.Price, e.AddedAt.Format("2006-01-02"))
			continue
		}
		a.printf("%6d  added %s\n", e.ProductID, e.AddedAt.Format("2006-01-02"))
	}
	return nil
}
