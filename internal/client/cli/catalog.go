package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
)

const productsPerPage = 20

// Products lists the first page of products, optionally filtered by a search
// phrase made of all arguments.
func (a *App) Products(ctx context.Context, args []string) error {
	a.goTo(RouteProducts)

	page, err := a.productService.List(ctx, services.ProductFilter{
		ListParams: services.ListParams{Page: 1, PerPage: productsPerPage},
		Search:     strings.Join(args, " "),
	})
	if err != nil {
		a.printError(err)
		return err
	}

	if len(page.Data) == 0 {
		a.println("No products found.")
		return nil
	}
	for _, p := range page.Data {
		a.printf("%6d  %-40s %10s  %s\n", p.ID, p.Name, p.EffectivePrice(), stock(p))
	}
	if page.HasMore() {
		a.printf("... %d products in total\n", page.Meta.Total)
	}
	return nil
}

// Product shows one product with its variants.
func (a *App) Product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: product <slug>")
		return errUsage
	}
	a.goTo(RouteProducts + "/" + args[0])

	p, err := a.productService.GetBySlug(ctx, args[0])
	if err != nil {
		a.printError(err)
		return err
	}

	a.printf("%s (#%d)\n", p.Name, p.ID)
	if p.SalePrice != nil && p.EffectivePrice() != p.Price {
		a.printf("Price: %s (was %s)\n", p.EffectivePrice(), p.Price)
	} else {
		a.printf("Price: %s\n", p.Price)
	}
	a.printf("Stock: %s\n", stock(*p))
	if p.Description != "" {
		a.println(p.Description)
	}

	variants := p.Variants
	if len(variants) == 0 {
		if variants, err = a.variantService.ListForProduct(ctx, p.ID); err != nil {
			a.logger.Debug(ctx, "variants unavailable", "product", p.ID, "error", err)
		}
	}
	for _, v := range variants {
		price := p.EffectivePrice()
		if v.Price != nil {
			price = *v.Price
		}
		a.printf("  variant %d: %s %s\n", v.ID, v.Name, price)
	}
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	cats, err := a.productService.Categories(ctx)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printCategories(cats, 0)
	return nil
}

func (a *App) printCategories(cats []models.Category, depth int) {
	for _, c := range cats {
		a.printf("%s%s (%s)\n", strings.Repeat("  ", depth), c.Name, c.Slug)
		a.printCategories(c.Children, depth+1)
	}
}

func stock(p models.Product) string {
	if p.InStock() {
		return "in stock"
	}
	return "out of stock"
}
