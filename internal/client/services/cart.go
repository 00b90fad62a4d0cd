package services

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// CartService is the server-side cart of a logged-in customer.
type CartService interface {
	Get(ctx context.Context) (*models.Cart, error)
	AddItem(ctx context.Context, item models.AddCartItem) (*models.Cart, error)
	UpdateItem(ctx context.Context, itemID int64, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, itemID int64) (*models.Cart, error)
	Clear(ctx context.Context) error
}

type cartService struct {
	api Doer
}

func NewCartService(api Doer) CartService {
	return &cartService{api: api}
}

func (s *cartService) Get(ctx context.Context) (*models.Cart, error) {
	var resp models.Envelope[models.Cart]
	if err := get(ctx, s.api, "/cart", nil, &resp); err != nil {
		return nil, wrap("get cart", err)
	}
	return &resp.Data, nil
}

func (s *cartService) AddItem(ctx context.Context, item models.AddCartItem) (*models.Cart, error) {
	var resp models.Envelope[models.Cart]
	if err := post(ctx, s.api, "/cart/items", item, &resp); err != nil {
		return nil, wrap("add cart item", err)
	}
	return &resp.Data, nil
}

func (s *cartService) UpdateItem(ctx context.Context, itemID int64, quantity int) (*models.Cart, error) {
	var resp models.Envelope[models.Cart]
	body := map[string]int{"quantity": quantity}
	if err := put(ctx, s.api, "/cart/items/"+id(itemID), body, &resp); err != nil {
		return nil, wrap("update cart item", err)
	}
	return &resp.Data, nil
}

func (s *cartService) RemoveItem(ctx context.Context, itemID int64) (*models.Cart, error) {
	var resp models.Envelope[models.Cart]
	if err := del(ctx, s.api, "/cart/items/"+id(itemID), &resp); err != nil {
		return nil, wrap("remove cart item", err)
	}
	return &resp.Data, nil
}

func (s *cartService) Clear(ctx context.Context) error {
	return wrap("clear cart", del(ctx, s.api, "/cart", nil))
}
