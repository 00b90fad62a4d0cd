package services

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

type OrderService interface {
	List(ctx context.Context, p ListParams) (*models.Page[models.Order], error)
	Get(ctx context.Context, orderID int64) (*models.Order, error)
	// Create checks out the current server cart.
	Create(ctx context.Context, req models.CreateOrder) (*models.Order, error)
	Cancel(ctx context.Context, orderID int64) (*models.Order, error)
}

type orderService struct {
	api Doer
}

func NewOrderService(api Doer) OrderService {
	return &orderService{api: api}
}

func (s *orderService) List(ctx context.Context, p ListParams) (*models.Page[models.Order], error) {
	var resp models.Page[models.Order]
	if err := get(ctx, s.api, "/orders", p.values(), &resp); err != nil {
		return nil, wrap("list orders", err)
	}
	return &resp, nil
}

func (s *orderService) Get(ctx context.Context, orderID int64) (*models.Order, error) {
	var resp models.Envelope[models.Order]
	if err := get(ctx, s.api, "/orders/"+id(orderID), nil, &resp); err != nil {
		return nil, wrap("get order", err)
	}
	return &resp.Data, nil
}

func (s *orderService) Create(ctx context.Context, req models.CreateOrder) (*models.Order, error) {
	var resp models.Envelope[models.Order]
	if err := post(ctx, s.api, "/orders", req, &resp); err != nil {
		return nil, wrap("create order", err)
	}
	return &resp.Data, nil
}

func (s *orderService) Cancel(ctx context.Context, orderID int64) (*models.Order, error) {
	var resp models.Envelope[models.Order]
	if err := post(ctx, s.api, "/orders/"+id(orderID)+"/cancel", nil, &resp); err != nil {
		return nil, wrap("cancel order", err)
	}
	return &resp.Data, nil
}
