package services

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// SessionDoer is a Doer with a cookie session, such as an apiclient.Client
// using the cookie and CSRF strategy.
type SessionDoer interface {
	Doer
	RefreshSession(ctx context.Context) error
}

// AdminService drives the admin console endpoints.
type AdminService interface {
	// Login fetches a CSRF cookie and then opens a session.
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
	Orders(ctx context.Context, status models.OrderStatus, p ListParams) (*models.Page[models.Order], error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error)
	Products(ctx context.Context, p ListParams) (*models.Page[models.Product], error)
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID int64, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
	Users(ctx context.Context, p ListParams) (*models.Page[models.User], error)
}

type adminService struct {
	api SessionDoer
}

func NewAdminService(api SessionDoer) AdminService {
	return &adminService{api: api}
}

func (s *adminService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := s.api.RefreshSession(ctx); err != nil {
		return nil, wrap("admin login", err)
	}
	var resp models.Envelope[models.User]
	if err := post(ctx, s.api, "/admin/login", models.Credentials{Email: email, Password: password}, &resp); err != nil {
		return nil, wrap("admin login", err)
	}
	return &resp.Data, nil
}

func (s *adminService) Logout(ctx context.Context) error {
	return wrap("admin logout", post(ctx, s.api, "/admin/logout", nil, nil))
}

func (s *adminService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var resp models.Envelope[models.DashboardStats]
	if err := get(ctx, s.api, "/admin/dashboard", nil, &resp); err != nil {
		return nil, wrap("admin dashboard", err)
	}
	return &resp.Data, nil
}

func (s *adminService) Orders(ctx context.Context, status models.OrderStatus, p ListParams) (*models.Page[models.Order], error) {
	q := p.values()
	if status != "" {
		q.Set("status", string(status))
	}
	var resp models.Page[models.Order]
	if err := get(ctx, s.api, "/admin/orders", q, &resp); err != nil {
		return nil, wrap("admin orders", err)
	}
	return &resp, nil
}

func (s *adminService) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	var resp models.Envelope[models.Order]
	body := map[string]models.OrderStatus{"status": status}
	if err := put(ctx, s.api, "/admin/orders/"+id(orderID)+"/status", body, &resp); err != nil {
		return nil, wrap("update order status", err)
	}
	return &resp.Data, nil
}

func (s *adminService) Products(ctx context.Context, p ListParams) (*models.Page[models.Product], error) {
	var resp models.Page[models.Product]
	if err := get(ctx, s.api, "/admin/products", p.values(), &resp); err != nil {
		return nil, wrap("admin products", err)
	}
	return &resp, nil
}

func (s *adminService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	var resp models.Envelope[models.Product]
	if err := post(ctx, s.api, "/admin/products", in, &resp); err != nil {
		return nil, wrap("create product", err)
	}
	return &resp.Data, nil
}

func (s *adminService) UpdateProduct(ctx context.Context, productID int64, in models.ProductInput) (*models.Product, error) {
	var resp models.Envelope[models.Product]
	if err := put(ctx, s.api, "/admin/products/"+id(productID), in, &resp); err != nil {
		return nil, wrap("update product", err)
	}
	return &resp.Data, nil
}

func (s *adminService) DeleteProduct(ctx context.Context, productID int64) error {
	return wrap("delete product", del(ctx, s.api, "/admin/products/"+id(productID), nil))
}

func (s *adminService) Users(ctx context.Context, p ListParams) (*models.Page[models.User], error) {
	var resp models.Page[models.User]
	if err := get(ctx, s.api, "/admin/users", p.values(), &resp); err != nil {
		return nil, wrap("admin users", err)
	}
	return &resp, nil
}

