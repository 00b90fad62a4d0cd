package cli

import (
	"context"
	"sync/atomic"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
)

type fakeAuth struct {
	loggedIn bool
	user     *models.User

	loginErr   error
	logoutErr  error
	profileErr error

	gotEmail, gotPassword string
	gotReg                models.Registration

	logouts     int
	logoutAlls  int
	ensureFresh atomic.Int32
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.User, error) {
	f.gotEmail, f.gotPassword = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.loggedIn = true
	return f.user, nil
}

func (f *fakeAuth) Register(_ context.Context, reg models.Registration) (*models.User, error) {
	f.gotReg = reg
	f.loggedIn = true
	return f.user, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	f.loggedIn = false
	return f.logoutErr
}

func (f *fakeAuth) LogoutAll(context.Context) error {
	f.logoutAlls++
	f.loggedIn = false
	return f.logoutErr
}

func (f *fakeAuth) Refresh(context.Context) error { return nil }

func (f *fakeAuth) Profile(context.Context) (*models.User, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.user, nil
}

func (f *fakeAuth) EnsureFresh(context.Context) error {
	f.ensureFresh.Add(1)
	return nil
}

func (f *fakeAuth) IsAuthenticated(context.Context) bool { return f.loggedIn }

type fakeCart struct {
	cart    *models.Cart
	added   []models.AddCartItem
	updated map[int64]int
	removed []int64
	cleared int
}

func (f *fakeCart) Get(context.Context) (*models.Cart, error) { return f.cart, nil }

func (f *fakeCart) AddItem(_ context.Context, item models.AddCartItem) (*models.Cart, error) {
	f.added = append(f.added, item)
	return f.cart, nil
}

func (f *fakeCart) UpdateItem(_ context.Context, itemID int64, quantity int) (*models.Cart, error) {
	if f.updated == nil {
		f.updated = map[int64]int{}
	}
	f.updated[itemID] = quantity
	return f.cart, nil
}

func (f *fakeCart) RemoveItem(_ context.Context, itemID int64) (*models.Cart, error) {
	f.removed = append(f.removed, itemID)
	return f.cart, nil
}

func (f *fakeCart) Clear(context.Context) error {
	f.cleared++
	return nil
}

type fakeOrders struct {
	page      *models.Page[models.Order]
	order     *models.Order
	created   []models.CreateOrder
	cancelled []int64
	err       error
}

func (f *fakeOrders) List(context.Context, services.ListParams) (*models.Page[models.Order], error) {
	return f.page, nil
}

func (f *fakeOrders) Get(_ context.Context, id int64) (*models.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, common.ErrNotFound
	}
	return f.order, nil
}

func (f *fakeOrders) Create(_ context.Context, req models.CreateOrder) (*models.Order, error) {
	f.created = append(f.created, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

func (f *fakeOrders) Cancel(_ context.Context, id int64) (*models.Order, error) {
	f.cancelled = append(f.cancelled, id)
	if f.err != nil {
		return nil, f.err
	}
	o := *f.order
	o.Status = models.OrderStatusCancelled
	return &o, nil
}

type fakePayments struct {
	intentFor []int64
	confirmed map[int64]string
}

func (f *fakePayments) CreateIntent(_ context.Context, orderID int64) (*models.PaymentIntent, error) {
	f.intentFor = append(f.intentFor, orderID)
	return &models.PaymentIntent{ID: "pi_1", Amount: 42.5, Currency: "usd", Status: "requires_confirmation"}, nil
}

func (f *fakePayments) Confirm(_ context.Context, orderID int64, intentID string) (*models.Payment, error) {
	if f.confirmed == nil {
		f.confirmed = map[int64]string{}
	}
	f.confirmed[orderID] = intentID
	return &models.Payment{OrderID: orderID, Amount: 42.5, Status: "succeeded"}, nil
}

type fakeReviews struct {
	page    *models.Page[models.Review]
	created map[int64]models.ReviewInput
	updated map[int64]models.ReviewInput
	deleted []int64
}

func (f *fakeReviews) List(context.Context, int64, services.ListParams) (*models.Page[models.Review], error) {
	if f.page == nil {
		return &models.Page[models.Review]{}, nil
	}
	return f.page, nil
}

func (f *fakeReviews) Create(_ context.Context, productID int64, in models.ReviewInput) (*models.Review, error) {
	if f.created == nil {
		f.created = map[int64]models.ReviewInput{}
	}
	f.created[productID] = in
	return &models.Review{ID: 100, ProductID: productID, Rating: in.Rating, Comment: in.Comment}, nil
}

func (f *fakeReviews) Update(_ context.Context, reviewID int64, in models.ReviewInput) (*models.Review, error) {
	if f.updated == nil {
		f.updated = map[int64]models.ReviewInput{}
	}
	f.updated[reviewID] = in
	return &models.Review{ID: reviewID, Rating: in.Rating, Comment: in.Comment}, nil
}

func (f *fakeReviews) Delete(_ context.Context, reviewID int64) error {
	f.deleted = append(f.deleted, reviewID)
	return nil
}

type fakeAddresses struct {
	list       []models.Address
	created    []models.Address
	updated    map[int64]models.Address
	deleted    []int64
	defaultIDs []int64
}

func (f *fakeAddresses) List(context.Context) ([]models.Address, error) { return f.list, nil }

func (f *fakeAddresses) Create(_ context.Context, ad models.Address) (*models.Address, error) {
	f.created = append(f.created, ad)
	ad.ID = int64(len(f.created))
	return &ad, nil
}

func (f *fakeAddresses) Update(_ context.Context, id int64, ad models.Address) (*models.Address, error) {
	if f.updated == nil {
		f.updated = map[int64]models.Address{}
	}
	f.updated[id] = ad
	ad.ID = id
	return &ad, nil
}

func (f *fakeAddresses) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAddresses) SetDefault(_ context.Context, id int64) (*models.Address, error) {
	f.defaultIDs = append(f.defaultIDs, id)
	return &models.Address{ID: id, IsDefault: true}, nil
}

type fakeProducts struct {
	products   []models.Product
	categories []models.Category
	filter     services.ProductFilter
}

func (f *fakeProducts) List(_ context.Context, flt services.ProductFilter) (*models.Page[models.Product], error) {
	f.filter = flt
	return &models.Page[models.Product]{
		Data: f.products,
		Meta: models.PageMeta{CurrentPage: 1, LastPage: 1, Total: len(f.products)},
	}, nil
}

func (f *fakeProducts) GetBySlug(_ context.Context, slug string) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].Slug == slug {
			return &f.products[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeProducts) GetByID(_ context.Context, id int64) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeProducts) Categories(context.Context) ([]models.Category, error) {
	return f.categories, nil
}

type fakeVariants struct {
	variants []models.ProductVariant
	asked    []int64
}

func (f *fakeVariants) ListForProduct(_ context.Context, productID int64) ([]models.ProductVariant, error) {
	f.asked = append(f.asked, productID)
	return f.variants, nil
}

func (f *fakeVariants) Get(context.Context, int64) (*models.ProductVariant, error) {
	return nil, common.ErrNotFound
}
