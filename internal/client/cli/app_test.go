package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storefront/internal/client/apiclient"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/guestcart"
	"github.com/dmitrijs2005/storefront/internal/client/guestwishlist"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/client/tokenstore"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

type testApp struct {
	*App
	out      *bytes.Buffer
	auth     *fakeAuth
	cart     *fakeCart
	orders   *fakeOrders
	products *fakeProducts
	variants *fakeVariants
	reviews  *fakeReviews
	payments *fakePayments
	address  *fakeAddresses
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()

	st := storage.NewMemory()
	logger := logging.Discard()
	out := &bytes.Buffer{}

	ta := &testApp{
		out:      out,
		auth:     &fakeAuth{user: &models.User{Name: "Ann", Email: "ann@example.com"}},
		cart:     &fakeCart{},
		orders:   &fakeOrders{},
		products: &fakeProducts{},
		variants: &fakeVariants{},
		reviews:  &fakeReviews{},
		payments: &fakePayments{},
		address:  &fakeAddresses{},
	}
	ta.App = &App{
		config:         cfg,
		logger:         logger,
		authService:    ta.auth,
		cartService:    ta.cart,
		orderService:   ta.orders,
		productService: ta.products,
		variantService: ta.variants,
		reviewService:  ta.reviews,
		paymentService: ta.payments,
		addressService: ta.address,
		local:          st,
		guestCart:      guestcart.New(st, logger),
		wishlist:       guestwishlist.New(st, logger),
		reader:         rdr(""),
		out:            out,
		route:          RouteHome,
	}
	ta.watchGuestStores()
	t.Cleanup(ta.Close)
	return ta
}

func stubPrompts(t *testing.T, text, password string) {
	t.Helper()
	origText, origPassword := getSimpleText, getPassword
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return text, nil }
	getPassword = func(io.Writer, string) (string, error) { return password, nil }
	t.Cleanup(func() { getSimpleText, getPassword = origText, origPassword })
}

func TestNavigate_LoginRouteShowsNotice(t *testing.T) {
	a := newTestApp(t)

	a.Navigate(RouteCart)
	assert.Equal(t, RouteCart, a.CurrentRoute())
	assert.Empty(t, a.out.String())

	a.Navigate(a.config.LoginRoute)
	assert.Equal(t, "/login", a.CurrentRoute())
	assert.Contains(t, a.out.String(), "Your session has ended. Please log in again.")
}

func TestGuestCartCommands(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	require.NoError(t, a.Add(ctx, []string{"7", "2", "size=M"}))
	require.NoError(t, a.Add(ctx, []string{"7", "3", "size=M"}))
	assert.Contains(t, a.out.String(), "[guest cart: 5 item(s)]")

	lines := a.guestCart.GetCart(ctx)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, guestcart.Options{"size": "M"}, lines[0].Options)

	require.NoError(t, a.Update(ctx, []string{"7", "1", "size=M"}))
	assert.Equal(t, 1, a.guestCart.GetCartCount(ctx))

	a.out.Reset()
	require.NoError(t, a.Cart(ctx))
	assert.Equal(t, RouteCart, a.CurrentRoute())
	assert.Contains(t, a.out.String(), `product 7 "size"="M"`)

	require.NoError(t, a.Remove(ctx, []string{"7", "size=M"}))
	assert.Empty(t, a.guestCart.GetCart(ctx))
	assert.Empty(t, a.cart.added)
}

func TestGuestAddRejectsBadQuantity(t *testing.T) {
	a := newTestApp(t)

	err := a.Add(context.Background(), []string{"7", "0"})
	require.Error(t, err)
	assert.Contains(t, a.out.String(), "Error:")
	assert.Empty(t, a.guestCart.GetCart(context.Background()))
}

func TestSignedInCartCommandsHitServer(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	a.auth.loggedIn = true
	a.cart.cart = &models.Cart{
		Items: []models.CartItem{{ID: 11, ProductID: 7, Quantity: 2, Price: 5}},
		Total: 10,
	}

	require.NoError(t, a.Add(ctx, []string{"7", "2", "3", "color=red"}))
	require.Len(t, a.cart.added, 1)
	got := a.cart.added[0]
	assert.Equal(t, int64(7), got.ProductID)
	assert.Equal(t, 2, got.Quantity)
	require.NotNil(t, got.VariantID)
	assert.Equal(t, int64(3), *got.VariantID)
	assert.Equal(t, map[string]string{"color": "red"}, got.Options)

	require.NoError(t, a.Update(ctx, []string{"11", "4"}))
	assert.Equal(t, map[int64]int{11: 4}, a.cart.updated)

	require.NoError(t, a.Remove(ctx, []string{"11"}))
	assert.Equal(t, []int64{11}, a.cart.removed)

	require.NoError(t, a.ClearCart(ctx))
	assert.Equal(t, 1, a.cart.cleared)

	assert.Contains(t, a.out.String(), "Total: 10.00")
	assert.Empty(t, a.guestCart.GetCart(ctx))
}

func TestSignedInUpdateUsage(t *testing.T) {
	a := newTestApp(t)
	a.auth.loggedIn = true

	err := a.Update(context.Background(), []string{"11"})
	require.ErrorIs(t, err, errUsage)
	assert.Contains(t, a.out.String(), "Usage: update <itemID> <qty>")
	assert.Nil(t, a.cart.updated)
}

func TestWishCachesDisplayFields(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	sale := models.Money(15)
	a.products.products = []models.Product{{
		ID: 9, Name: "Lamp", Slug: "lamp", Price: 20, SalePrice: &sale, StockQuantity: 3,
		Images: []models.ProductImage{{URL: "https://img/lamp.png", IsPrimary: true}},
	}}

	require.NoError(t, a.Wish(ctx, []string{"9"}))
	require.NoError(t, a.Wish(ctx, []string{"9"}))

	entries := a.wishlist.GetWishlist(ctx)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Display)
	assert.Equal(t, "Lamp", entries[0].Display.Name)
	assert.Equal(t, 20.0, entries[0].Display.Price)
	require.NotNil(t, entries[0].Display.SalePrice)
	assert.Equal(t, 15.0, *entries[0].Display.SalePrice)
	assert.Equal(t, "https://img/lamp.png", entries[0].Display.Image)
	assert.True(t, entries[0].Display.InStock)
	assert.Contains(t, a.out.String(), "Already in your wishlist.")
	assert.Contains(t, a.out.String(), "[wishlist: 1 product(s)]")
}

func TestWishUnknownProductStillSaved(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	require.NoError(t, a.Wish(ctx, []string{"42"}))
	entries := a.wishlist.GetWishlist(ctx)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Display)

	require.NoError(t, a.Unwish(ctx, []string{"42"}))
	assert.Zero(t, a.wishlist.GetCount(ctx))

	a.out.Reset()
	require.NoError(t, a.Wishlist(ctx))
	assert.Equal(t, RouteWishlist, a.CurrentRoute())
	assert.Contains(t, a.out.String(), "Your wishlist is empty.")
}

func TestLoginAndLogout(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	stubPrompts(t, "ann@example.com", "pw")

	_, err := a.guestCart.AddItem(ctx, 1, 2)
	require.NoError(t, err)

	require.NoError(t, a.Login(ctx))
	assert.Equal(t, "ann@example.com", a.auth.gotEmail)
	assert.Equal(t, "pw", a.auth.gotPassword)
	assert.Equal(t, RouteHome, a.CurrentRoute())
	assert.Contains(t, a.out.String(), "Welcome, Ann!")
	assert.Contains(t, a.out.String(), "You have 2 item(s) in your guest cart.")

	a.auth.logoutErr = &apiclient.APIError{Kind: apiclient.KindNetwork, Message: apiclient.MessageNetwork}
	require.NoError(t, a.Logout(ctx))
	assert.Equal(t, 1, a.auth.logouts)
	assert.False(t, a.isLoggedIn(ctx))
	assert.Contains(t, a.out.String(), "Logged out.")
}

func TestLoginValidationErrorsSorted(t *testing.T) {
	a := newTestApp(t)
	stubPrompts(t, "bad", "")
	a.auth.loginErr = &apiclient.APIError{
		Kind:    apiclient.KindValidation,
		Message: "The given data was invalid.",
		Errors: map[string][]string{
			"password": {"The password field is required."},
			"email":    {"The email must be a valid email address."},
		},
	}

	err := a.Login(context.Background())
	require.Error(t, err)

	assert.Equal(t, "/login", a.CurrentRoute())
	assert.Equal(t, "Error: The given data was invalid.\n"+
		"  email: The email must be a valid email address.\n"+
		"  password: The password field is required.\n", a.out.String())
}

func TestRegister(t *testing.T) {
	a := newTestApp(t)
	stubPrompts(t, "x", "secret")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, models.Registration{
		Name: "x", Email: "x", Password: "secret", PasswordConfirmation: "secret",
	}, a.auth.gotReg)
	assert.Equal(t, RouteAccount, a.CurrentRoute())
}

func TestOrders(t *testing.T) {
	a := newTestApp(t)
	a.orders.page = &models.Page[models.Order]{Data: []models.Order{
		{OrderNumber: "ORD-1", Status: models.OrderStatusShipped, Total: 42.5},
	}}

	require.NoError(t, a.Orders(context.Background()))
	assert.Equal(t, RouteOrders, a.CurrentRoute())
	assert.Contains(t, a.out.String(), "ORD-1")
	assert.Contains(t, a.out.String(), "42.50")
}

func TestProductsAndProduct(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	a.products.products = []models.Product{{ID: 1, Name: "Mug", Slug: "mug", Price: 8}}
	a.variants.variants = []models.ProductVariant{{ID: 5, Name: "Blue"}}

	require.NoError(t, a.Products(ctx, []string{"big", "mug"}))
	assert.Equal(t, "big mug", a.products.filter.Search)
	assert.Contains(t, a.out.String(), "Mug")

	require.NoError(t, a.Product(ctx, []string{"mug"}))
	assert.Equal(t, []int64{1}, a.variants.asked)
	assert.Contains(t, a.out.String(), "variant 5: Blue 8.00")

	require.ErrorIs(t, a.Product(ctx, nil), errUsage)
}

func TestSessionRefresherTicks(t *testing.T) {
	a := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		a.StartSessionRefresher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return a.auth.ensureFresh.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
}

func TestParseLineArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		withQty     bool
		qtyRequired bool
		want        lineArgs
		wantErr     bool
	}{
		{name: "id only", args: []string{"7"}, withQty: true, want: lineArgs{id: 7, qty: 1}},
		{name: "qty", args: []string{"7", "3"}, withQty: true, want: lineArgs{id: 7, qty: 3}},
		{name: "qty variant options", args: []string{"7", "3", "2", "size=M"}, withQty: true,
			want: lineArgs{id: 7, qty: 3, variant: 2, options: guestcart.Options{"size": "M"}}},
		{name: "options right after id", args: []string{"7", "size=M"}, withQty: true,
			want: lineArgs{id: 7, qty: 1, options: guestcart.Options{"size": "M"}}},
		{name: "variant without qty", args: []string{"7", "2"}, want: lineArgs{id: 7, qty: 1, variant: 2}},
		{name: "missing required qty", args: []string{"7"}, withQty: true, qtyRequired: true, wantErr: true},
		{name: "no args", wantErr: true},
		{name: "bad id", args: []string{"x"}, wantErr: true},
		{name: "zero id", args: []string{"0"}, wantErr: true},
		{name: "bad qty", args: []string{"7", "many"}, withQty: true, wantErr: true},
		{name: "bad option", args: []string{"7", "1", "2", "=M"}, withQty: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLineArgs(tt.args, tt.withQty, tt.qtyRequired)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewApp_UnauthorizedNavigatesToLogin(t *testing.T) {
	ctx := context.Background()

	r := chi.NewRouter()
	r.Get("/auth/me", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL

	st := storage.NewMemory()
	tokens := tokenstore.New(st, logging.Discard())
	require.NoError(t, tokens.SetToken(ctx, "abc", 3600, "Bearer"))

	a, err := NewApp(cfg, logging.Discard(), st)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	var out bytes.Buffer
	a.out = &out

	require.True(t, a.isLoggedIn(ctx))
	require.Error(t, a.Profile(ctx))

	assert.False(t, a.isLoggedIn(ctx))
	assert.Equal(t, "/login", a.CurrentRoute())
	assert.Contains(t, out.String(), "Your session has ended. Please log in again.")
}
