package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storefront/internal/client/apiclient"
	"github.com/dmitrijs2005/storefront/internal/client/guestcart"
	"github.com/dmitrijs2005/storefront/internal/client/guestwishlist"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/client/tokenstore"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

func TestCheckoutAndPay(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	a.auth.loggedIn = true
	a.orders.order = &models.Order{ID: 12, OrderNumber: "ORD-12", Status: models.OrderStatusPending, Total: 42.5}

	require.NoError(t, a.Checkout(ctx, []string{"3"}))
	require.Len(t, a.orders.created, 1)
	assert.Equal(t, models.CreateOrder{ShippingAddressID: 3, PaymentMethod: "card"}, a.orders.created[0])
	assert.Equal(t, []int64{12}, a.payments.intentFor)
	assert.Equal(t, RouteCheckout, a.CurrentRoute())
	assert.Contains(t, a.out.String(), "Order ORD-12 placed, total 42.50.")
	assert.Contains(t, a.out.String(), "Confirm with: pay 12 pi_1")

	require.NoError(t, a.Checkout(ctx, []string{"3", "paypal"}))
	assert.Equal(t, "paypal", a.orders.created[1].PaymentMethod)

	require.NoError(t, a.Pay(ctx, []string{"12", "pi_1"}))
	assert.Equal(t, map[int64]string{12: "pi_1"}, a.payments.confirmed)
	assert.Contains(t, a.out.String(), "Payment of 42.50 is succeeded.")
}

func TestCheckoutFailureStopsBeforePayment(t *testing.T) {
	a := newTestApp(t)
	a.orders.err = &apiclient.APIError{
		Kind:    apiclient.KindValidation,
		Message: apiclient.MessageValidation,
		Errors:  map[string][]string{"cart": {"Your cart is empty."}},
	}

	require.Error(t, a.Checkout(context.Background(), []string{"3"}))
	assert.Empty(t, a.payments.intentFor)
	assert.Contains(t, a.out.String(), "  cart: Your cart is empty.")
}

func TestCheckoutUsage(t *testing.T) {
	a := newTestApp(t)

	require.ErrorIs(t, a.Checkout(context.Background(), nil), errUsage)
	require.Error(t, a.Checkout(context.Background(), []string{"abc"}))
	assert.Contains(t, a.out.String(), `Error: invalid id "abc"`)
	assert.Empty(t, a.orders.created)
}

func TestOrderAndCancel(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	a.orders.order = &models.Order{
		ID: 12, OrderNumber: "ORD-12", Status: models.OrderStatusPending, Total: 20,
		Items: []models.OrderItem{{ProductName: "Mug", Quantity: 2, Total: 16}},
	}

	require.NoError(t, a.Order(ctx, []string{"12"}))
	assert.Equal(t, RouteOrders+"/12", a.CurrentRoute())
	assert.Contains(t, a.out.String(), "Order ORD-12 (pending)")
	assert.Contains(t, a.out.String(), "Mug")

	require.NoError(t, a.CancelOrder(ctx, []string{"12"}))
	assert.Equal(t, []int64{12}, a.orders.cancelled)
	assert.Contains(t, a.out.String(), "Order ORD-12 is cancelled.")

	require.Error(t, a.Order(ctx, []string{"99"}))
}

func TestReviewCommands(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	a.reviews.page = &models.Page[models.Review]{Data: []models.Review{
		{ID: 4, Rating: 4, Comment: "solid", User: &models.User{Name: "Bo"}},
	}}

	require.NoError(t, a.Reviews(ctx, []string{"7"}))
	assert.Contains(t, a.out.String(), "#4 **** Bo: solid")

	require.NoError(t, a.Review(ctx, []string{"7", "5", "great", "mug"}))
	assert.Equal(t, models.ReviewInput{Rating: 5, Comment: "great mug"}, a.reviews.created[7])

	require.NoError(t, a.EditReview(ctx, []string{"4", "3", "fine"}))
	assert.Equal(t, models.ReviewInput{Rating: 3, Comment: "fine"}, a.reviews.updated[4])

	require.NoError(t, a.DeleteReview(ctx, []string{"4"}))
	assert.Equal(t, []int64{4}, a.reviews.deleted)

	require.ErrorIs(t, a.Review(ctx, []string{"7", "9", "too", "good"}), errInvalidRating)
	require.ErrorIs(t, a.Review(ctx, []string{"7", "5"}), errUsage)
	assert.Len(t, a.reviews.created, 1)
}

func TestAddressCommands(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	stubPrompts(t, "x", "")
	a.address.list = []models.Address{
		{ID: 2, FirstName: "Ann", LastName: "Lee", AddressLine1: "1 Main St", City: "Riga", PostalCode: "LV-1001", Country: "LV", IsDefault: true},
	}

	require.NoError(t, a.Addresses(ctx))
	assert.Equal(t, RouteAddresses, a.CurrentRoute())
	assert.Contains(t, a.out.String(), "*    2  Ann Lee, 1 Main St, LV-1001 Riga, LV")

	want := models.Address{FirstName: "x", LastName: "x", AddressLine1: "x", City: "x", PostalCode: "x", Country: "x"}
	require.NoError(t, a.AddAddress(ctx))
	assert.Equal(t, []models.Address{want}, a.address.created)

	require.NoError(t, a.EditAddress(ctx, []string{"2"}))
	assert.Equal(t, want, a.address.updated[2])

	require.NoError(t, a.DefaultAddress(ctx, []string{"2"}))
	assert.Equal(t, []int64{2}, a.address.defaultIDs)

	require.NoError(t, a.DeleteAddress(ctx, []string{"2"}))
	assert.Equal(t, []int64{2}, a.address.deleted)

	require.ErrorIs(t, a.DeleteAddress(ctx, nil), errUsage)
}

func TestLogoutAll(t *testing.T) {
	a := newTestApp(t)
	a.auth.loggedIn = true
	a.goTo(RouteAccount)

	require.NoError(t, a.LogoutAll(context.Background()))
	assert.Equal(t, 1, a.auth.logoutAlls)
	assert.False(t, a.isLoggedIn(context.Background()))
	assert.Equal(t, RouteHome, a.CurrentRoute())
	assert.Contains(t, a.out.String(), "Logged out on all devices.")
}

func TestResetClearsSQLiteStore(t *testing.T) {
	ctx := context.Background()
	logger := logging.Discard()

	db, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tokens := tokenstore.New(db, logger)
	require.NoError(t, tokens.SetToken(ctx, "abc", 3600, "Bearer"))

	a := newTestApp(t)
	a.local = db
	a.guestCart = guestcart.New(db, logger)
	a.wishlist = guestwishlist.New(db, logger)

	_, err = a.guestCart.AddItem(ctx, 7, 2)
	require.NoError(t, err)
	_, err = a.wishlist.AddItem(ctx, 9, nil)
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, "unrelated", []byte("keep")))

	require.NoError(t, a.Reset(ctx))

	assert.False(t, tokens.IsAuthenticated(ctx))
	assert.Empty(t, a.guestCart.GetCart(ctx))
	assert.Empty(t, a.wishlist.GetWishlist(ctx))
	v, err := db.Get(ctx, "unrelated")
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), v)
	assert.Contains(t, a.out.String(), "Local data cleared.")
}
