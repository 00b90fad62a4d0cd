package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/apiclient"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/guestcart"
	"github.com/dmitrijs2005/storefront/internal/client/guestwishlist"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/client/tokenstore"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Routes the App reports as its current location.
const (
	RouteHome      = "/"
	RouteProducts  = "/products"
	RouteCart      = "/cart"
	RouteWishlist  = "/wishlist"
	RouteAccount   = "/account"
	RouteOrders    = "/account/orders"
	RouteAddresses = "/account/addresses"
	RouteCheckout  = "/checkout"
)

// sessionCheckInterval is how often a running App refreshes a token that is
// about to expire.
const sessionCheckInterval = time.Minute

type App struct {
	config *config.Config
	logger logging.Logger

	authService    services.AuthService
	cartService    services.CartService
	orderService   services.OrderService
	productService services.ProductService
	variantService services.VariantService
	reviewService  services.ReviewService
	paymentService services.PaymentService
	addressService services.AddressService

	local storage.Storage

	guestCart *guestcart.Store
	wishlist  *guestwishlist.Store

	reader *bufio.Reader
	out    io.Writer

	mu    sync.Mutex
	route string

	unsubscribe []func()
}

var _ apiclient.Navigator = (*App)(nil)

// NewApp wires the API client, services and guest stores on top of st.
func NewApp(c *config.Config, logger logging.Logger, st storage.Storage) (*App, error) {
	a := &App{
		config: c,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		route:  RouteHome,

		local: st,
	}

	tokens := tokenstore.New(st, logger)
	api, err := apiclient.New(c.APIBaseURL, apiclient.NewTokenStrategy(tokens), logger,
		apiclient.WithTimeout(c.RequestTimeout),
		apiclient.WithLoginRoute(c.LoginRoute),
		apiclient.WithNavigator(a),
	)
	if err != nil {
		return nil, err
	}

	a.authService = services.NewAuthService(api, tokens, logger)
	a.cartService = services.NewCartService(api)
	a.orderService = services.NewOrderService(api)
	a.productService = services.NewProductService(api)
	a.variantService = services.NewVariantService(api)
	a.reviewService = services.NewReviewService(api)
	a.paymentService = services.NewPaymentService(api)
	a.addressService = services.NewAddressService(api)
	a.guestCart = guestcart.New(st, logger)
	a.wishlist = guestwishlist.New(st, logger)

	a.watchGuestStores()
	return a, nil
}

// CurrentRoute implements apiclient.Navigator.
func (a *App) CurrentRoute() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// Navigate implements apiclient.Navigator.
func (a *App) Navigate(route string) {
	a.mu.Lock()
	a.route = route
	a.mu.Unlock()

	if a.config != nil && route == a.config.LoginRoute {
		a.println("Your session has ended. Please log in again.")
	}
}

func (a *App) goTo(route string) {
	a.mu.Lock()
	a.route = route
	a.mu.Unlock()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.IsAuthenticated(ctx)
}

// Run starts the REPL on stdin and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	name := "Storefront"
	if a.config != nil {
		name = fmt.Sprintf("%s %s", a.config.AppName, a.config.AppVersion)
	}
	a.println(fmt.Sprintf("Welcome to %s (type 'help' for commands)", name))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartSessionRefresher(ctx, sessionCheckInterval)

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

// Close drops the guest store subscriptions.
func (a *App) Close() {
	for _, u := range a.unsubscribe {
		u()
	}
	a.unsubscribe = nil
}

// StartSessionRefresher refreshes an expiring token every interval until ctx
// is done.
func (a *App) StartSessionRefresher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := a.authService.EnsureFresh(ctx); err != nil {
				a.logger.Warn(ctx, "session refresh failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus(ctx context.Context) string {
	who := "guest"
	if a.isLoggedIn(ctx) {
		who = "signed in"
	}
	return fmt.Sprintf("(%s %s)", who, a.CurrentRoute())
}

func (a *App) watchGuestStores() {
	a.unsubscribe = append(a.unsubscribe,
		a.guestCart.Subscribe(func(lines []guestcart.Line) {
			n := 0
			for _, l := range lines {
				n += l.Quantity
			}
			a.println(fmt.Sprintf("[guest cart: %d item(s)]", n))
		}),
		a.wishlist.Subscribe(func() {
			a.println(fmt.Sprintf("[wishlist: %d product(s)]", a.wishlist.GetCount(context.Background())))
		}),
	)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// printError shows err the way the user should see it: validation errors
// field by field, other classified errors by their message.
func (a *App) printError(err error) {
	if err == nil {
		return
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		a.println("Error:", apiErr.Message)
		fields := make([]string, 0, len(apiErr.Errors))
		for f := range apiErr.Errors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			a.printf("  %s: %s\n", f, strings.Join(apiErr.Errors[f], "; "))
		}
		return
	}
	a.println("Error:", err)
}
