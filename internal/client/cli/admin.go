package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/apiclient"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

const helpAdmin = `Available commands:
  login | logout
  dashboard
  orders [status]                 list orders, optionally by status
  status <orderID> <status>       change an order's status
  products | users
  addproduct | editproduct <id> | delproduct <id>
  exit`

// AdminApp is the console for the admin panel. It talks to the admin API
// through a cookie session guarded by a CSRF token.
type AdminApp struct {
	config *config.Config
	logger logging.Logger
	admin  services.AdminService

	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	route    string
	loggedIn bool
}

var _ apiclient.Navigator = (*AdminApp)(nil)

func NewAdminApp(c *config.Config, logger logging.Logger) (*AdminApp, error) {
	a := &AdminApp{
		config: c,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		route:  "/admin",
	}

	strategy, err := apiclient.NewCookieCSRFStrategy()
	if err != nil {
		return nil, err
	}
	api, err := apiclient.New(c.AdminBaseURL, strategy, logger,
		apiclient.WithTimeout(c.RequestTimeout),
		apiclient.WithLoginRoute(c.AdminLoginRoute),
		apiclient.WithNavigator(a),
	)
	if err != nil {
		return nil, err
	}
	a.admin = services.NewAdminService(api)
	return a, nil
}

func (a *AdminApp) CurrentRoute() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// Navigate is called when the admin session is rejected.
func (a *AdminApp) Navigate(route string) {
	a.mu.Lock()
	a.route = route
	a.loggedIn = false
	a.mu.Unlock()
	fmt.Fprintln(a.out, "Admin session expired. Please log in again.")
}

func (a *AdminApp) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "%s admin console (type 'help' for commands)\n", a.config.AppName)

	for {
		printlnFn(fmt.Sprintf("admin %s > ", a.status()))
		line, ok := readLine(a.reader)
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if parts[0] == "exit" || parts[0] == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := a.exec(ctx, parts[0], parts[1:]); err != nil {
			a.printError(err)
		}
	}
}

func (a *AdminApp) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		printlnFn(helpAdmin)
		return nil
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "dashboard":
		return a.Dashboard(ctx)
	case "orders":
		status := ""
		if len(args) > 0 {
			status = args[0]
		}
		return a.Orders(ctx, models.OrderStatus(status))
	case "status":
		if len(args) != 2 {
			fmt.Fprintln(a.out, "Usage: status <orderID> <status>")
			return nil
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return a.SetStatus(ctx, id, models.OrderStatus(args[1]))
	case "products":
		return a.Products(ctx)
	case "users":
		return a.Users(ctx)
	case "addproduct":
		return a.AddProduct(ctx)
	case "editproduct", "delproduct":
		if len(args) != 1 {
			fmt.Fprintf(a.out, "Usage: %s <productID>\n", cmd)
			return nil
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if cmd == "editproduct" {
			return a.EditProduct(ctx, id)
		}
		return a.DeleteProduct(ctx, id)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

func (a *AdminApp) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loggedIn {
		return "(signed in " + a.route + ")"
	}
	return "(signed out " + a.route + ")"
}

func (a *AdminApp) setRoute(route string) {
	a.mu.Lock()
	a.route = route
	a.mu.Unlock()
}

func (a *AdminApp) Login(ctx context.Context) error {
	a.setRoute(a.config.AdminLoginRoute)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	u, err := a.admin.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.loggedIn = true
	a.route = "/admin"
	a.mu.Unlock()
	fmt.Fprintln(a.out, greeting(u, email))
	return nil
}

func (a *AdminApp) Logout(ctx context.Context) error {
	err := a.admin.Logout(ctx)
	a.mu.Lock()
	a.loggedIn = false
	a.mu.Unlock()
	return err
}

func (a *AdminApp) Dashboard(ctx context.Context) error {
	a.setRoute("/admin")
	s, err := a.admin.Dashboard(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Orders:   %d (%d pending)\n", s.TotalOrders, s.PendingOrders)
	fmt.Fprintf(a.out, "Revenue:  %s\n", s.TotalRevenue)
	fmt.Fprintf(a.out, "Products: %d (%d low on stock)\n", s.TotalProducts, s.LowStockCount)
	fmt.Fprintf(a.out, "Users:    %d\n", s.TotalUsers)
	return nil
}

func (a *AdminApp) Orders(ctx context.Context, status models.OrderStatus) error {
	a.setRoute("/admin/orders")
	page, err := a.admin.Orders(ctx, status, services.ListParams{Page: 1})
	if err != nil {
		return err
	}
	for _, o := range page.Data {
		fmt.Fprintf(a.out, "%6d %-14s %-12s %10s\n", o.ID, o.OrderNumber, o.Status, o.Total)
	}
	if len(page.Data) == 0 {
		fmt.Fprintln(a.out, "No orders.")
	}
	return nil
}

func (a *AdminApp) SetStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	o, err := a.admin.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order %s is now %s\n", o.OrderNumber, o.Status)
	return nil
}

func (a *AdminApp) Products(ctx context.Context) error {
	a.setRoute("/admin/products")
	page, err := a.admin.Products(ctx, services.ListParams{Page: 1})
	if err != nil {
		return err
	}
	for _, p := range page.Data {
		fmt.Fprintf(a.out, "%6d  %-40s %10s  stock %d\n", p.ID, p.Name, p.Price, p.StockQuantity)
	}
	return nil
}

// promptProduct asks for the fields a product needs.
func (a *AdminApp) promptProduct() (models.ProductInput, error) {
	in := models.ProductInput{IsActive: true}

	var err error
	if in.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return in, err
	}
	if in.SKU, err = getSimpleText(a.reader, "SKU", a.out); err != nil {
		return in, err
	}

	price, err := getSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return in, err
	}
	if in.Price, err = strconv.ParseFloat(price, 64); err != nil || in.Price < 0 {
		return in, fmt.Errorf("invalid price %q", price)
	}

	stock, err := getSimpleText(a.reader, "Stock quantity", a.out)
	if err != nil {
		return in, err
	}
	if in.StockQuantity, err = strconv.Atoi(stock); err != nil || in.StockQuantity < 0 {
		return in, fmt.Errorf("invalid stock quantity %q", stock)
	}
	return in, nil
}

func (a *AdminApp) AddProduct(ctx context.Context) error {
	in, err := a.promptProduct()
	if err != nil {
		return err
	}
	p, err := a.admin.CreateProduct(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Product #%d created.\n", p.ID)
	return nil
}

func (a *AdminApp) EditProduct(ctx context.Context, productID int64) error {
	in, err := a.promptProduct()
	if err != nil {
		return err
	}
	p, err := a.admin.UpdateProduct(ctx, productID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Product #%d updated.\n", p.ID)
	return nil
}

func (a *AdminApp) DeleteProduct(ctx context.Context, productID int64) error {
	if err := a.admin.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Product #%d deleted.\n", productID)
	return nil
}

func (a *AdminApp) Users(ctx context.Context) error {
	a.setRoute("/admin/users")
	page, err := a.admin.Users(ctx, services.ListParams{Page: 1})
	if err != nil {
		return err
	}
	for _, u := range page.Data {
		fmt.Fprintf(a.out, "%6d  %-30s %s\n", u.ID, u.Name, u.Email)
	}
	return nil
}

func (a *AdminApp) printError(err error) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintln(a.out, "Error:", apiErr.Message)
		return
	}
	fmt.Fprintln(a.out, "Error:", err)
}
