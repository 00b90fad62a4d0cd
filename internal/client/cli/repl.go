package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App implements it.
type execIface interface {
	isLoggedIn(ctx context.Context) bool

	Products(ctx context.Context, args []string) error
	Product(ctx context.Context, args []string) error
	Categories(ctx context.Context) error

	Add(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Cart(ctx context.Context) error
	ClearCart(ctx context.Context) error

	Wish(ctx context.Context, args []string) error
	Unwish(ctx context.Context, args []string) error
	Wishlist(ctx context.Context) error

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	LogoutAll(ctx context.Context) error
	Profile(ctx context.Context) error
	Reset(ctx context.Context) error

	Orders(ctx context.Context) error
	Order(ctx context.Context, args []string) error
	CancelOrder(ctx context.Context, args []string) error
	Checkout(ctx context.Context, args []string) error
	Pay(ctx context.Context, args []string) error

	Reviews(ctx context.Context, args []string) error
	Review(ctx context.Context, args []string) error
	EditReview(ctx context.Context, args []string) error
	DeleteReview(ctx context.Context, args []string) error

	Addresses(ctx context.Context) error
	AddAddress(ctx context.Context) error
	EditAddress(ctx context.Context, args []string) error
	DeleteAddress(ctx context.Context, args []string) error
	DefaultAddress(ctx context.Context, args []string) error
}

const (
	helpGuest = `Available commands:
  products [search]                         list products
  product <slug>                            show a product
  categories                                list categories
  add <productID> [qty] [variant] [k=v...]  add to the guest cart
  update <productID> <qty> [variant] [k=v...]
  remove <productID> [variant] [k=v...]
  cart | clearcart
  wish <productID> | unwish <productID> | wishlist
  reviews <productID>
  register | login | reset | exit`

	helpSignedIn = `Available commands:
  products [search]                         list products
  product <slug>                            show a product
  categories                                list categories
  add <productID> [qty] [variant] [k=v...]  add to your cart
  update <itemID> <qty>                     change a cart line
  remove <itemID>                           remove a cart line
  cart | clearcart
  wish <productID> | unwish <productID> | wishlist
  checkout <addressID> [method]             place an order from the cart
  pay <orderID> <paymentID>                 confirm a payment
  orders | order <orderID> | cancel <orderID>
  reviews <productID>
  review <productID> <rating> <comment>     editreview <reviewID> <rating> <comment>
  delreview <reviewID>
  addresses | addaddress | editaddress <id> | deladdress <id> | defaultaddress <id>
  profile | logout | logoutall | reset | exit`
)

// runREPL reads commands from reader and dispatches them to a until the user
// types exit/quit or input ends. Command errors are reported by the commands
// themselves and do not stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("shop %s > ", statusFn()))
		line, ok := readLine(reader)
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpGuest)
			}

		case "products":
			_ = a.Products(ctx, args)
		case "product":
			_ = a.Product(ctx, args)
		case "categories":
			_ = a.Categories(ctx)

		case "add":
			_ = a.Add(ctx, args)
		case "update":
			_ = a.Update(ctx, args)
		case "remove":
			_ = a.Remove(ctx, args)
		case "cart":
			_ = a.Cart(ctx)
		case "clearcart":
			_ = a.ClearCart(ctx)

		case "wish":
			_ = a.Wish(ctx, args)
		case "unwish":
			_ = a.Unwish(ctx, args)
		case "wishlist":
			_ = a.Wishlist(ctx)

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "logoutall":
			_ = a.LogoutAll(ctx)
		case "reset":
			_ = a.Reset(ctx)

		case "orders":
			_ = a.Orders(ctx)
		case "order":
			_ = a.Order(ctx, args)
		case "cancel":
			_ = a.CancelOrder(ctx, args)
		case "checkout":
			_ = a.Checkout(ctx, args)
		case "pay":
			_ = a.Pay(ctx, args)

		case "reviews":
			_ = a.Reviews(ctx, args)
		case "review":
			_ = a.Review(ctx, args)
		case "editreview":
			_ = a.EditReview(ctx, args)
		case "delreview":
			_ = a.DeleteReview(ctx, args)

		case "addresses":
			_ = a.Addresses(ctx)
		case "addaddress":
			_ = a.AddAddress(ctx)
		case "editaddress":
			_ = a.EditAddress(ctx, args)
		case "deladdress":
			_ = a.DeleteAddress(ctx, args)
		case "defaultaddress":
			_ = a.DefaultAddress(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
