package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
)

// getSimpleText and getPassword are test seams for the interactive prompts.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}

	user, err := a.authService.Register(ctx, models.Registration{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: confirm,
	})
	if err != nil {
		a.printError(err)
		return err
	}

	a.goTo(RouteAccount)
	a.println(greeting(user, email))
	return nil
}

func (a *App) Login(ctx context.Context) error {
	if a.config != nil {
		a.goTo(a.config.LoginRoute)
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	user, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.printError(err)
		return err
	}

	a.goTo(RouteHome)
	a.println(greeting(user, email))
	if n := a.guestCart.GetCartCount(ctx); n > 0 {
		a.printf("You have %d item(s) in your guest cart.\n", n)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.goTo(RouteHome)
	if err != nil {
		a.logger.Warn(ctx, "logout call failed, session cleared locally", "error", err)
	}
	a.println("Logged out.")
	return nil
}

// LogoutAll ends the session on every device.
func (a *App) LogoutAll(ctx context.Context) error {
	err := a.authService.LogoutAll(ctx)
	a.goTo(RouteHome)
	if err != nil {
		a.logger.Warn(ctx, "logout-all call failed, session cleared locally", "error", err)
		a.printError(err)
		return err
	}
	a.println("Logged out on all devices.")
	return nil
}

// Reset forgets everything this device stored: the session, the guest cart
// and the wishlist.
func (a *App) Reset(ctx context.Context) error {
	if err := storage.Reset(ctx, a.local); err != nil {
		a.printError(err)
		return err
	}
	a.goTo(RouteHome)
	a.println("Local data cleared.")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	a.goTo(RouteAccount)

	u, err := a.authService.Profile(ctx)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printf("%s <%s>\n", u.Name, u.Email)
	if !u.CreatedAt.IsZero() {
		a.printf("Customer since %s\n", u.CreatedAt.Format("January 2006"))
	}
	return nil
}

func (a *App) Orders(ctx context.Context) error {
	a.goTo(RouteOrders)

	page, err := a.orderService.List(ctx, services.ListParams{Page: 1})
	if err != nil {
		a.printError(err)
		return err
	}
	if len(page.Data) == 0 {
		a.println("No orders yet.")
		return nil
	}
	for _, o := range page.Data {
		a.printf("%-14s %-12s %10s  %s\n", o.OrderNumber, o.Status, o.Total, o.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func greeting(u *models.User, email string) string {
	if u != nil && u.Name != "" {
		return fmt.Sprintf("Welcome, %s!", u.Name)
	}
	return fmt.Sprintf("Signed in as %s.", email)
}
