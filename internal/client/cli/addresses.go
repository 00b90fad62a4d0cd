package cli

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

func (a *App) Addresses(ctx context.Context) error {
	a.goTo(RouteAddresses)

	list, err := a.addressService.List(ctx)
	if err != nil {
		a.printError(err)
		return err
	}
	if len(list) == 0 {
		a.println("No saved addresses.")
		return nil
	}
	for _, ad := range list {
		mark := " "
		if ad.IsDefault {
			mark = "*"
		}
		a.printf("%s %4d  %s %s, %s, %s %s, %s\n", mark, ad.ID, ad.FirstName, ad.LastName,
			ad.AddressLine1, ad.PostalCode, ad.City, ad.Country)
	}
	return nil
}

// promptAddress asks for the fields a shipping address needs.
func (a *App) promptAddress() (models.Address, error) {
	var ad models.Address
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &ad.FirstName},
		{"Last name", &ad.LastName},
		{"Address", &ad.AddressLine1},
		{"City", &ad.City},
		{"Postal code", &ad.PostalCode},
		{"Country", &ad.Country},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return ad, err
		}
		*f.dst = v
	}
	return ad, nil
}

func (a *App) AddAddress(ctx context.Context) error {
	ad, err := a.promptAddress()
	if err != nil {
		return err
	}

	saved, err := a.addressService.Create(ctx, ad)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printf("Address #%d saved.\n", saved.ID)
	return nil
}

func (a *App) EditAddress(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("editaddress <addressID>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return a.usage("editaddress <addressID>", err)
	}
	ad, err := a.promptAddress()
	if err != nil {
		return err
	}

	saved, err := a.addressService.Update(ctx, id, ad)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printf("Address #%d updated.\n", saved.ID)
	return nil
}

func (a *App) DeleteAddress(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("deladdress <addressID>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return a.usage("deladdress <addressID>", err)
	}

	if err := a.addressService.Delete(ctx, id); err != nil {
		a.printError(err)
		return err
	}
	a.println("Address deleted.")
	return nil
}

func (a *App) DefaultAddress(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("defaultaddress <addressID>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return a.usage("defaultaddress <addressID>", err)
	}

	if _, err := a.addressService.SetDefault(ctx, id); err != nil {
		a.printError(err)
		return err
	}
	a.printf("Address #%d is now the default.\n", id)
	return nil
}
