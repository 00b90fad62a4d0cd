package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
)

var errInvalidRating = errors.New("rating must be between 1 and 5")

func (a *App) Reviews(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("reviews <productID>", errUsage)
	}
	productID, err := parseID(args[0])
	if err != nil {
		return a.usage("reviews <productID>", err)
	}

	page, err := a.reviewService.List(ctx, productID, services.ListParams{Page: 1})
	if err != nil {
		a.printError(err)
		return err
	}
	if len(page.Data) == 0 {
		a.println("No reviews yet.")
		return nil
	}
	for _, r := range page.Data {
		author := "anonymous"
		if r.User != nil {
			author = r.User.Name
		}
		a.printf("#%d %s %s: %s\n", r.ID, strings.Repeat("*", r.Rating), author, r.Comment)
	}
	return nil
}

// reviewInput reads "<id> <rating> <comment ...>".
func reviewInput(args []string) (int64, models.ReviewInput, error) {
	var in models.ReviewInput
	if len(args) < 3 {
		return 0, in, errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return 0, in, err
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil || rating < 1 || rating > 5 {
		return 0, in, errInvalidRating
	}
	in.Rating = rating
	in.Comment = strings.Join(args[2:], " ")
	return id, in, nil
}

func (a *App) Review(ctx context.Context, args []string) error {
	productID, in, err := reviewInput(args)
	if err != nil {
		return a.usage("review <productID> <rating 1-5> <comment>", err)
	}

	r, err := a.reviewService.Create(ctx, productID, in)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printf("Review #%d saved.\n", r.ID)
	return nil
}

func (a *App) EditReview(ctx context.Context, args []string) error {
	reviewID, in, err := reviewInput(args)
	if err != nil {
		return a.usage("editreview <reviewID> <rating 1-5> <comment>", err)
	}

	r, err := a.reviewService.Update(ctx, reviewID, in)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printf("Review #%d updated.\n", r.ID)
	return nil
}

func (a *App) DeleteReview(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("delreview <reviewID>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return a.usage("delreview <reviewID>", err)
	}

	if err := a.reviewService.Delete(ctx, id); err != nil {
		a.printError(err)
		return err
	}
	a.println("Review deleted.")
	return nil
}
