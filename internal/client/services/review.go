package services

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

type ReviewService interface {
	List(ctx context.Context, productID int64, p ListParams) (*models.Page[models.Review], error)
	Create(ctx context.Context, productID int64, in models.ReviewInput) (*models.Review, error)
	Update(ctx context.Context, reviewID int64, in models.ReviewInput) (*models.Review, error)
	Delete(ctx context.Context, reviewID int64) error
}

type reviewService struct {
	api Doer
}

func NewReviewService(api Doer) ReviewService {
	return &reviewService{api: api}
}

func (s *reviewService) List(ctx context.Context, productID int64, p ListParams) (*models.Page[models.Review], error) {
	var resp models.Page[models.Review]
	if err := get(ctx, s.api, "/products/"+id(productID)+"/reviews", p.values(), &resp); err != nil {
		return nil, wrap("list reviews", err)
	}
	return &resp, nil
}

func (s *reviewService) Create(ctx context.Context, productID int64, in models.ReviewInput) (*models.Review, error) {
	var resp models.Envelope[models.Review]
	if err := post(ctx, s.api, "/products/"+id(productID)+"/reviews", in, &resp); err != nil {
		return nil, wrap("create review", err)
	}
	return &resp.Data, nil
}

func (s *reviewService) Update(ctx context.Context, reviewID int64, in models.ReviewInput) (*models.Review, error) {
	var resp models.Envelope[models.Review]
	if err := put(ctx, s.api, "/reviews/"+id(reviewID), in, &resp); err != nil {
		return nil, wrap("update review", err)
	}
	return &resp.Data, nil
}

func (s *reviewService) Delete(ctx context.Context, reviewID int64) error {
	return wrap("delete review", del(ctx, s.api, "/reviews/"+id(reviewID), nil))
}
