package services

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

type VariantService interface {
	ListForProduct(ctx context.Context, productID int64) ([]models.ProductVariant, error)
	Get(ctx context.Context, variantID int64) (*models.ProductVariant, error)
}

type variantService struct {
	api Doer
}

func NewVariantService(api Doer) VariantService {
	return &variantService{api: api}
}

func (s *variantService) ListForProduct(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	var resp models.Envelope[[]models.ProductVariant]
	if err := get(ctx, s.api, "/products/"+id(productID)+"/variants", nil, &resp); err != nil {
		return nil, wrap("list variants", err)
	}
	return resp.Data, nil
}

func (s *variantService) Get(ctx context.Context, variantID int64) (*models.ProductVariant, error) {
	var resp models.Envelope[models.ProductVariant]
	if err := get(ctx, s.api, "/variants/"+id(variantID), nil, &resp); err != nil {
		return nil, wrap("get variant", err)
	}
	return &resp.Data, nil
}
