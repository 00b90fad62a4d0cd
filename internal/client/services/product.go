package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// ProductFilter narrows a product listing. Zero fields are not sent.
type ProductFilter struct {
	ListParams
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     string
	Featured bool
	InStock  bool
}

func (f ProductFilter) values() url.Values {
	q := f.ListParams.values()
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.MinPrice > 0 {
		q.Set("min_price", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.Featured {
		q.Set("featured", "1")
	}
	if f.InStock {
		q.Set("in_stock", "1")
	}
	return q
}

type ProductService interface {
	List(ctx context.Context, f ProductFilter) (*models.Page[models.Product], error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	// GetByID has no endpoint of its own; it pages through the listing.
	GetByID(ctx context.Context, productID int64) (*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// GetByID walks the listing scanPageSize products at a time and gives up
// after maxScanPages pages.
const (
	scanPageSize = 100
	maxScanPages = 50
)

type productService struct {
	api Doer
}

func NewProductService(api Doer) ProductService {
	return &productService{api: api}
}

func (s *productService) List(ctx context.Context, f ProductFilter) (*models.Page[models.Product], error) {
	var resp models.Page[models.Product]
	if err := get(ctx, s.api, "/products", f.values(), &resp); err != nil {
		return nil, wrap("list products", err)
	}
	return &resp, nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var resp models.Envelope[models.Product]
	if err := get(ctx, s.api, "/products/"+url.PathEscape(slug), nil, &resp); err != nil {
		return nil, wrap("get product", err)
	}
	return &resp.Data, nil
}

func (s *productService) GetByID(ctx context.Context, productID int64) (*models.Product, error) {
	// last comes from the first response only.
	last := 1
	for page := 1; page <= last; page++ {
		resp, err := s.List(ctx, ProductFilter{ListParams: ListParams{Page: page, PerPage: scanPageSize}})
		if err != nil {
			return nil, err
		}
		for i := range resp.Data {
			if resp.Data[i].ID == productID {
				return &resp.Data[i], nil
			}
		}
		if len(resp.Data) == 0 {
			break
		}
		if page == 1 {
			last = min(resp.Meta.LastPage, maxScanPages)
		}
	}
	return nil, fmt.Errorf("product %d: %w", productID, common.ErrNotFound)
}

func (s *productService) Categories(ctx context.Context) ([]models.Category, error) {
	var resp models.Envelope[[]models.Category]
	if err := get(ctx, s.api, "/categories", nil, &resp); err != nil {
		return nil, wrap("list categories", err)
	}
	return resp.Data, nil
}
