package models

import "time"

type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	ParentID    *int64     `json:"parent_id,omitempty"`
	Children    []Category `json:"children,omitempty"`
}

type ProductImage struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	AltText   string `json:"alt_text,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description,omitempty"`
	Price         Money            `json:"price"`
	SalePrice     *Money           `json:"sale_price,omitempty"`
	SKU           string           `json:"sku,omitempty"`
	StockQuantity int              `json:"stock_quantity"`
	IsActive      bool             `json:"is_active"`
	IsFeatured    bool             `json:"is_featured"`
	CategoryID    *int64           `json:"category_id,omitempty"`
	Category      *Category        `json:"category,omitempty"`
	Images        []ProductImage   `json:"images,omitempty"`
	Variants      []ProductVariant `json:"variants,omitempty"`
	AverageRating float64          `json:"average_rating,omitempty"`
	ReviewsCount  int              `json:"reviews_count,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// EffectivePrice is the sale price when there is one, the list price otherwise.
func (p Product) EffectivePrice() Money {
	if p.SalePrice != nil && *p.SalePrice > 0 && *p.SalePrice < p.Price {
		return *p.SalePrice
	}
	return p.Price
}

// PrimaryImage returns the URL of the primary image, or of the first image
// when none is marked primary.
func (p Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

type ProductVariant struct {
	ID            int64             `json:"id"`
	ProductID     int64             `json:"product_id"`
	Name          string            `json:"name"`
	SKU           string            `json:"sku,omitempty"`
	Price         *Money            `json:"price,omitempty"`
	StockQuantity int               `json:"stock_quantity"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	IsActive      bool              `json:"is_active"`
}

type Review struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	UserID     int64     `json:"user_id"`
	User       *User     `json:"user,omitempty"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title,omitempty"`
	Comment    string    `json:"comment"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewInput is the body of review create and update calls.
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title,omitempty"`
	Comment string `json:"comment"`
}
