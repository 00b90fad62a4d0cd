package models

type CartItem struct {
	ID        int64             `json:"id"`
	ProductID int64             `json:"product_id"`
	VariantID *int64            `json:"variant_id,omitempty"`
	Quantity  int               `json:"quantity"`
	Price     Money             `json:"price"`
	Options   map[string]string `json:"options,omitempty"`
	Product   *Product          `json:"product,omitempty"`
	Variant   *ProductVariant   `json:"variant,omitempty"`
}

// Subtotal is price times quantity.
func (i CartItem) Subtotal() Money {
	return i.Price * Money(i.Quantity)
}

type Cart struct {
	ID        int64      `json:"id"`
	Items     []CartItem `json:"items"`
	Subtotal  Money      `json:"subtotal"`
	Tax       Money      `json:"tax"`
	Total     Money      `json:"total"`
	ItemCount int        `json:"item_count"`
}

// AddCartItem is the body of an add-to-cart call.
type AddCartItem struct {
	ProductID int64             `json:"product_id"`
	Quantity  int               `json:"quantity"`
	VariantID *int64            `json:"variant_id,omitempty"`
	Options   map[string]string `json:"options,omitempty"`
}
