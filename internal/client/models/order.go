package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Cancellable reports whether the customer may still cancel an order in s.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

type OrderItem struct {
	ID          int64             `json:"id"`
	ProductID   int64             `json:"product_id"`
	VariantID   *int64            `json:"variant_id,omitempty"`
	ProductName string            `json:"product_name"`
	Quantity    int               `json:"quantity"`
	Price       Money             `json:"price"`
	Total       Money             `json:"total"`
	Options     map[string]string `json:"options,omitempty"`
}

type Order struct {
	ID              int64       `json:"id"`
	OrderNumber     string      `json:"order_number"`
	Status          OrderStatus `json:"status"`
	PaymentStatus   string      `json:"payment_status,omitempty"`
	Subtotal        Money       `json:"subtotal"`
	Tax             Money       `json:"tax"`
	ShippingCost    Money       `json:"shipping_cost"`
	Total           Money       `json:"total"`
	Items           []OrderItem `json:"items,omitempty"`
	ShippingAddress *Address    `json:"shipping_address,omitempty"`
	BillingAddress  *Address    `json:"billing_address,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// CreateOrder is the checkout request.
type CreateOrder struct {
	ShippingAddressID int64  `json:"shipping_address_id"`
	BillingAddressID  int64  `json:"billing_address_id,omitempty"`
	PaymentMethod     string `json:"payment_method"`
	Notes             string `json:"notes,omitempty"`
}

type Address struct {
	ID           int64  `json:"id,omitempty"`
	Type         string `json:"type,omitempty"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Company      string `json:"company,omitempty"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	Phone        string `json:"phone,omitempty"`
	IsDefault    bool   `json:"is_default"`
}

// PaymentIntent is returned when a payment is started for an order.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       Money  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type Payment struct {
	ID            int64     `json:"id"`
	OrderID       int64     `json:"order_id"`
	Amount        Money     `json:"amount"`
	Status        string    `json:"status"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
