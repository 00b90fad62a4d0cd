package models

// DashboardStats is the admin console landing summary.
type DashboardStats struct {
	TotalOrders   int     `json:"total_orders"`
	PendingOrders int     `json:"pending_orders"`
	TotalRevenue  Money   `json:"total_revenue"`
	TotalProducts int     `json:"total_products"`
	LowStockCount int     `json:"low_stock_count"`
	TotalUsers    int     `json:"total_users"`
	RecentOrders  []Order `json:"recent_orders,omitempty"`
}

// ProductInput is the body of admin product create and update calls.
type ProductInput struct {
	Name          string  `json:"name"`
	Slug          string  `json:"slug,omitempty"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	SalePrice     float64 `json:"sale_price,omitempty"`
	SKU           string  `json:"sku,omitempty"`
	StockQuantity int     `json:"stock_quantity"`
	CategoryID    int64   `json:"category_id,omitempty"`
	IsActive      bool    `json:"is_active"`
	IsFeatured    bool    `json:"is_featured"`
}
