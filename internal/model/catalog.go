package model

import "time"

// EbayStore is a connected marketplace store record.
type EbayStore struct {
	ID           int64
	UserID       int64
	StoreName    string
	EbayUsername string
	CreatedAt    time.Time
}

// Product is a listing sourced from a supplier and published to a store.
type Product struct {
	ID           int64
	UserID       int64
	EbayStoreID  int64
	SourceURL    string
	SourceSKU    string
	EbayItemID   string
	Title        string
	Status       string
	SourceCost   *float64
	TargetPrice  *float64
	LastSyncedAt *time.Time
}

// Order is a detected marketplace order tied to a product.
type Order struct {
	ID                 int64
	UserID             int64
	ProductID          int64
	EbayOrderID        string
	BuyerName          string
	Status             string
	TotalPaidByBuyer   *float64
	ActualSupplierCost *float64
	ErrorLog           string
	CreatedAt          time.Time
}

type CreateStoreRequest struct {
	StoreName    string `json:"store_name"`
	EbayUsername string `json:"ebay_username"`
}

type StoreResponse struct {
	ID           int64     `json:"id"`
	StoreName    string    `json:"store_name,omitempty"`
	EbayUsername string    `json:"ebay_username,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateProductRequest struct {
	EbayStoreID int64    `json:"ebay_store_id"`
	SourceURL   string   `json:"source_url"`
	SourceSKU   string   `json:"source_sku"`
	EbayItemID  string   `json:"ebay_item_id"`
	Title       string   `json:"title"`
	SourceCost  *float64 `json:"source_cost"`
	TargetPrice *float64 `json:"target_price"`
}

type ProductResponse struct {
	ID          int64      `json:"id"`
	EbayStoreID int64      `json:"ebay_store_id"`
	SourceURL   string     `json:"source_url,omitempty"`
	SourceSKU   string     `json:"source_sku,omitempty"`
	EbayItemID  string     `json:"ebay_item_id,omitempty"`
	Title       string     `json:"title,omitempty"`
	Status      string     `json:"status"`
	SourceCost  *float64   `json:"source_cost,omitempty"`
	TargetPrice *float64   `json:"target_price,omitempty"`
	LastSynced  *time.Time `json:"last_synced_at,omitempty"`
}

type CreateOrderRequest struct {
	ProductID        int64    `json:"product_id"`
	EbayOrderID      string   `json:"ebay_order_id"`
	BuyerName        string   `json:"buyer_name"`
	TotalPaidByBuyer *float64 `json:"total_paid_by_buyer"`
}

type OrderResponse struct {
	ID               int64     `json:"id"`
	ProductID        int64     `json:"product_id"`
	EbayOrderID      string    `json:"ebay_order_id"`
	BuyerName        string    `json:"buyer_name,omitempty"`
	Status           string    `json:"status"`
	TotalPaidByBuyer *float64  `json:"total_paid_by_buyer,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
