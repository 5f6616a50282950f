package dto

import "time"

// ItemResponse artículo del catálogo (para selectores de la UI).
type ItemResponse struct {
	ID   string `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// BalanceResponse saldo actual de un artículo en una ubicación.
type BalanceResponse struct {
	ItemID    string    `json:"item_id"`
	Location  string    `json:"location"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}
