package model

import "time"

type Product struct {
	ID          int64     `db:"id" json:"id"`
	SKU         *string   `db:"sku" json:"sku"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// InventoryTransaction is one immutable ledger entry. Quantity on Product is
// the running net of these rows; rows are never updated or deleted.
type InventoryTransaction struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	Type      string    `db:"type" json:"type"` // "in" or "out"
	Qty       int64     `db:"qty" json:"qty"`
	Note      *string   `db:"note" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	MovementIn  = "in"
	MovementOut = "out"
)
