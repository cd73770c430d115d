package product

import (
	"context"

	"stocktrack/internal/model"
	"stocktrack/internal/product/dto"
)

// Repository is the storage contract. Two backends implement it (postgres,
// sqlite) with identical observable behavior; only query syntax, connection
// lifecycle and the case sensitivity of Search differ, and those differences
// are documented on the implementations. The backend is chosen once at
// startup and never switched at runtime.
type Repository interface {
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	Update(ctx context.Context, id int64, input *dto.UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, id int64) error

	// Adjust applies one stock movement: inside a single transaction it
	// appends a ledger row and applies the delta to the product's quantity
	// with one set-based UPDATE keyed by id. The row lock taken by that
	// UPDATE is the only thing serializing concurrent adjustments to the
	// same product; do not replace it with a fetch-then-write pair.
	Adjust(ctx context.Context, productID int64, input *dto.AdjustmentInput) (*model.Product, error)

	ListTransactions(ctx context.Context, productID int64, filters *dto.TransactionFilters) ([]model.InventoryTransaction, int, error)
}
