package product

import (
	"context"

	"stocktrack/internal/model"
	"stocktrack/internal/product/dto"
)

type UseCase interface {
	List(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	Update(ctx context.Context, id int64, input *dto.UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
	Adjust(ctx context.Context, productID int64, input *dto.AdjustmentInput) (*model.Product, error)
	ListTransactions(ctx context.Context, productID int64, filters *dto.TransactionFilters) ([]model.InventoryTransaction, int, error)
}
