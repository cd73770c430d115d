package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stocktrack/internal/model"
	"stocktrack/internal/product"
	"stocktrack/internal/product/dto"

	"github.com/jmoiron/sqlx"
)

// PGRepository is the client/server backend. Search uses ILIKE, so substring
// matching is case-insensitive on this backend.
//
// Correctness of Adjust relies on postgres row-level locking: the UPDATE
// statement acquires the row lock before applying the delta and holds it
// until commit, so concurrent adjustments to the same product serialize
// inside the engine instead of racing on a stale in-memory quantity.
type PGRepository struct {
	DB   *sqlx.DB
	opts Options
}

func NewPGRepository(db *sqlx.DB, opts Options) *PGRepository {
	return &PGRepository{DB: db, opts: opts.withDefaults()}
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	where, args := buildProductWhere(f, "ILIKE")

	// The count runs outside the listing query's snapshot; total and items
	// may disagree under concurrent writes. Accepted for the read path.
	var count int
	countQuery := r.DB.Rebind("SELECT count(*) FROM products" + where)
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	skip, take := r.opts.normalizePage(f.Skip, f.Take)
	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s LIMIT ? OFFSET ?", where, orderClause(f.Sort))
	args = append(args, take, skip)

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, count, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *PGRepository) Create(ctx context.Context, in *dto.CreateProductInput) (*model.Product, error) {
	if err := validateProductFields(in.SKU, in.Name, in.Price, in.Quantity); err != nil {
		return nil, err
	}

	var p model.Product
	err := r.DB.GetContext(ctx, &p, `
        INSERT INTO products (sku, name, description, price, quantity)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING *`,
		in.SKU, in.Name, in.Description, in.Price, in.Quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &p, nil
}

func (r *PGRepository) Update(ctx context.Context, id int64, in *dto.UpdateProductInput) (*model.Product, error) {
	if err := validateProductFields(in.SKU, in.Name, in.Price, in.Quantity); err != nil {
		return nil, err
	}

	var p model.Product
	err := r.DB.GetContext(ctx, &p, `
        UPDATE products
        SET sku = $1, name = $2, description = $3, price = $4, quantity = $5, updated_at = now()
        WHERE id = $6
        RETURNING *`,
		in.SKU, in.Name, in.Description, in.Price, in.Quantity, id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	// Hard delete. Ledger rows for the product are preserved as orphans so
	// the audit trail stays complete.
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (r *PGRepository) Adjust(ctx context.Context, productID int64, in *dto.AdjustmentInput) (*model.Product, error) {
	if err := validateAdjustment(in); err != nil {
		return nil, err
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO inventory_transactions (product_id, type, qty, note)
        VALUES ($1, $2, $3, $4)`,
		productID, in.Type, in.Qty, in.Note,
	)
	if err != nil {
		return nil, fmt.Errorf("insert ledger row: %w", err)
	}

	// Single set-based statement: read and write in one relational operation.
	query := `
        UPDATE products
        SET quantity = quantity + $1, updated_at = now()
        WHERE id = $2`
	args := []interface{}{movementDelta(in), productID}
	if !r.opts.AllowNegativeStock && in.Type == model.MovementOut {
		query += ` AND quantity >= $3`
		args = append(args, in.Qty)
	}
	query += ` RETURNING *`

	var p model.Product
	err = tx.GetContext(ctx, &p, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID); err != nil {
			return nil, fmt.Errorf("check product: %w", err)
		}
		if !exists {
			return nil, product.ErrNotFound
		}
		return nil, product.ErrInsufficientStock
	}
	if err != nil {
		return nil, fmt.Errorf("apply quantity delta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", product.ErrTxFailed, err)
	}
	return &p, nil
}

func (r *PGRepository) ListTransactions(ctx context.Context, productID int64, f *dto.TransactionFilters) ([]model.InventoryTransaction, int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM inventory_transactions WHERE product_id = $1`, productID)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	skip, take := r.opts.normalizePage(f.Skip, f.Take)
	items := []model.InventoryTransaction{}
	err = r.DB.SelectContext(ctx, &items, `
        SELECT * FROM inventory_transactions
        WHERE product_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3`,
		productID, take, skip,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return items, count, nil
}
