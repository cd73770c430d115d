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

// SQLiteRepository is the embedded single-file backend. Search uses LIKE,
// which in sqlite is case-insensitive for ASCII only; non-ASCII search terms
// match case-sensitively, unlike the postgres backend.
//
// Same-product adjustment serialization comes from sqlite's file-level write
// lock: a write transaction holds the database exclusively until commit, so
// the UPDATE inside Adjust can never observe a stale quantity.
type SQLiteRepository struct {
	DB   *sqlx.DB
	opts Options
}

func NewSQLiteRepository(db *sqlx.DB, opts Options) *SQLiteRepository {
	return &SQLiteRepository{DB: db, opts: opts.withDefaults()}
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	where, args := buildProductWhere(f, "LIKE")

	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM products"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	skip, take := r.opts.normalizePage(f.Skip, f.Take)
	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s LIMIT ? OFFSET ?", where, orderClause(f.Sort))
	args = append(args, take, skip)

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, count, nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, in *dto.CreateProductInput) (*model.Product, error) {
	if err := validateProductFields(in.SKU, in.Name, in.Price, in.Quantity); err != nil {
		return nil, err
	}

	res, err := r.DB.ExecContext(ctx, `
        INSERT INTO products (sku, name, description, price, quantity)
        VALUES (?, ?, ?, ?, ?)`,
		in.SKU, in.Name, in.Description, in.Price, in.Quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	var p model.Product
	if err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	return &p, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, in *dto.UpdateProductInput) (*model.Product, error) {
	if err := validateProductFields(in.SKU, in.Name, in.Price, in.Quantity); err != nil {
		return nil, err
	}

	res, err := r.DB.ExecContext(ctx, `
        UPDATE products
        SET sku = ?, name = ?, description = ?, price = ?, quantity = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`,
		in.SKU, in.Name, in.Description, in.Price, in.Quantity, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, product.ErrNotFound
	}

	var p model.Product
	if err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	return &p, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	// Hard delete; ledger rows are kept (audit trail over referential tidiness).
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
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

func (r *SQLiteRepository) Adjust(ctx context.Context, productID int64, in *dto.AdjustmentInput) (*model.Product, error) {
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
        VALUES (?, ?, ?, ?)`,
		productID, in.Type, in.Qty, in.Note,
	)
	if err != nil {
		return nil, fmt.Errorf("insert ledger row: %w", err)
	}

	query := `
        UPDATE products
        SET quantity = quantity + ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`
	args := []interface{}{movementDelta(in), productID}
	if !r.opts.AllowNegativeStock && in.Type == model.MovementOut {
		query += ` AND quantity >= ?`
		args = append(args, in.Qty)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("apply quantity delta: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM products WHERE id = ?)`, productID); err != nil {
			return nil, fmt.Errorf("check product: %w", err)
		}
		if !exists {
			return nil, product.ErrNotFound
		}
		return nil, product.ErrInsufficientStock
	}

	var p model.Product
	if err := tx.GetContext(ctx, &p, `SELECT * FROM products WHERE id = ?`, productID); err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", product.ErrTxFailed, err)
	}
	return &p, nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, productID int64, f *dto.TransactionFilters) ([]model.InventoryTransaction, int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM inventory_transactions WHERE product_id = ?`, productID)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	skip, take := r.opts.normalizePage(f.Skip, f.Take)
	items := []model.InventoryTransaction{}
	err = r.DB.SelectContext(ctx, &items, `
        SELECT * FROM inventory_transactions
        WHERE product_id = ?
        ORDER BY created_at DESC, id DESC
        LIMIT ? OFFSET ?`,
		productID, take, skip,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return items, count, nil
}
