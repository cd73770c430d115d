package repository

import (
	"fmt"
	"strings"

	"stocktrack/internal/model"
	"stocktrack/internal/product"
	"stocktrack/internal/product/dto"
)

// Options carries the listing knobs shared by both backends. The page-size
// clamp is configuration, never user-controlled.
type Options struct {
	MaxPageSize        int
	DefaultPageSize    int
	AllowNegativeStock bool
}

func (o Options) withDefaults() Options {
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = 200
	}
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = 50
	}
	return o
}

// Whitelist of sort keys. Anything outside the map falls back to id ASC
// rather than failing, and the map doubles as SQL-injection protection for
// the ORDER BY clause.
var sortColumns = map[string]string{
	"id_asc":     "id ASC",
	"id_desc":    "id DESC",
	"name_asc":   "name ASC",
	"name_desc":  "name DESC",
	"price_asc":  "price ASC",
	"price_desc": "price DESC",
	"qty_asc":    "quantity ASC",
	"qty_desc":   "quantity DESC",
}

func orderClause(sort string) string {
	if col, ok := sortColumns[sort]; ok {
		return col
	}
	return sortColumns["id_asc"]
}

// buildProductWhere renders the filter as a WHERE clause with ? placeholders.
// likeOp lets the postgres backend use ILIKE where sqlite uses LIKE.
func buildProductWhere(f *dto.ProductFilters, likeOp string) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name %s ? OR sku %s ?)", likeOp, likeOp))
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}
	if f.MinQty != nil {
		conditions = append(conditions, "quantity >= ?")
		args = append(args, *f.MinQty)
	}
	if f.MaxQty != nil {
		conditions = append(conditions, "quantity <= ?")
		args = append(args, *f.MaxQty)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// normalizePage applies defaults and the server-side clamp.
func (o Options) normalizePage(skip, take int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		take = o.DefaultPageSize
	}
	if take > o.MaxPageSize {
		take = o.MaxPageSize
	}
	return skip, take
}

const maxNoteLen = 500

// validateAdjustment rejects a malformed movement before any transaction is
// opened, so a bad request can never leave side effects behind.
func validateAdjustment(in *dto.AdjustmentInput) error {
	if in == nil {
		return fmt.Errorf("%w: adjustment body is required", product.ErrInvalidInput)
	}
	if in.Type != model.MovementIn && in.Type != model.MovementOut {
		return fmt.Errorf("%w: type must be %q or %q", product.ErrInvalidInput, model.MovementIn, model.MovementOut)
	}
	if in.Qty <= 0 {
		return fmt.Errorf("%w: qty must be positive", product.ErrInvalidInput)
	}
	if in.Note != nil && len(*in.Note) > maxNoteLen {
		return fmt.Errorf("%w: note exceeds %d characters", product.ErrInvalidInput, maxNoteLen)
	}
	return nil
}

const (
	maxSKULen  = 64
	maxNameLen = 200
)

// validateProductFields covers the structural checks the contract still owes
// even though request validation proper lives at the transport layer.
func validateProductFields(sku *string, name string, price float64, quantity int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", product.ErrInvalidInput)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", product.ErrInvalidInput, maxNameLen)
	}
	if sku != nil && len(*sku) > maxSKULen {
		return fmt.Errorf("%w: sku exceeds %d characters", product.ErrInvalidInput, maxSKULen)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", product.ErrInvalidInput)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", product.ErrInvalidInput)
	}
	return nil
}

func movementDelta(in *dto.AdjustmentInput) int64 {
	if in.Type == model.MovementIn {
		return in.Qty
	}
	return -in.Qty
}
