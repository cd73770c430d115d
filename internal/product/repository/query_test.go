package repository

import (
	"testing"

	"stocktrack/internal/product"
	"stocktrack/internal/product/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePage(t *testing.T) {
	opts := Options{MaxPageSize: 200, DefaultPageSize: 50}

	tests := []struct {
		name     string
		skip     int
		take     int
		wantSkip int
		wantTake int
	}{
		{"defaults applied", 0, 0, 0, 50},
		{"negative skip reset", -5, 10, 0, 10},
		{"take clamped to max", 0, 10000, 0, 200},
		{"take at max passes", 0, 200, 0, 200},
		{"regular page untouched", 40, 20, 40, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, take := opts.normalizePage(tt.skip, tt.take)
			assert.Equal(t, tt.wantSkip, skip)
			assert.Equal(t, tt.wantTake, take)
		})
	}
}

func TestOrderClauseFallback(t *testing.T) {
	assert.Equal(t, "name DESC", orderClause("name_desc"))
	assert.Equal(t, "quantity ASC", orderClause("qty_asc"))

	// Unrecognized keys fall back silently instead of failing.
	assert.Equal(t, "id ASC", orderClause(""))
	assert.Equal(t, "id ASC", orderClause("bogus"))
	assert.Equal(t, "id ASC", orderClause("name; DROP TABLE products"))
}

func TestBuildProductWhere(t *testing.T) {
	where, args := buildProductWhere(&dto.ProductFilters{}, "LIKE")
	assert.Empty(t, where)
	assert.Empty(t, args)

	min := int64(10)
	max := int64(50)
	where, args = buildProductWhere(&dto.ProductFilters{Search: "widget", MinQty: &min, MaxQty: &max}, "ILIKE")
	assert.Equal(t, " WHERE (name ILIKE ? OR sku ILIKE ?) AND quantity >= ? AND quantity <= ?", where)
	assert.Equal(t, []interface{}{"%widget%", "%widget%", int64(10), int64(50)}, args)
}

func TestValidateAdjustment(t *testing.T) {
	require.NoError(t, validateAdjustment(&dto.AdjustmentInput{Type: "in", Qty: 5}))
	require.NoError(t, validateAdjustment(&dto.AdjustmentInput{Type: "out", Qty: 1}))

	for _, in := range []*dto.AdjustmentInput{
		nil,
		{Type: "transfer", Qty: 5},
		{Type: "in", Qty: 0},
		{Type: "out", Qty: -3},
	} {
		err := validateAdjustment(in)
		require.ErrorIs(t, err, product.ErrInvalidInput)
	}
}

func TestValidateProductFields(t *testing.T) {
	sku := "WID-1"
	require.NoError(t, validateProductFields(&sku, "Widget", 9.99, 3))
	require.NoError(t, validateProductFields(nil, "Widget", 0, 0))

	longName := make([]byte, maxNameLen+1)
	for i := range longName {
		longName[i] = 'x'
	}

	assert.ErrorIs(t, validateProductFields(nil, "", 1, 1), product.ErrInvalidInput)
	assert.ErrorIs(t, validateProductFields(nil, "  ", 1, 1), product.ErrInvalidInput)
	assert.ErrorIs(t, validateProductFields(nil, string(longName), 1, 1), product.ErrInvalidInput)
	assert.ErrorIs(t, validateProductFields(nil, "Widget", -0.01, 1), product.ErrInvalidInput)
	assert.ErrorIs(t, validateProductFields(nil, "Widget", 1, -1), product.ErrInvalidInput)
}

func TestMovementDelta(t *testing.T) {
	assert.Equal(t, int64(5), movementDelta(&dto.AdjustmentInput{Type: "in", Qty: 5}))
	assert.Equal(t, int64(-5), movementDelta(&dto.AdjustmentInput{Type: "out", Qty: 5}))
}
