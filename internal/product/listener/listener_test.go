package listener

import (
	"context"
	"testing"

	"stocktrack/internal/model"
	"stocktrack/internal/product/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingUseCase struct {
	adjustments []recordedAdjustment
}

type recordedAdjustment struct {
	productID int64
	input     dto.AdjustmentInput
}

func (r *recordingUseCase) List(context.Context, *dto.ProductFilters) ([]model.Product, int, error) {
	return nil, 0, nil
}
func (r *recordingUseCase) GetByID(context.Context, int64) (*model.Product, error) { return nil, nil }
func (r *recordingUseCase) Create(context.Context, *dto.CreateProductInput) (*model.Product, error) {
	return nil, nil
}
func (r *recordingUseCase) Update(context.Context, int64, *dto.UpdateProductInput) (*model.Product, error) {
	return nil, nil
}
func (r *recordingUseCase) Delete(context.Context, int64) error { return nil }
func (r *recordingUseCase) Adjust(_ context.Context, productID int64, in *dto.AdjustmentInput) (*model.Product, error) {
	r.adjustments = append(r.adjustments, recordedAdjustment{productID: productID, input: *in})
	return &model.Product{ID: productID}, nil
}
func (r *recordingUseCase) ListTransactions(context.Context, int64, *dto.TransactionFilters) ([]model.InventoryTransaction, int, error) {
	return nil, 0, nil
}

func TestProcessMessageAdjustsEachItem(t *testing.T) {
	uc := &recordingUseCase{}
	l := NewInventoryListener(nil, uc, zap.NewNop())

	payload := []byte(`{
		"event_id": "evt-1",
		"event_type": "OrderCreated",
		"payload": {
			"id": "order-9",
			"items": [
				{"product_id": 1, "quantity": 2},
				{"product_id": 5, "quantity": 1}
			]
		}
	}`)

	l.processMessage(context.Background(), payload)

	require.Len(t, uc.adjustments, 2)
	assert.Equal(t, int64(1), uc.adjustments[0].productID)
	assert.Equal(t, model.MovementOut, uc.adjustments[0].input.Type)
	assert.Equal(t, int64(2), uc.adjustments[0].input.Qty)
	require.NotNil(t, uc.adjustments[0].input.Note)
	assert.Equal(t, "order order-9", *uc.adjustments[0].input.Note)
}

func TestProcessMessageIgnoresOtherEventTypes(t *testing.T) {
	uc := &recordingUseCase{}
	l := NewInventoryListener(nil, uc, zap.NewNop())

	l.processMessage(context.Background(), []byte(`{"event_type":"OrderCancelled","payload":{"id":"x","items":[{"product_id":1,"quantity":2}]}}`))
	assert.Empty(t, uc.adjustments)
}

func TestProcessMessageIgnoresMalformedJSON(t *testing.T) {
	uc := &recordingUseCase{}
	l := NewInventoryListener(nil, uc, zap.NewNop())

	l.processMessage(context.Background(), []byte(`{not json`))
	assert.Empty(t, uc.adjustments)
}
