package usecase

import (
	"context"
	"testing"

	"stocktrack/internal/model"
	"stocktrack/internal/product"
	"stocktrack/internal/product/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	products     map[int64]*model.Product
	findAllCalls int
	lastFilters  *dto.ProductFilters
	adjusted     []dto.AdjustmentInput
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[int64]*model.Product{}}
}

func (f *fakeRepo) FindAll(_ context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	f.findAllCalls++
	f.lastFilters = filters
	items := []model.Product{}
	for _, p := range f.products {
		items = append(items, *p)
	}
	return items, len(items), nil
}

func (f *fakeRepo) FindByID(_ context.Context, id int64) (*model.Product, error) {
	return f.products[id], nil
}

func (f *fakeRepo) Create(_ context.Context, in *dto.CreateProductInput) (*model.Product, error) {
	p := &model.Product{ID: int64(len(f.products) + 1), Name: in.Name, Price: in.Price, Quantity: in.Quantity}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, in *dto.UpdateProductInput) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	p.Name = in.Name
	p.Price = in.Price
	p.Quantity = in.Quantity
	return p, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return product.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeRepo) Adjust(_ context.Context, id int64, in *dto.AdjustmentInput) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	f.adjusted = append(f.adjusted, *in)
	if in.Type == model.MovementIn {
		p.Quantity += in.Qty
	} else {
		p.Quantity -= in.Qty
	}
	return p, nil
}

func (f *fakeRepo) ListTransactions(_ context.Context, _ int64, _ *dto.TransactionFilters) ([]model.InventoryTransaction, int, error) {
	return []model.InventoryTransaction{}, 0, nil
}

func TestGetByIDMapsMissingToNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, nil, zap.NewNop())

	_, err := uc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestGetByIDReturnsRow(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, nil, zap.NewNop())

	created, err := uc.Create(context.Background(), &dto.CreateProductInput{Name: "Widget", Price: 1, Quantity: 2})
	require.NoError(t, err)

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
}

func TestListForwardsFiltersUnchanged(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, nil, zap.NewNop())

	min := int64(3)
	filters := &dto.ProductFilters{Search: "wid", MinQty: &min, Sort: "price_desc", Skip: 10, Take: 20}
	_, _, err := uc.List(context.Background(), filters)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.findAllCalls)
	assert.Same(t, filters, repo.lastFilters)
}

func TestAdjustDelegates(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, nil, zap.NewNop())

	created, err := uc.Create(context.Background(), &dto.CreateProductInput{Name: "Widget", Price: 1, Quantity: 10})
	require.NoError(t, err)

	updated, err := uc.Adjust(context.Background(), created.ID, &dto.AdjustmentInput{Type: "out", Qty: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(6), updated.Quantity)
	require.Len(t, repo.adjusted, 1)
	assert.Equal(t, "out", repo.adjusted[0].Type)
}

func TestAdjustErrorPassesThrough(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, nil, zap.NewNop())

	_, err := uc.Adjust(context.Background(), 404, &dto.AdjustmentInput{Type: "in", Qty: 1})
	assert.ErrorIs(t, err, product.ErrNotFound)
}
