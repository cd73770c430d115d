package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stocktrack/internal/model"
	"stocktrack/internal/product"
	"stocktrack/internal/product/dto"
	"stocktrack/pkg/cache"

	"go.uber.org/zap"
)

const productCacheTTL = 5 * time.Minute

// productUseCase holds the backend selected at startup and forwards calls to
// it unchanged. It exists to decouple callers from the backend choice, not to
// add behavior; the optional read cache is the one exception, and it only
// fills and invalidates, never decides.
type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient // nil when caching is disabled
	logger *zap.Logger
}

func NewProductUseCase(repo product.Repository, redis *cache.RedisClient, log *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  redis,
		logger: log,
	}
}

func (uc *productUseCase) List(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if p := uc.cached(ctx, id); p != nil {
		return p, nil
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	uc.fill(ctx, p)
	return p, nil
}

func (uc *productUseCase) Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	return uc.repo.Create(ctx, input)
}

func (uc *productUseCase) Update(ctx context.Context, id int64, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)
	return p, nil
}

func (uc *productUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *productUseCase) Adjust(ctx context.Context, productID int64, input *dto.AdjustmentInput) (*model.Product, error) {
	p, err := uc.repo.Adjust(ctx, productID, input)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, productID)
	return p, nil
}

func (uc *productUseCase) ListTransactions(ctx context.Context, productID int64, filters *dto.TransactionFilters) ([]model.InventoryTransaction, int, error) {
	return uc.repo.ListTransactions(ctx, productID, filters)
}

func cacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (uc *productUseCase) cached(ctx context.Context, id int64) *model.Product {
	if uc.cache == nil {
		return nil
	}
	raw, err := uc.cache.Get(ctx, cacheKey(id))
	if err != nil {
		if !cache.IsMiss(err) {
			uc.logger.Warn("product cache read failed", zap.Int64("product_id", id), zap.Error(err))
		}
		return nil
	}
	var p model.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}
	return &p
}

func (uc *productUseCase) fill(ctx context.Context, p *model.Product) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, cacheKey(p.ID), raw, productCacheTTL); err != nil {
		uc.logger.Warn("product cache write failed", zap.Int64("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) invalidate(ctx context.Context, id int64) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Del(ctx, cacheKey(id)); err != nil {
		uc.logger.Warn("product cache invalidation failed", zap.Int64("product_id", id), zap.Error(err))
	}
}
