package repository

import (
	"context"
	"errors"

	"live-market/internal/domain/product"
	market_errors "live-market/pkg/errors"

	"gorm.io/gorm"
)

type PostgresProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Create(ctx context.Context, p *product.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id uint64) (product.Product, error) {
	var p product.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product.Product{}, market_errors.ErrNotFound
		}
		return product.Product{}, err
	}
	return p, nil
}

func (r *PostgresProductRepository) List(ctx context.Context, page, limit int) ([]product.Product, error) {
	var products []product.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(pageOffset(page, limit)).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *PostgresProductRepository) CountFavorites(ctx context.Context, productIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(productIDs))
	if len(productIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		ProductID uint64
		Total     int64
	}
	err := r.db.WithContext(ctx).
		Model(&product.Favorite{}).
		Select("product_id, COUNT(*) AS total").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ProductID] = row.Total
	}
	return counts, nil
}

func (r *PostgresProductRepository) GetLikedProductIDs(ctx context.Context, userID uint64, productIDs []uint64) (map[uint64]bool, error) {
	liked := make(map[uint64]bool)
	if userID == 0 || len(productIDs) == 0 {
		return liked, nil
	}
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&product.Favorite{}).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *PostgresProductRepository) AddFavorite(ctx context.Context, f *product.Favorite) error {
	res := r.db.WithContext(ctx).Create(f)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return market_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresProductRepository) RemoveFavorite(ctx context.Context, userID, productID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&product.Favorite{})
	return res.RowsAffected, res.Error
}

func (r *PostgresProductRepository) GetUserFavorites(ctx context.Context, userID uint64) ([]product.Product, error) {
	var products []product.Product
	err := r.db.WithContext(ctx).
		Model(&product.Product{}).
		Select("products.*").
		Joins("JOIN favs ON favs.product_id = products.id").
		Where("favs.user_id = ?", userID).
		Order("favs.created_at DESC, favs.id DESC").
		Find(&products).Error
	return products, err
}
