package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"live-market/internal/domain/product"
	"live-market/internal/repository"
	market_errors "live-market/pkg/errors"
)

const ProductPageSize = 10

type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

type ProductView struct {
	Product  product.Product
	FavCount int64
	IsLiked  bool
}

type CreateProductInput struct {
	Name        string
	Price       int64
	Description string
	Image       string
}

// ListProducts returns one page, newest first. viewerID 0 means anonymous.
func (s *ProductService) ListProducts(ctx context.Context, page int, viewerID uint64) ([]ProductView, error) {
	if page < 1 {
		page = 1
	}
	products, err := s.repo.List(ctx, page, ProductPageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	counts, err := s.repo.CountFavorites(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.repo.GetLikedProductIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{Product: p, FavCount: counts[p.ID], IsLiked: liked[p.ID]})
	}
	return views, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, sellerID uint64, in CreateProductInput) (product.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return product.Product{}, fmt.Errorf("name is required: %w", market_errors.ErrInvalidInput)
	}
	if in.Price < 0 {
		return product.Product{}, fmt.Errorf("price must not be negative: %w", market_errors.ErrInvalidInput)
	}

	p := product.Product{
		UserID:      sellerID,
		Name:        name,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return product.Product{}, err
	}
	return p, nil
}

// ToggleFavorite flips the caller's favorite on a product and reports the new state.
func (s *ProductService) ToggleFavorite(ctx context.Context, userID, productID uint64) (bool, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return false, err
	}

	removed, err := s.repo.RemoveFavorite(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if removed > 0 {
		return false, nil
	}

	err = s.repo.AddFavorite(ctx, &product.Favorite{UserID: userID, ProductID: productID})
	if err != nil && !errors.Is(err, market_errors.ErrAlreadyExists) {
		return false, err
	}
	return true, nil
}

func (s *ProductService) ListFavorites(ctx context.Context, userID uint64) ([]product.Product, error) {
	products, err := s.repo.GetUserFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []product.Product{}
	}
	return products, nil
}
