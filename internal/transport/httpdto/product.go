package httpdto

import (
	"time"

	"live-market/internal/domain/product"
)

// CreateProductRequest is used for POST /products
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       Price  `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

type Product struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"userId"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created"`
}

type ProductListItem struct {
	Product
	FavCount int64 `json:"favCount"`
	IsLiked  bool  `json:"isLiked"`
}

type ProductListResponse struct {
	OK       bool              `json:"ok"`
	Products []ProductListItem `json:"products"`
}

type ProductResponse struct {
	OK       bool    `json:"ok"`
	Products Product `json:"products"`
}

type FavoriteResponse struct {
	OK      bool `json:"ok"`
	IsLiked bool `json:"isLiked"`
}

type LovedProductsResponse struct {
	OK       bool      `json:"ok"`
	Products []Product `json:"products"`
}

func NewProduct(p product.Product) Product {
	return Product{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
	}
}
