package handler

import (
	"net/http"

	"live-market/internal/services"
	"live-market/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service *services.ProductService
}

func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List is public. A signed-in viewer also gets isLiked per product.
func (h *ProductHandler) List(c *gin.Context) {
	var q httpdto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBadRequest(c, "invalid page")
		return
	}
	viewerID, _ := services.UserIDFromContext(c.Request.Context())

	views, err := h.service.ListProducts(c.Request.Context(), q.Page, viewerID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]httpdto.ProductListItem, 0, len(views))
	for _, v := range views {
		out = append(out, newProductListItem(v))
	}
	c.JSON(http.StatusOK, httpdto.ProductListResponse{OK: true, Products: out})
}

func (h *ProductHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req httpdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	p, err := h.service.CreateProduct(c.Request.Context(), userID, services.CreateProductInput{
		Name:        req.Name,
		Price:       int64(req.Price),
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.ProductResponse{OK: true, Products: httpdto.NewProduct(p)})
}

func (h *ProductHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := parseID(c.Param("id"))
	if !ok {
		writeBadRequest(c, "invalid product id")
		return
	}

	liked, err := h.service.ToggleFavorite(c.Request.Context(), userID, productID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.FavoriteResponse{OK: true, IsLiked: liked})
}

// Loved lists the caller's favorites for the profile page.
func (h *ProductHandler) Loved(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	products, err := h.service.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]httpdto.Product, 0, len(products))
	for _, p := range products {
		out = append(out, httpdto.NewProduct(p))
	}
	c.JSON(http.StatusOK, httpdto.LovedProductsResponse{OK: true, Products: out})
}
