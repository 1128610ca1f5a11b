package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"shopgate.backend/internal/domain/entities"
	"shopgate.backend/internal/interfaces/http/middleware"
	"shopgate.backend/internal/interfaces/http/response"
	"shopgate.backend/internal/usecases"
)

// ProductHandler exposes the product endpoints the permission gates protect
type ProductHandler struct {
	productUsecase *usecases.ProductUsecase
	authzUsecase   *usecases.AuthzUsecase
}

// NewProductHandler creates a new product handler
func NewProductHandler(productUsecase *usecases.ProductUsecase, authzUsecase *usecases.AuthzUsecase) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		authzUsecase:   authzUsecase,
	}
}

// CreateProduct creates a product. The route gate already checked
// post_products; when the payload carries images, upload_media is checked
// here as the second half of the composite gate.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	principal, exists := middleware.GetPrincipal(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input entities.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(input.Images) > 0 {
		if err := h.authzUsecase.Authorize(c.Request.Context(), principal, []string{string(entities.PermUploadMedia)}); err != nil {
			response.Error(c, err)
			return
		}
	}

	product, err := h.productUsecase.Create(c.Request.Context(), principal, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

// ListProducts lists the whole catalog with pagination
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	products, meta, err := h.productUsecase.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"products": products, "pagination": meta})
}

// ListMyProducts lists the caller's own products
func (h *ProductHandler) ListMyProducts(c *gin.Context) {
	principal, exists := middleware.GetPrincipal(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	products, err := h.productUsecase.ListMine(c.Request.Context(), principal)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"products": products})
}

// ListBestsellers lists products flagged as bestsellers
func (h *ProductHandler) ListBestsellers(c *gin.Context) {
	products, err := h.productUsecase.ListBestsellers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"products": products})
}
