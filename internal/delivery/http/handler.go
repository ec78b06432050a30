package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pricelens/backend/internal/domain"
)

const (
	serviceName    = "pricelens-backend"
	serviceVersion = "1.0.0"
)

// Response messages surfaced to clients
const (
	msgProductNameRequired = "Product name is required"
	msgProductInfoRequired = "Title and Flipkart link are required."
	msgInvalidProductURL   = "Invalid product URL"
	msgDetailsNotFound     = "Product details not found on both sources."
	msgReviewsUnavailable  = "Failed to collect product reviews"
	msgDeadlineExceeded    = "Request timed out"
	msgServiceUnavailable  = "Product service not configured"
	msgInternalError       = "Internal server error"
)

// ProductService is the usecase surface the handlers depend on
type ProductService interface {
	SearchProducts(ctx context.Context, request *domain.SearchRequest) ([]domain.ProductSummary, error)
	ProductInfo(ctx context.Context, request *domain.ProductInfoRequest) (*domain.ComparisonResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products ProductService
}

// NewHandler creates a new HTTP handler. A nil service makes the product
// endpoints answer 503.
func NewHandler(products ProductService) *Handler {
	return &Handler{products: products}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// Search returns the listing cards for a product name
func (h *Handler) Search(c *gin.Context) {
	if h.products == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgServiceUnavailable})
		return
	}

	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProductName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgProductNameRequired})
		return
	}

	products, err := h.products.SearchProducts(c.Request.Context(), &req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// ProductInfo returns the merged comparison for one product with its reviews
func (h *Handler) ProductInfo(c *gin.Context) {
	if h.products == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgServiceUnavailable})
		return
	}

	var req domain.ProductInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.FlipkartLink) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgProductInfoRequired})
		return
	}

	result, err := h.products.ProductInfo(c.Request.Context(), &req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// renderError maps usecase errors onto status codes and payloads
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestMessage(c)})
	case errors.Is(err, domain.ErrInvalidProductURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidProductURL})
	case errors.Is(err, domain.ErrProductDetailsNotFound):
		// Not a transport failure, the client gets a normal payload
		c.JSON(http.StatusOK, gin.H{"error": msgDetailsNotFound})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": msgDeadlineExceeded})
	case errors.Is(err, domain.ErrReviewHarvestFailed):
		log.Printf("[Handler] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": msgReviewsUnavailable})
	default:
		log.Printf("[Handler] %s %s: unexpected error: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
	}
}

func invalidRequestMessage(c *gin.Context) string {
	if strings.HasSuffix(c.FullPath(), "/search") {
		return msgProductNameRequired
	}
	return msgProductInfoRequired
}
