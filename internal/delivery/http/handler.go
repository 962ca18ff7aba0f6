package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/menuscraper/backend/internal/domain"
	"github.com/menuscraper/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalogService *usecase.CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalogService *usecase.CatalogService) *Handler {
	return &Handler{catalogService: catalogService}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "menuscraper-catalog",
		"version": "1.0.0",
	})
}

// GetAllProducts returns the whole catalog
func (h *Handler) GetAllProducts(c *gin.Context) {
	catalog, err := h.catalogService.GetAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// GetProduct returns one product by slug
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetProductField returns {field: value} for one product
func (h *Handler) GetProductField(c *gin.Context) {
	result, err := h.catalogService.GetProductField(c.Request.Context(), c.Param("name"), c.Param("field"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError maps domain errors to status codes and a {"detail": ...} body
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
	case errors.Is(err, domain.ErrFieldNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product field not found"})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		log.Printf("[Catalog] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Catalog unavailable"})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"detail": "Rate limit exceeded"})
	default:
		log.Printf("[Catalog] %s %s: unexpected error: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}
