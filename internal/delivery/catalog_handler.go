package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cart_service/internal/usecase"
)

type CatalogHandler struct {
	useCase usecase.CartUseCase
	log     *logrus.Logger
}

func NewCatalogHandler(uc usecase.CartUseCase, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/products", h.ListProducts)
	router.GET("/categories", h.ListCategories)
}

// ListProducts supports the free-text filter `q` (case-insensitive id or
// name substring) and a `category` filter; "All" or absent means no filter.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("category")

	products := h.useCase.ListProducts(query, category)
	h.log.Infof("Retrieved %d products (q=%q, category=%q)", len(products), query, category)
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", products)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories := h.useCase.ListCategories()
	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", categories)
}
