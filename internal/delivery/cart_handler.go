package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cart_service/internal/usecase"
)

type CartHandler struct {
	useCase usecase.CartUseCase
	log     *logrus.Logger
}

func NewCartHandler(uc usecase.CartUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.DELETE("", h.ClearCart)
		cart.POST("/items", h.AddItem)
		cart.PATCH("/items", h.UpdateQuantities)
		cart.PATCH("/items/:id", h.SetItemQuantity)
		cart.DELETE("/items/:id", h.RemoveItem)
		cart.POST("/save", h.SaveCart)
		cart.POST("/load", h.LoadCart)
		cart.POST("/checkout", h.Checkout)
		cart.GET("/receipt", h.ExportReceipt)
	}
	router.GET("/settings", h.GetSettings)
	router.PUT("/settings", h.UpdateSettings)
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type quantityUpdate struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type settingsRequest struct {
	Discount string          `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", h.useCase.View())
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for add item: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.useCase.AddItem(req.ProductID, req.Quantity)
	if err != nil {
		h.log.Warnf("Failed to add product %s: %v", req.ProductID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to add item: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Item added successfully", view)
}

// SetItemQuantity applies one in-place quantity edit. A non-positive
// quantity removes the line, mirroring the cart's delete-on-zero policy.
func (h *CartHandler) SetItemQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for set quantity: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	view := h.useCase.SetItemQuantity(c.Param("id"), req.Quantity)
	SuccessResponse(c, http.StatusOK, "Quantity updated successfully", view)
}

// UpdateQuantities applies a batch of quantity edits, one per affected row.
func (h *CartHandler) UpdateQuantities(c *gin.Context) {
	var req []quantityUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for batch quantity update: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updates := make(map[string]int, len(req))
	for _, u := range req {
		updates[u.ProductID] = u.Quantity
	}
	view := h.useCase.UpdateQuantities(updates)
	SuccessResponse(c, http.StatusOK, "Quantities updated successfully", view)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	view := h.useCase.RemoveItem(c.Param("id"))
	SuccessResponse(c, http.StatusOK, "Item removed successfully", view)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	view := h.useCase.ClearCart()
	SuccessResponse(c, http.StatusOK, "Cart cleared successfully", view)
}

func (h *CartHandler) GetSettings(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Settings retrieved successfully", h.useCase.GetSettings())
}

func (h *CartHandler) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for settings update: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.useCase.UpdateSettings(req.Discount, req.Shipping)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update settings: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Settings updated successfully", view)
}

func (h *CartHandler) SaveCart(c *gin.Context) {
	if err := h.useCase.SaveCart(); err != nil {
		h.log.Errorf("Failed to save cart: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to save cart: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart saved successfully", nil)
}

func (h *CartHandler) LoadCart(c *gin.Context) {
	view, skipped, err := h.useCase.LoadCart()
	if err != nil {
		h.log.Warnf("Failed to load cart: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load cart: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart loaded successfully", gin.H{
		"cart":            view,
		"skipped_records": skipped,
	})
}

func (h *CartHandler) Checkout(c *gin.Context) {
	totals, err := h.useCase.Checkout()
	if err != nil {
		h.log.Warnf("Checkout failed: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Checkout failed: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Order placed successfully", totals)
}

func (h *CartHandler) ExportReceipt(c *gin.Context) {
	out, err := h.useCase.ExportReceipt()
	if err != nil {
		h.log.Warnf("Failed to export receipt: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to export receipt: "+err.Error())
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", out)
}
