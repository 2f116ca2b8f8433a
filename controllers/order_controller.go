package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-admin-api/models"
	"github.com/kendall-kelly/inventory-admin-api/services"
	"github.com/kendall-kelly/inventory-admin-api/utils"
)

// AddProductsRequest represents the product selector value
type AddProductsRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// SetQuantityRequest represents a quantity change on a composer line
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

// SubmitOrderRequest represents the customer form of the composer
type SubmitOrderRequest struct {
	CustomerName string  `json:"customerName" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	Payment      float64 `json:"payment" binding:"gte=0"`
}

// composerResponse adds the formatted total to the composer state
func composerResponse(state services.ComposerState) gin.H {
	return gin.H{
		"visible":   state.Visible,
		"editingId": state.EditingID,
		"lines":     state.Lines,
		"total":     state.Total,
		"totalText": utils.FormatAmount(state.Total),
		"form":      state.Form,
	}
}

// GetComposer handles GET /api/v1/tab1 - current composer state
func GetComposer(c *gin.Context) {
	respondOK(c, http.StatusOK, composerResponse(services.GetOrderComposer().State()))
}

// ToggleComposer handles POST /api/v1/tab1/toggle - shows or hides the order form
func ToggleComposer(c *gin.Context) {
	composer := services.GetOrderComposer()
	composer.Toggle()
	respondOK(c, http.StatusOK, composerResponse(composer.State()))
}

// ReloadComposer handles POST /api/v1/tab1/reload - re-fetches products and orders
func ReloadComposer(c *gin.Context) {
	composer := services.GetOrderComposer()
	if err := composer.Load(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"products": composer.SearchProducts(""),
		"orders":   orderPanels(composer.Orders()),
	})
}

// SearchProducts handles GET /api/v1/tab1/products?q= - products for the selector
func SearchProducts(c *gin.Context) {
	respondOK(c, http.StatusOK, services.GetOrderComposer().SearchProducts(c.Query("q")))
}

// AddOrderLines handles POST /api/v1/tab1/lines - adds selected products to the order
func AddOrderLines(c *gin.Context) {
	var req AddProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	state := services.GetOrderComposer().AddProducts(req.IDs)
	respondOK(c, http.StatusOK, composerResponse(state))
}

// SetOrderLineQuantity handles PATCH /api/v1/tab1/lines/:id
func SetOrderLineQuantity(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	state, err := services.GetOrderComposer().SetQuantity(id, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, composerResponse(state))
}

// RemoveOrderLine handles DELETE /api/v1/tab1/lines/:id
func RemoveOrderLine(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	state := services.GetOrderComposer().RemoveProduct(id)
	respondOK(c, http.StatusOK, composerResponse(state))
}

// ListComposerOrders handles GET /api/v1/tab1/orders - order panels below the form
func ListComposerOrders(c *gin.Context) {
	respondOK(c, http.StatusOK, orderPanels(services.GetOrderComposer().Orders()))
}

// EditComposerOrder handles POST /api/v1/tab1/orders/:id/edit - loads an order into the form
func EditComposerOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	state, err := services.GetOrderComposer().BeginEdit(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, composerResponse(state))
}

// DeleteComposerOrder handles DELETE /api/v1/tab1/orders/:id
func DeleteComposerOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	composer := services.GetOrderComposer()
	if err := composer.DeleteOrder(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, orderPanels(composer.Orders()))
}

// SubmitOrder handles POST /api/v1/tab1/submit - creates or updates the composed order
func SubmitOrder(c *gin.Context) {
	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	composer := services.GetOrderComposer()
	editing := composer.State().EditingID != nil
	order, err := composer.Submit(c.Request.Context(), models.CustomerFields{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Address:      req.Address,
		Payment:      req.Payment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if editing {
		status = http.StatusOK
	}
	respondOK(c, status, gin.H{
		"order":    order,
		"composer": composerResponse(composer.State()),
	})
}
