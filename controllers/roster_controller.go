package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-admin-api/services"
	"github.com/kendall-kelly/inventory-admin-api/utils"
)

// EditLineRequest represents a price and/or quantity change in the roster editor
type EditLineRequest struct {
	Price    *float64 `json:"price" binding:"omitempty,gte=0"`
	Quantity *int     `json:"quantity" binding:"omitempty,gte=1"`
}

func draftResponse(draft services.OrderDraft) gin.H {
	return gin.H{
		"order":            draft.Order,
		"displayTotal":     draft.DisplayTotal,
		"displayTotalText": utils.FormatAmount(draft.DisplayTotal),
	}
}

// ListRosterOrders handles GET /api/v1/tab2/orders
func ListRosterOrders(c *gin.Context) {
	respondOK(c, http.StatusOK, orderPanels(services.GetOrderRoster().Orders()))
}

// ReloadRoster handles POST /api/v1/tab2/reload
func ReloadRoster(c *gin.Context) {
	roster := services.GetOrderRoster()
	if err := roster.LoadAll(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, orderPanels(roster.Orders()))
}

// EditRosterOrder handles POST /api/v1/tab2/orders/:id/edit - opens the order editor
func EditRosterOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	draft, err := services.GetOrderRoster().BeginEdit(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, draftResponse(draft))
}

// GetOrderDraft handles GET /api/v1/tab2/editor
func GetOrderDraft(c *gin.Context) {
	draft, err := services.GetOrderRoster().Draft()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, draftResponse(draft))
}

// UpdateOrderDraft handles PATCH /api/v1/tab2/editor - changes customer fields
func UpdateOrderDraft(c *gin.Context) {
	var req services.CustomerPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	draft, err := services.GetOrderRoster().SetCustomer(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, draftResponse(draft))
}

// UpdateOrderDraftLine handles PATCH /api/v1/tab2/editor/lines/:id
func UpdateOrderDraftLine(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req EditLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	roster := services.GetOrderRoster()
	draft, err := roster.Draft()
	if req.Price != nil && err == nil {
		draft, err = roster.SetLinePrice(id, *req.Price)
	}
	if req.Quantity != nil && err == nil {
		draft, err = roster.SetLineQuantity(id, *req.Quantity)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, draftResponse(draft))
}

// SaveOrderDraft handles POST /api/v1/tab2/editor/save
func SaveOrderDraft(c *gin.Context) {
	roster := services.GetOrderRoster()
	order, err := roster.Save(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"order":  order,
		"orders": orderPanels(roster.Orders()),
	})
}

// CancelOrderDraft handles DELETE /api/v1/tab2/editor
func CancelOrderDraft(c *gin.Context) {
	services.GetOrderRoster().CancelEdit()
	respondOK(c, http.StatusOK, nil)
}

// DeleteRosterOrder handles DELETE /api/v1/tab2/orders/:id
func DeleteRosterOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	roster := services.GetOrderRoster()
	if err := roster.Remove(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, orderPanels(roster.Orders()))
}
