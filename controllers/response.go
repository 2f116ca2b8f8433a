package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-admin-api/models"
	"github.com/kendall-kelly/inventory-admin-api/services"
	"github.com/kendall-kelly/inventory-admin-api/utils"
)

// respondOK writes the success envelope
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError writes the error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondBindError reports a request body that could not be parsed
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

// respondServiceError maps manager errors onto HTTP statuses
func respondServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": validationErr.Fields,
			},
		})
	case errors.Is(err, services.ErrItemNotFound):
		respondError(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found")
	case errors.Is(err, services.ErrOrderNotFound):
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, services.ErrLineNotFound):
		respondError(c, http.StatusNotFound, "LINE_NOT_FOUND", "Line item not found")
	case errors.Is(err, services.ErrInvalidQuantity):
		respondError(c, http.StatusBadRequest, "INVALID_QUANTITY", "Quantity must be at least 1")
	case errors.Is(err, services.ErrInvalidPrice):
		respondError(c, http.StatusBadRequest, "INVALID_PRICE", "Price must not be negative")
	case errors.Is(err, services.ErrNoDraft):
		respondError(c, http.StatusConflict, "NO_ORDER_EDITING", "No order is being edited")
	case errors.Is(err, services.ErrRequestFailed):
		respondError(c, http.StatusBadGateway, "STORE_ERROR", "Operation failed")
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

// idParam parses the :id URL parameter, writing the error response itself
func idParam(c *gin.Context) (uint, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		var idErr *utils.IDError
		if errors.As(err, &idErr) {
			respondError(c, http.StatusBadRequest, idErr.Code, idErr.Message)
		} else {
			respondError(c, http.StatusBadRequest, "INVALID_ID", err.Error())
		}
		return 0, false
	}
	return id, true
}

// orderPanel is an order list entry with its display total pre-formatted
type orderPanel struct {
	models.OrderView
	DisplayTotalText string `json:"displayTotalText"`
}

func orderPanels(views []models.OrderView) []orderPanel {
	panels := make([]orderPanel, 0, len(views))
	for _, view := range views {
		panels = append(panels, orderPanel{
			OrderView:        view,
			DisplayTotalText: utils.FormatAmount(view.DisplayTotal),
		})
	}
	return panels
}
