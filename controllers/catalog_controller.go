package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-admin-api/models"
	"github.com/kendall-kelly/inventory-admin-api/services"
)

// SaveItemRequest represents the item editor form
type SaveItemRequest struct {
	models.Item
	IsNewGroup bool   `json:"isNewGroup"`
	NewGroup   string `json:"newGroup"`
}

// ListCatalogItems handles GET /api/v1/add-items/items?q=&group= - filtered items
func ListCatalogItems(c *gin.Context) {
	catalog := services.GetCatalogManager()
	items := catalog.Filter(c.Query("q"), c.Query("group"))
	respondOK(c, http.StatusOK, items)
}

// ListCatalogGroups handles GET /api/v1/add-items/groups - groups of the loaded items
func ListCatalogGroups(c *gin.Context) {
	catalog := services.GetCatalogManager()
	respondOK(c, http.StatusOK, gin.H{
		"groups": catalog.DistinctGroups(),
		"units":  models.Units,
	})
}

// ReloadCatalog handles POST /api/v1/add-items/reload - re-fetches every item
func ReloadCatalog(c *gin.Context) {
	catalog := services.GetCatalogManager()
	if err := catalog.LoadAll(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, catalog.Items())
}

// GetItemEditor handles GET /api/v1/add-items/editor
func GetItemEditor(c *gin.Context) {
	respondOK(c, http.StatusOK, services.GetCatalogManager().Editor())
}

// OpenItemEditor handles POST /api/v1/add-items/editor - opens the editor for a new item
func OpenItemEditor(c *gin.Context) {
	respondOK(c, http.StatusOK, services.GetCatalogManager().BeginAdd())
}

// EditCatalogItem handles POST /api/v1/add-items/editor/:id - opens the editor on an item
func EditCatalogItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	editor, err := services.GetCatalogManager().BeginEdit(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, editor)
}

// CloseItemEditor handles DELETE /api/v1/add-items/editor
func CloseItemEditor(c *gin.Context) {
	catalog := services.GetCatalogManager()
	catalog.CloseEditor()
	respondOK(c, http.StatusOK, catalog.Editor())
}

// SaveCatalogItem handles POST /api/v1/add-items/editor/submit - creates or updates an item
func SaveCatalogItem(c *gin.Context) {
	var req SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	catalog := services.GetCatalogManager()
	if err := catalog.Upsert(c.Request.Context(), req.Item, req.IsNewGroup, req.NewGroup); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"items":  catalog.Items(),
		"editor": catalog.Editor(),
	})
}

// DeleteCatalogItem handles DELETE /api/v1/add-items/items/:id
func DeleteCatalogItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	catalog := services.GetCatalogManager()
	if err := catalog.Remove(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, catalog.Items())
}
