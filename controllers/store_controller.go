package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-admin-api/config"
	"github.com/kendall-kelly/inventory-admin-api/models"
	"gorm.io/gorm"
)

// RegisterStoreRoutes mounts the embedded data store under group.
// It answers the same collection paths as the hosted store:
// GET/POST /{collection} and PATCH/DELETE /{collection}/:id.
func RegisterStoreRoutes(group *gin.RouterGroup) {
	registerCollection[models.Item](group, models.ItemsCollection)
	registerCollection[models.Order](group, models.OrdersCollection)
}

func registerCollection[T any](group *gin.RouterGroup, name string) {
	group.GET("/"+name, listRecords[T])
	group.POST("/"+name, createRecord[T])
	group.PATCH("/"+name+"/:id", patchRecord[T])
	group.DELETE("/"+name+"/:id", deleteRecord[T])
}

// The store answers with bare JSON records, not the view API envelope.
func storeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// listRecords handles GET /{collection}
func listRecords[T any](c *gin.Context) {
	db := config.GetDB()
	records := []T{}
	if err := db.Order("id ASC").Find(&records).Error; err != nil {
		storeError(c, http.StatusInternalServerError, "Failed to fetch records")
		return
	}
	c.JSON(http.StatusOK, records)
}

// createRecord handles POST /{collection}; the id is always assigned by the store
func createRecord[T any](c *gin.Context) {
	body, err := readFields(c)
	if err != nil {
		storeError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	var record T
	if err := applyFields(&record, body); err != nil {
		storeError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	db := config.GetDB()
	if err := db.Create(&record).Error; err != nil {
		storeError(c, http.StatusInternalServerError, "Failed to create record")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// patchRecord handles PATCH /{collection}/:id; only fields present in the body change
func patchRecord[T any](c *gin.Context) {
	id, ok := storeID(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var record T
	if err := db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			storeError(c, http.StatusNotFound, "Not found")
			return
		}
		storeError(c, http.StatusInternalServerError, "Failed to fetch record")
		return
	}

	body, err := readFields(c)
	if err != nil {
		storeError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := applyFields(&record, body); err != nil {
		storeError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := db.Save(&record).Error; err != nil {
		storeError(c, http.StatusInternalServerError, "Failed to update record")
		return
	}
	c.JSON(http.StatusOK, record)
}

// deleteRecord handles DELETE /{collection}/:id
func deleteRecord[T any](c *gin.Context) {
	id, ok := storeID(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var record T
	result := db.Delete(&record, id)
	if result.Error != nil {
		storeError(c, http.StatusInternalServerError, "Failed to delete record")
		return
	}
	if result.RowsAffected == 0 {
		storeError(c, http.StatusNotFound, "Not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func storeID(c *gin.Context) (uint, bool) {
	var uri struct {
		ID uint `uri:"id" binding:"required,gt=0"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		storeError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uri.ID, true
}

// readFields decodes the body as a JSON object without the client-supplied id
func readFields(c *gin.Context) (map[string]json.RawMessage, error) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	delete(fields, "id")
	return fields, nil
}

// applyFields overlays fields onto record, leaving absent fields untouched
func applyFields(record interface{}, fields map[string]json.RawMessage) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, record)
}
