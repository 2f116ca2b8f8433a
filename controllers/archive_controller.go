package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-admin-api/services"
)

// CreateSnapshot handles POST /api/v1/archive - copies items and orders to object storage
func CreateSnapshot(c *gin.Context) {
	archive := services.GetArchiveService()
	if archive == nil {
		respondError(c, http.StatusServiceUnavailable, "ARCHIVE_DISABLED", "Snapshot archive is not configured")
		return
	}

	snapshot, err := archive.CreateSnapshot(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, services.ErrRequestFailed) {
			respondError(c, http.StatusBadGateway, "STORE_ERROR", "Failed to read the store")
			return
		}
		respondError(c, http.StatusInternalServerError, "ARCHIVE_ERROR", "Failed to archive snapshot")
		return
	}
	respondOK(c, http.StatusCreated, snapshot)
}
