package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-admin-api/config"
	"github.com/kendall-kelly/inventory-admin-api/controllers"
	"github.com/kendall-kelly/inventory-admin-api/middleware"
	"github.com/kendall-kelly/inventory-admin-api/models"
	"github.com/kendall-kelly/inventory-admin-api/services"
	"go.uber.org/zap"
)

// newRouter wires middleware and every route of the server
func newRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Remote store status endpoint
		v1.GET("/store/status", storeStatus)

		controllers.RegisterRoutes(v1)
	}

	if cfg.EmbeddedStore {
		controllers.RegisterStoreRoutes(router.Group("/store"))
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Inventory Admin API is running",
	})
}

// storeStatus checks that the remote store answers and reports collection sizes
func storeStatus(c *gin.Context) {
	client := services.GetStoreClient()
	if client == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORE_NOT_CONFIGURED",
				"message": "Store client is not initialized",
			},
		})
		return
	}

	var items []models.Item
	if err := client.List(c.Request.Context(), models.ItemsCollection, &items); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORE_UNREACHABLE",
				"message": "Store connection failed",
			},
		})
		return
	}

	var orders []models.Order
	if err := client.List(c.Request.Context(), models.OrdersCollection, &orders); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORE_UNREACHABLE",
				"message": "Store connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Store connected",
		"collections": gin.H{
			models.ItemsCollection:  len(items),
			models.OrdersCollection: len(orders),
		},
	})
}
