package controllers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the view API of every screen under group
func RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", Home)
	group.GET("/navigation", GetNavigation)
	group.GET("/notices", GetNotices)
	group.POST("/archive", CreateSnapshot)

	catalog := group.Group("/add-items")
	{
		catalog.GET("/items", ListCatalogItems)
		catalog.GET("/groups", ListCatalogGroups)
		catalog.POST("/reload", ReloadCatalog)
		catalog.GET("/editor", GetItemEditor)
		catalog.POST("/editor", OpenItemEditor)
		catalog.DELETE("/editor", CloseItemEditor)
		catalog.POST("/editor/submit", SaveCatalogItem)
		catalog.POST("/editor/:id", EditCatalogItem)
		catalog.DELETE("/items/:id", DeleteCatalogItem)
	}

	composer := group.Group("/tab1")
	{
		composer.GET("", GetComposer)
		composer.POST("/toggle", ToggleComposer)
		composer.POST("/reload", ReloadComposer)
		composer.GET("/products", SearchProducts)
		composer.POST("/lines", AddOrderLines)
		composer.PATCH("/lines/:id", SetOrderLineQuantity)
		composer.DELETE("/lines/:id", RemoveOrderLine)
		composer.GET("/orders", ListComposerOrders)
		composer.POST("/orders/:id/edit", EditComposerOrder)
		composer.DELETE("/orders/:id", DeleteComposerOrder)
		composer.POST("/submit", SubmitOrder)
	}

	roster := group.Group("/tab2")
	{
		roster.GET("/orders", ListRosterOrders)
		roster.POST("/reload", ReloadRoster)
		roster.POST("/orders/:id/edit", EditRosterOrder)
		roster.DELETE("/orders/:id", DeleteRosterOrder)
		roster.GET("/editor", GetOrderDraft)
		roster.PATCH("/editor", UpdateOrderDraft)
		roster.DELETE("/editor", CancelOrderDraft)
		roster.PATCH("/editor/lines/:id", UpdateOrderDraftLine)
		roster.POST("/editor/save", SaveOrderDraft)
	}
}
