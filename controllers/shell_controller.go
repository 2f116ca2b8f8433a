package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-admin-api/services"
)

// NavEntry is one named view of the admin panel
type NavEntry struct {
	Key   string `json:"key"`
	Path  string `json:"path"`
	Title string `json:"title"`
}

// Navigation lists the views in the order the shell shows them
var Navigation = []NavEntry{
	{Key: "home", Path: "/", Title: "Home"},
	{Key: "composer", Path: "/tab1", Title: "New order"},
	{Key: "roster", Path: "/tab2", Title: "Orders"},
	{Key: "catalog", Path: "/add-items", Title: "Items"},
}

// Home handles GET /api/v1 - landing view
func Home(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"title":      "Inventory Admin",
		"navigation": Navigation,
	})
}

// GetNavigation handles GET /api/v1/navigation
func GetNavigation(c *gin.Context) {
	respondOK(c, http.StatusOK, Navigation)
}

// GetNotices handles GET /api/v1/notices - returns and clears pending notices
func GetNotices(c *gin.Context) {
	board := services.GetNoticeBoard()
	if board == nil {
		respondOK(c, http.StatusOK, []services.Notice{})
		return
	}
	respondOK(c, http.StatusOK, board.Drain())
}
