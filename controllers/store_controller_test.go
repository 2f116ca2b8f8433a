package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-admin-api/config"
	"github.com/kendall-kelly/inventory-admin-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStoreTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func setupStoreRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db := setupStoreTestDB(t)
	config.SetDB(db)

	router := gin.New()
	RegisterStoreRoutes(router.Group("/store"))
	return router, db
}

func storeRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStoreCreateAndList(t *testing.T) {
	router, _ := setupStoreRouter(t)

	w := storeRequest(t, router, http.MethodPost, "/store/items",
		`{"id":50,"name":"Nail","minPrice":10,"purchasePrice":"8","sellingPrice":"12.5","unit":"шт","group":"A"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, uint(1), created.ID, "ids are assigned by the store")
	assert.Equal(t, models.Price("10"), created.MinPrice)

	storeRequest(t, router, http.MethodPost, "/store/items", `{"name":"Glue","group":"B"}`)

	w = storeRequest(t, router, http.MethodGet, "/store/items", "")
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Nail", items[0]["name"])
	assert.Equal(t, "10", items[0]["minPrice"], "prices come back as strings")
	assert.Equal(t, "Glue", items[1]["name"])
}

func TestStoreListEmpty(t *testing.T) {
	router, _ := setupStoreRouter(t)

	w := storeRequest(t, router, http.MethodGet, "/store/orders", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestStorePatchMergesFields(t *testing.T) {
	router, db := setupStoreRouter(t)

	order := models.Order{
		CustomerName: "Ann",
		Phone:        "555",
		Address:      "1 Main st",
		Items:        []models.OrderLineItem{{ID: 1, Name: "Nail", Quantity: 2, Price: "10"}},
		TotalAmount:  20,
	}
	require.NoError(t, db.Create(&order).Error)

	w := storeRequest(t, router, http.MethodPatch, "/store/orders/1", `{"id":9,"address":"2 Side st","payment":20}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, uint(1), updated.ID)
	assert.Equal(t, "Ann", updated.CustomerName)
	assert.Equal(t, "2 Side st", updated.Address)
	assert.Equal(t, 20.0, updated.Payment)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, models.Price("10"), updated.Items[0].Price)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, 1).Error)
	assert.Equal(t, "2 Side st", reloaded.Address)
	assert.Len(t, reloaded.Items, 1)
}

func TestStoreErrors(t *testing.T) {
	router, _ := setupStoreRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{name: "patch missing record", method: http.MethodPatch, path: "/store/items/5", body: `{"name":"x"}`, expectedStatus: http.StatusNotFound},
		{name: "delete missing record", method: http.MethodDelete, path: "/store/orders/5", expectedStatus: http.StatusNotFound},
		{name: "invalid id", method: http.MethodDelete, path: "/store/orders/abc", expectedStatus: http.StatusBadRequest},
		{name: "invalid body", method: http.MethodPost, path: "/store/items", body: `[1,2]`, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := storeRequest(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.NotEmpty(t, response["message"])
		})
	}
}

func TestStoreDelete(t *testing.T) {
	router, db := setupStoreRouter(t)
	require.NoError(t, db.Create(&models.Item{Name: "Nail", Group: "A"}).Error)
	require.NoError(t, db.Create(&models.Item{Name: "Glue", Group: "B"}).Error)

	w := storeRequest(t, router, http.MethodDelete, "/store/items/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Item{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
