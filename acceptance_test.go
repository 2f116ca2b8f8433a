package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kendall-kelly/inventory-admin-api/config"
	"github.com/kendall-kelly/inventory-admin-api/models"
	"github.com/kendall-kelly/inventory-admin-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// startEmbeddedServer runs the whole server against its own embedded store,
// the way EMBEDDED_STORE=true does in production
func startEmbeddedServer(t *testing.T) *httptest.Server {
	t.Helper()

	originalDB := config.GetDB()
	require.NoError(t, config.ConnectDatabase("sqlite::memory:"))
	require.NoError(t, config.Migrate(config.GetDB()))

	cfg := testConfig()
	cfg.StoreURL = ""
	cfg.EmbeddedStore = true

	server := httptest.NewServer(newRouter(cfg, zap.NewNop()))

	client := services.NewRESTClient(server.URL+"/store", 5*time.Second)
	setStoreClient(t, client)
	board := services.InitNoticeBoard(nil, 0)
	services.InitCatalogManager(client, board, nil)
	services.InitOrderComposer(client, board, nil, cfg.LinePriceField)
	services.InitOrderRoster(client, board, nil)

	t.Cleanup(func() {
		server.Close()
		config.SetDB(originalDB)
	})
	return server
}

func call(t *testing.T, method, url string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	return resp.StatusCode, response
}

// TestOrderLifecycleAcceptance drives catalog, composer and roster end to end
func TestOrderLifecycleAcceptance(t *testing.T) {
	server := startEmbeddedServer(t)
	api := server.URL + "/api/v1"

	// Catalog: add two items, one in a new group
	for _, item := range []map[string]interface{}{
		{"name": "Nail", "minPrice": "10", "purchasePrice": "8", "sellingPrice": "12", "unit": "шт", "group": "Hardware"},
		{"name": "Glue", "minPrice": 15, "purchasePrice": "9", "sellingPrice": "20", "unit": "кг", "isNewGroup": true, "newGroup": "Adhesives"},
	} {
		status, _ := call(t, http.MethodPost, api+"/add-items/editor", nil)
		require.Equal(t, http.StatusOK, status)
		status, response := call(t, http.MethodPost, api+"/add-items/editor/submit", item)
		require.Equal(t, http.StatusOK, status, response)
	}

	_, response := call(t, http.MethodGet, api+"/add-items/groups", nil)
	assert.Equal(t, []interface{}{"Hardware", "Adhesives"}, response["data"].(map[string]interface{})["groups"])

	// Composer: two lines, 2 × 10 + 1 × 15
	status, _ := call(t, http.MethodPost, api+"/tab1/reload", nil)
	require.Equal(t, http.StatusOK, status)
	call(t, http.MethodPost, api+"/tab1/lines", map[string]interface{}{"ids": []uint{1, 2}})
	call(t, http.MethodPatch, api+"/tab1/lines/1", map[string]interface{}{"quantity": 2})

	status, response = call(t, http.MethodPost, api+"/tab1/submit", map[string]interface{}{
		"customerName": "Ann",
		"phone":        "555-0100",
		"address":      "1 Main st",
		"payment":      35,
	})
	require.Equal(t, http.StatusCreated, status, response)
	order := response["data"].(map[string]interface{})["order"].(map[string]interface{})
	assert.EqualValues(t, 35, order["totalAmount"])
	orderID := order["id"].(float64)
	assert.NotZero(t, orderID)

	// Roster: change a line price, the stored total stays untouched
	status, _ = call(t, http.MethodPost, api+"/tab2/reload", nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = call(t, http.MethodPost, api+"/tab2/orders/1/edit", nil)
	require.Equal(t, http.StatusOK, status)
	call(t, http.MethodPatch, api+"/tab2/editor/lines/2", map[string]interface{}{"price": 25})
	status, _ = call(t, http.MethodPost, api+"/tab2/editor/save", nil)
	require.Equal(t, http.StatusOK, status)

	var stored models.Order
	require.NoError(t, config.GetDB().First(&stored, 1).Error)
	assert.Equal(t, 35.0, stored.TotalAmount)
	assert.Equal(t, models.Price("25"), stored.Items[1].Price)

	_, response = call(t, http.MethodGet, api+"/tab2/orders", nil)
	panel := response["data"].([]interface{})[0].(map[string]interface{})
	assert.EqualValues(t, 45, panel["displayTotal"])
	assert.True(t, panel["paidInFull"].(bool))

	// Store status sees the self-hosted collections
	_, response = call(t, http.MethodGet, api+"/store/status", nil)
	assert.EqualValues(t, 1, response["collections"].(map[string]interface{})["orders"])

	// Roster delete removes exactly one record
	status, _ = call(t, http.MethodDelete, api+"/tab2/orders/1", nil)
	require.Equal(t, http.StatusOK, status)
	var count int64
	config.GetDB().Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)

	_, response = call(t, http.MethodGet, api+"/notices", nil)
	messages := []string{}
	for _, notice := range response["data"].([]interface{}) {
		messages = append(messages, notice.(map[string]interface{})["message"].(string))
	}
	assert.Contains(t, messages, "Order added successfully.")
	assert.Contains(t, messages, "Order deleted successfully.")
}
