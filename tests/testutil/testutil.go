package testutil

import (
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-admin-api/config"
	"github.com/kendall-kelly/inventory-admin-api/controllers"
	"github.com/kendall-kelly/inventory-admin-api/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
	RequireTestEnvironment(t)
}

// PrintEnvironmentInfo prints the current test environment configuration.
func PrintEnvironmentInfo() {
	fmt.Printf("Test Environment Info:\n")
	fmt.Printf("  GO_ENV: %s\n", os.Getenv("GO_ENV"))
	fmt.Printf("  STORE_URL: %s\n", valueOrUnset(os.Getenv("STORE_URL")))
	fmt.Printf("  PORT: %s\n", valueOrUnset(os.Getenv("PORT")))
}

func valueOrUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// TestStore is an embedded data store served over HTTP and backed by an
// in-memory SQLite database
type TestStore struct {
	Server *httptest.Server
	DB     *gorm.DB
	Client *services.RESTClient
}

// NewTestStore starts an embedded store and registers its shutdown with t
func NewTestStore(t *testing.T) *TestStore {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	original := config.GetDB()
	config.SetDB(db)

	router := gin.New()
	controllers.RegisterStoreRoutes(router.Group("/store"))
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = sqlDB.Close()
		config.SetDB(original)
	})

	return &TestStore{
		Server: server,
		DB:     db,
		Client: services.NewRESTClient(server.URL+"/store", 5*time.Second),
	}
}

// Reset empties both collections
func (s *TestStore) Reset() error {
	for _, table := range []string{"items", "orders"} {
		if err := s.DB.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean %s: %w", table, err)
		}
	}
	return nil
}
