package main

import (
	"context"
	"log"
	"net"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-admin-api/config"
	"github.com/kendall-kelly/inventory-admin-api/services"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Inventory Admin API server...", zap.String("env", cfg.GoEnv))

	if cfg.EmbeddedStore {
		// Connect to the database behind the embedded store
		if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := config.Migrate(config.GetDB()); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database migration completed successfully")
	}

	storeURL := cfg.ResolveStoreURL()
	client := services.InitStoreClient(storeURL, cfg.StoreTimeout)
	logger.Info("Store client initialized", zap.String("store_url", storeURL))

	board := services.InitNoticeBoard(logger.Named("notice"), 0)
	catalog := services.InitCatalogManager(client, board, logger)
	composer := services.InitOrderComposer(client, board, logger, cfg.LinePriceField)
	roster := services.InitOrderRoster(client, board, logger)

	if cfg.ArchiveEnabled() {
		s3, err := services.InitS3Service(cfg)
		if err != nil {
			logger.Fatal("Failed to initialize S3 service", zap.Error(err))
		}
		services.InitArchiveService(client, s3, logger)
		logger.Info("Snapshot archive enabled", zap.String("bucket", cfg.AWSS3Bucket))
	}

	router := newRouter(cfg, logger)

	addr := ":" + cfg.Port
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal("Failed to listen", zap.String("addr", addr), zap.Error(err))
	}

	// The embedded store is served by this process, so views load only once
	// the listener is open.
	go func() {
		ctx := context.Background()
		_ = catalog.LoadAll(ctx)
		_ = composer.Load(ctx)
		_ = roster.LoadAll(ctx)
	}()

	logger.Info("Server is running", zap.String("addr", "http://localhost"+addr))
	if err := router.RunListener(listener); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
