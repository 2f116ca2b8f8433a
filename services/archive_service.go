package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kendall-kelly/inventory-admin-api/models"
	"go.uber.org/zap"
)

// SnapshotDocument is the JSON body written for every snapshot
type SnapshotDocument struct {
	CreatedAt time.Time      `json:"createdAt"`
	Items     []models.Item  `json:"items"`
	Orders    []models.Order `json:"orders"`
}

// Snapshot describes one archived copy of the store
type Snapshot struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Items     int       `json:"items"`
	Orders    int       `json:"orders"`
	CreatedAt time.Time `json:"createdAt"`
}

// ArchiveService copies both store collections into object storage
type ArchiveService struct {
	client ResourceClient
	s3     S3Interface
	logger *zap.Logger
	now    func() time.Time
}

var archiveServiceInstance *ArchiveService

// NewArchiveService creates an archive writing through s3
func NewArchiveService(client ResourceClient, s3 S3Interface, logger *zap.Logger) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveService{
		client: client,
		s3:     s3,
		logger: logger.Named("archive"),
		now:    time.Now,
	}
}

// InitArchiveService initializes the shared archive service
func InitArchiveService(client ResourceClient, s3 S3Interface, logger *zap.Logger) *ArchiveService {
	archiveServiceInstance = NewArchiveService(client, s3, logger)
	return archiveServiceInstance
}

// GetArchiveService returns the archive service, or nil when archiving is disabled
func GetArchiveService() *ArchiveService {
	return archiveServiceInstance
}

// SetArchiveService sets the archive service instance (primarily for testing)
func SetArchiveService(a *ArchiveService) {
	archiveServiceInstance = a
}

// CreateSnapshot reads the current items and orders and uploads them as one document
func (a *ArchiveService) CreateSnapshot(ctx context.Context) (Snapshot, error) {
	ctx = detach(ctx)

	doc := SnapshotDocument{CreatedAt: a.now().UTC()}
	if err := a.client.List(ctx, models.ItemsCollection, &doc.Items); err != nil {
		return Snapshot{}, fmt.Errorf("failed to read items: %w", err)
	}
	if err := a.client.List(ctx, models.OrdersCollection, &doc.Orders); err != nil {
		return Snapshot{}, fmt.Errorf("failed to read orders: %w", err)
	}

	content, err := json.Marshal(doc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	// Format: snapshots/{timestamp}_{uuid}.json
	key := fmt.Sprintf("snapshots/%d_%s.json", doc.CreatedAt.Unix(), uuid.NewString())
	if err := a.s3.PutObject(ctx, key, "application/json", content); err != nil {
		return Snapshot{}, err
	}

	url, err := a.s3.GetPresignedURL(ctx, key)
	if err != nil {
		if delErr := a.s3.DeleteObject(ctx, key); delErr != nil {
			a.logger.Warn("failed to remove unlinked snapshot", zap.String("key", key), zap.Error(delErr))
		}
		return Snapshot{}, err
	}

	a.logger.Info("snapshot archived",
		zap.String("key", key),
		zap.Int("items", len(doc.Items)),
		zap.Int("orders", len(doc.Orders)),
	)
	return Snapshot{
		Key:       key,
		URL:       url,
		Items:     len(doc.Items),
		Orders:    len(doc.Orders),
		CreatedAt: doc.CreatedAt,
	}, nil
}
