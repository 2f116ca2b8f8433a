package services

import (
	"context"
	"fmt"
	"sync"
)

// MockS3Service is a mock implementation of S3Service for testing
type MockS3Service struct {
	objects     map[string][]byte // map of S3 key to object content
	FailPut     bool
	FailPresign bool
	mu          sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		objects: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance for testing
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// PutObject stores content in memory
func (m *MockS3Service) PutObject(ctx context.Context, key, contentType string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailPut {
		return fmt.Errorf("failed to upload to S3: mock failure")
	}
	m.objects[key] = append([]byte(nil), content...)
	return nil
}

// GetPresignedURL simulates generating a presigned URL
func (m *MockS3Service) GetPresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.objects[key]
	fail := m.FailPresign
	m.mu.RUnlock()

	if fail {
		return "", fmt.Errorf("failed to generate presigned URL: mock failure")
	}
	if !exists {
		return "", fmt.Errorf("object not found in mock S3: %s", key)
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// DeleteObject simulates deleting an object
func (m *MockS3Service) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// Object returns the stored content for key (for testing assertions)
func (m *MockS3Service) Object(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.objects[key]
	return content, ok
}

// Keys returns all stored keys
func (m *MockS3Service) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}

// Clear removes all objects from mock storage
func (m *MockS3Service) Clear() {
	m.mu.Lock()
	m.objects = make(map[string][]byte)
	m.mu.Unlock()
}
