package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// MockCall records one request seen by MockStoreClient
type MockCall struct {
	Method     string
	Collection string
	ID         uint
}

// MockStoreClient is an in-memory ResourceClient for testing.
// Records are kept as decoded JSON objects so PATCH merges fields the way the
// hosted store does.
type MockStoreClient struct {
	records map[string][]map[string]interface{}
	nextID  map[string]uint
	calls   []MockCall
	failing map[string]bool // keyed by HTTP method, "*" fails everything
	mu      sync.RWMutex
}

// NewMockStoreClient creates an empty mock store
func NewMockStoreClient() *MockStoreClient {
	return &MockStoreClient{
		records: make(map[string][]map[string]interface{}),
		nextID:  make(map[string]uint),
		failing: make(map[string]bool),
	}
}

// SetAsMockForTesting sets this mock as the global resource client
func (m *MockStoreClient) SetAsMockForTesting() {
	SetStoreClient(m)
}

// Seed stores records in collection, assigning ids to records that have none
func (m *MockStoreClient) Seed(collection string, records ...interface{}) error {
	for _, record := range records {
		if err := m.Create(context.Background(), collection, record, nil); err != nil {
			return err
		}
	}
	m.ResetCalls()
	return nil
}

// FailMethod makes every call with the given HTTP method fail; "*" fails all calls
func (m *MockStoreClient) FailMethod(method string, fail bool) {
	m.mu.Lock()
	m.failing[method] = fail
	m.mu.Unlock()
}

// List returns every record in collection
func (m *MockStoreClient) List(ctx context.Context, collection string, out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(http.MethodGet, collection, 0); err != nil {
		return err
	}
	list := m.records[collection]
	if list == nil {
		list = []map[string]interface{}{}
	}
	return decodeInto(list, out)
}

// Create stores record and assigns it the next id
func (m *MockStoreClient) Create(ctx context.Context, collection string, record interface{}, out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(http.MethodPost, collection, 0); err != nil {
		return err
	}
	fields, err := toFields(record)
	if err != nil {
		return err
	}

	id, hasID := idOf(fields)
	if !hasID || id == 0 {
		m.nextID[collection]++
		id = m.nextID[collection]
	} else if id > m.nextID[collection] {
		m.nextID[collection] = id
	}
	fields["id"] = id
	m.records[collection] = append(m.records[collection], fields)
	return decodeInto(fields, out)
}

// Update merges record into the stored record with id
func (m *MockStoreClient) Update(ctx context.Context, collection string, id uint, record interface{}, out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(http.MethodPatch, collection, id); err != nil {
		return err
	}
	stored := m.find(collection, id)
	if stored == nil {
		return &RequestError{Method: http.MethodPatch, Path: fmt.Sprintf("/%s/%d", collection, id), StatusCode: http.StatusNotFound}
	}
	fields, err := toFields(record)
	if err != nil {
		return err
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		stored[k] = v
	}
	return decodeInto(stored, out)
}

// Delete removes the record with id
func (m *MockStoreClient) Delete(ctx context.Context, collection string, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(http.MethodDelete, collection, id); err != nil {
		return err
	}
	list := m.records[collection]
	for i, fields := range list {
		if stored, _ := idOf(fields); stored == id {
			m.records[collection] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return &RequestError{Method: http.MethodDelete, Path: fmt.Sprintf("/%s/%d", collection, id), StatusCode: http.StatusNotFound}
}

// Calls returns the recorded requests (for testing assertions)
func (m *MockStoreClient) Calls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// ResetCalls forgets the recorded requests and keeps the records
func (m *MockStoreClient) ResetCalls() {
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}

// CountCalls returns how many requests used method on collection
func (m *MockStoreClient) CountCalls(method, collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, call := range m.calls {
		if call.Method == method && call.Collection == collection {
			n++
		}
	}
	return n
}

// Len returns the number of stored records in collection
func (m *MockStoreClient) Len(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records[collection])
}

// Get decodes the stored record with id into out and reports whether it exists
func (m *MockStoreClient) Get(collection string, id uint, out interface{}) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.find(collection, id)
	if stored == nil {
		return false
	}
	return decodeInto(stored, out) == nil
}

// Clear removes all records and recorded calls
func (m *MockStoreClient) Clear() {
	m.mu.Lock()
	m.records = make(map[string][]map[string]interface{})
	m.nextID = make(map[string]uint)
	m.calls = nil
	m.mu.Unlock()
}

func (m *MockStoreClient) record(method, collection string, id uint) error {
	m.calls = append(m.calls, MockCall{Method: method, Collection: collection, ID: id})
	if m.failing[method] || m.failing["*"] {
		return &RequestError{Method: method, Path: "/" + collection, StatusCode: http.StatusInternalServerError}
	}
	return nil
}

func (m *MockStoreClient) find(collection string, id uint) map[string]interface{} {
	for _, fields := range m.records[collection] {
		if stored, _ := idOf(fields); stored == id {
			return fields
		}
	}
	return nil
}

func toFields(record interface{}) (map[string]interface{}, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]interface{})
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func idOf(fields map[string]interface{}) (uint, bool) {
	switch v := fields["id"].(type) {
	case float64:
		return uint(v), true
	case uint:
		return v, true
	default:
		return 0, false
	}
}

func decodeInto(value interface{}, out interface{}) error {
	if out == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}
