package services

import (
	"context"
	"strings"
	"sync"

	"github.com/kendall-kelly/inventory-admin-api/models"
	"go.uber.org/zap"
)

// ItemEditor is the add/edit surface of the catalog view
type ItemEditor struct {
	Open    bool         `json:"open"`
	Editing *models.Item `json:"editing"` // nil while adding
	Form    models.Item  `json:"form"`
}

// CatalogManager owns the loaded item collection and the item editor
type CatalogManager struct {
	client   ResourceClient
	notifier Notifier
	logger   *zap.Logger

	mu     sync.RWMutex
	items  []models.Item
	editor ItemEditor
}

var catalogManagerInstance *CatalogManager

// NewCatalogManager creates a catalog manager with an empty collection
func NewCatalogManager(client ResourceClient, notifier Notifier, logger *zap.Logger) *CatalogManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogManager{
		client:   client,
		notifier: notifier,
		logger:   logger.Named("catalog"),
		items:    []models.Item{},
	}
}

// InitCatalogManager initializes the shared catalog manager
func InitCatalogManager(client ResourceClient, notifier Notifier, logger *zap.Logger) *CatalogManager {
	catalogManagerInstance = NewCatalogManager(client, notifier, logger)
	return catalogManagerInstance
}

// GetCatalogManager returns the initialized catalog manager
func GetCatalogManager() *CatalogManager {
	return catalogManagerInstance
}

// SetCatalogManager sets the catalog manager instance (primarily for testing)
func SetCatalogManager(m *CatalogManager) {
	catalogManagerInstance = m
}

// LoadAll replaces the local collection with the store's current items.
// On failure the previous collection is kept.
func (m *CatalogManager) LoadAll(ctx context.Context) error {
	var items []models.Item
	if err := m.client.List(detach(ctx), models.ItemsCollection, &items); err != nil {
		m.notifier.Error(msgLoadItemsFailed, err)
		return err
	}
	if items == nil {
		items = []models.Item{}
	}

	m.mu.Lock()
	m.items = items
	m.mu.Unlock()

	m.logger.Debug("items loaded", zap.Int("count", len(items)))
	return nil
}

// Items returns a copy of the loaded collection
func (m *CatalogManager) Items() []models.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Item{}, m.items...)
}

// Filter returns the loaded items matching query and group
func (m *CatalogManager) Filter(query, group string) []models.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return FilterItems(m.items, query, group)
}

// DistinctGroups returns the groups present in the loaded collection
func (m *CatalogManager) DistinctGroups() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return DistinctGroups(m.items)
}

// Editor returns the state of the add/edit surface
func (m *CatalogManager) Editor() ItemEditor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.editor
}

// BeginAdd opens the editor for a new item with an empty form
func (m *CatalogManager) BeginAdd() ItemEditor {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.editor = ItemEditor{Open: true}
	return m.editor
}

// BeginEdit opens the editor for the loaded item with id
func (m *CatalogManager) BeginEdit(id uint) (ItemEditor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range m.items {
		if item.ID == id {
			target := item
			m.editor = ItemEditor{Open: true, Editing: &target, Form: item}
			return m.editor, nil
		}
	}
	return m.editor, ErrItemNotFound
}

// CloseEditor hides the editor and keeps the form values
func (m *CatalogManager) CloseEditor() {
	m.mu.Lock()
	m.editor.Open = false
	m.mu.Unlock()
}

// Upsert persists item from the editor form.
// When isNewGroup is set, newGroupName replaces the item's group. An open edit
// target turns the call into a partial update of that item, otherwise a new
// item is created. The editor stays open when saving fails.
func (m *CatalogManager) Upsert(ctx context.Context, item models.Item, isNewGroup bool, newGroupName string) error {
	if isNewGroup {
		item.Group = newGroupName
	}
	if err := models.ValidateItem(item); err != nil {
		return err
	}

	m.mu.RLock()
	var targetID uint
	if m.editor.Editing != nil {
		targetID = m.editor.Editing.ID
	}
	m.mu.RUnlock()

	item.ID = 0
	ctx = detach(ctx)

	var err error
	if targetID != 0 {
		err = m.client.Update(ctx, models.ItemsCollection, targetID, item, nil)
	} else {
		err = m.client.Create(ctx, models.ItemsCollection, item, nil)
	}
	if err != nil {
		m.notifier.Error(msgItemSaveFailed, err)
		return err
	}

	if targetID != 0 {
		m.notifier.Success(msgItemUpdated)
	} else {
		m.notifier.Success(msgItemAdded)
	}

	// A failed reload is reported by LoadAll; the save itself succeeded.
	_ = m.LoadAll(ctx)

	m.mu.Lock()
	m.editor = ItemEditor{}
	m.mu.Unlock()
	return nil
}

// Remove deletes the item with id and reloads the collection
func (m *CatalogManager) Remove(ctx context.Context, id uint) error {
	ctx = detach(ctx)
	if err := m.client.Delete(ctx, models.ItemsCollection, id); err != nil {
		m.notifier.Error(msgItemDeleteFailed, err)
		return err
	}
	m.notifier.Success(msgItemDeleted)
	_ = m.LoadAll(ctx)
	return nil
}

// FilterItems keeps items whose name contains query (ignoring case) and whose
// group equals group. An empty group matches every item.
func FilterItems(items []models.Item, query, group string) []models.Item {
	needle := strings.ToLower(query)
	out := []models.Item{}
	for _, item := range items {
		if !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		if group != "" && item.Group != group {
			continue
		}
		out = append(out, item)
	}
	return out
}

// DistinctGroups returns each group value once, in first-seen order
func DistinctGroups(items []models.Item) []string {
	seen := make(map[string]struct{}, len(items))
	groups := []string{}
	for _, item := range items {
		if _, ok := seen[item.Group]; ok {
			continue
		}
		seen[item.Group] = struct{}{}
		groups = append(groups, item.Group)
	}
	return groups
}
