package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/kendall-kelly/inventory-admin-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogItem(name, group string) models.Item {
	return models.Item{
		Name:          name,
		MinPrice:      "10.00",
		PurchasePrice: "8.00",
		SellingPrice:  "12.00",
		Unit:          models.UnitPiece,
		Group:         group,
	}
}

func setupCatalog(t *testing.T, items ...models.Item) (*CatalogManager, *MockStoreClient, *NoticeBoard) {
	t.Helper()

	store := NewMockStoreClient()
	for _, item := range items {
		require.NoError(t, store.Seed(models.ItemsCollection, item))
	}
	board := NewNoticeBoard(nil, 0)
	catalog := NewCatalogManager(store, board, nil)
	require.NoError(t, catalog.LoadAll(context.Background()))
	store.ResetCalls()
	board.Drain()
	return catalog, store, board
}

func lastNotice(t *testing.T, board *NoticeBoard) Notice {
	t.Helper()
	notices := board.Drain()
	require.NotEmpty(t, notices)
	return notices[len(notices)-1]
}

func TestFilterItems(t *testing.T) {
	items := []models.Item{
		catalogItem("Steel Nail", "Hardware"),
		catalogItem("nail polish", "Cosmetics"),
		catalogItem("Hammer", "Hardware"),
	}

	tests := []struct {
		name     string
		query    string
		group    string
		expected []string
	}{
		{name: "empty query and group keeps everything", expected: []string{"Steel Nail", "nail polish", "Hammer"}},
		{name: "query ignores case", query: "NAIL", expected: []string{"Steel Nail", "nail polish"}},
		{name: "group must match exactly", group: "Hardware", expected: []string{"Steel Nail", "Hammer"}},
		{name: "query and group combine", query: "nail", group: "Cosmetics", expected: []string{"nail polish"}},
		{name: "no match", query: "screw", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterItems(items, tt.query, tt.group)

			names := []string{}
			for _, item := range result {
				names = append(names, item.Name)
				// Every result is a member of the input satisfying both predicates
				assert.Contains(t, strings.ToLower(item.Name), strings.ToLower(tt.query))
				if tt.group != "" {
					assert.Equal(t, tt.group, item.Group)
				}
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestDistinctGroups(t *testing.T) {
	items := []models.Item{
		catalogItem("one", "A"),
		catalogItem("two", "B"),
		catalogItem("three", "A"),
	}
	assert.Equal(t, []string{"A", "B"}, DistinctGroups(items))
	assert.Equal(t, []string{}, DistinctGroups(nil))
}

func TestCatalogLoadAll(t *testing.T) {
	catalog, store, board := setupCatalog(t, catalogItem("Nail", "A"), catalogItem("Screw", "B"))

	assert.Len(t, catalog.Items(), 2)
	assert.Equal(t, []string{"A", "B"}, catalog.DistinctGroups())
	assert.Len(t, catalog.Filter("nail", ""), 1)

	// A failed reload keeps the previous collection and posts one notice
	store.FailMethod(http.MethodGet, true)
	err := catalog.LoadAll(context.Background())
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Len(t, catalog.Items(), 2)

	notice := lastNotice(t, board)
	assert.Equal(t, NoticeError, notice.Level)
	assert.Equal(t, "Failed to load items.", notice.Message)
}

func TestCatalogEditor(t *testing.T) {
	catalog, _, _ := setupCatalog(t, catalogItem("Nail", "A"))
	id := catalog.Items()[0].ID

	editor := catalog.BeginAdd()
	assert.True(t, editor.Open)
	assert.Nil(t, editor.Editing)

	editor, err := catalog.BeginEdit(id)
	require.NoError(t, err)
	require.NotNil(t, editor.Editing)
	assert.Equal(t, id, editor.Editing.ID)
	assert.Equal(t, "Nail", editor.Form.Name)

	catalog.CloseEditor()
	editor = catalog.Editor()
	assert.False(t, editor.Open)
	assert.Equal(t, "Nail", editor.Form.Name, "closing keeps the form values")

	_, err = catalog.BeginEdit(999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCatalogUpsertCreates(t *testing.T) {
	catalog, store, board := setupCatalog(t)
	catalog.BeginAdd()

	err := catalog.Upsert(context.Background(), catalogItem("Nail", "A"), false, "")
	require.NoError(t, err)

	assert.Equal(t, 1, store.CountCalls(http.MethodPost, models.ItemsCollection))
	assert.Equal(t, 0, store.CountCalls(http.MethodPatch, models.ItemsCollection))
	require.Len(t, catalog.Items(), 1)
	assert.Equal(t, "Nail", catalog.Items()[0].Name)
	assert.False(t, catalog.Editor().Open)
	assert.Equal(t, "Item added successfully.", lastNotice(t, board).Message)
}

func TestCatalogUpsertUpdatesEditTarget(t *testing.T) {
	catalog, store, board := setupCatalog(t, catalogItem("Nail", "A"))
	id := catalog.Items()[0].ID

	_, err := catalog.BeginEdit(id)
	require.NoError(t, err)

	changed := catalogItem("Long Nail", "A")
	changed.ID = 777 // the edit target wins over any id in the form
	require.NoError(t, catalog.Upsert(context.Background(), changed, false, ""))

	calls := store.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, MockCall{Method: http.MethodPatch, Collection: models.ItemsCollection, ID: id}, calls[0])
	assert.Equal(t, 0, store.CountCalls(http.MethodPost, models.ItemsCollection))

	var stored models.Item
	require.True(t, store.Get(models.ItemsCollection, id, &stored))
	assert.Equal(t, "Long Nail", stored.Name)
	assert.Equal(t, "Item updated successfully.", lastNotice(t, board).Message)
	assert.False(t, catalog.Editor().Open)
}

func TestCatalogUpsertNewGroup(t *testing.T) {
	catalog, store, _ := setupCatalog(t, catalogItem("Nail", "A"))
	catalog.BeginAdd()

	item := catalogItem("Glue", "A")
	require.NoError(t, catalog.Upsert(context.Background(), item, true, "Adhesives"))

	assert.Equal(t, []string{"A", "Adhesives"}, catalog.DistinctGroups())
	assert.Equal(t, 2, store.Len(models.ItemsCollection))
}

func TestCatalogUpsertValidation(t *testing.T) {
	catalog, store, board := setupCatalog(t)
	catalog.BeginAdd()

	item := catalogItem("", "A")
	err := catalog.Upsert(context.Background(), item, false, "")
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))

	// An empty new group name fails too, even though the form group is set
	err = catalog.Upsert(context.Background(), catalogItem("Glue", "A"), true, "")
	assert.True(t, models.IsValidation(err))

	assert.Empty(t, store.Calls())
	assert.Empty(t, board.Pending())
	assert.True(t, catalog.Editor().Open)
}

func TestCatalogUpsertFailureKeepsEditorOpen(t *testing.T) {
	catalog, store, board := setupCatalog(t)
	catalog.BeginAdd()
	store.FailMethod(http.MethodPost, true)

	err := catalog.Upsert(context.Background(), catalogItem("Nail", "A"), false, "")
	require.ErrorIs(t, err, ErrRequestFailed)

	assert.True(t, catalog.Editor().Open)
	assert.Empty(t, catalog.Items())
	notice := lastNotice(t, board)
	assert.Equal(t, NoticeError, notice.Level)
	assert.Equal(t, "Failed to save item.", notice.Message)
}

func TestCatalogRemove(t *testing.T) {
	catalog, store, board := setupCatalog(t, catalogItem("Nail", "A"), catalogItem("Screw", "B"))
	id := catalog.Items()[0].ID

	require.NoError(t, catalog.Remove(context.Background(), id))

	assert.Equal(t, 1, store.CountCalls(http.MethodDelete, models.ItemsCollection))
	require.Len(t, catalog.Items(), 1)
	assert.Equal(t, "Screw", catalog.Items()[0].Name)
	assert.Equal(t, "Item deleted successfully.", lastNotice(t, board).Message)
}

func TestCatalogRemoveFailure(t *testing.T) {
	catalog, store, board := setupCatalog(t, catalogItem("Nail", "A"))
	store.FailMethod(http.MethodDelete, true)

	err := catalog.Remove(context.Background(), catalog.Items()[0].ID)
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Len(t, catalog.Items(), 1)
	assert.Equal(t, "Failed to delete item.", lastNotice(t, board).Message)
}
