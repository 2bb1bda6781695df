package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/listmaker/internal/migrate"
	"github.com/mesh-intelligence/listmaker/internal/repository"
	"github.com/mesh-intelligence/listmaker/internal/storage"
	"github.com/mesh-intelligence/listmaker/pkg/fields"
	"github.com/mesh-intelligence/listmaker/pkg/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	manager := storage.NewManager(t.TempDir(), logger)
	registry := fields.NewDefaultRegistry()
	repo, err := repository.New(registry, manager, migrate.NewMigrator(manager, logger))
	require.NoError(t, err)
	return New(repo, registry, logger)
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) *types.List {
	t.Helper()
	var list types.List
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	return &list
}

func createList(t *testing.T, s *Server, name string) *types.List {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/lists", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeList(t, rec)
}

func addField(t *testing.T, s *Server, listID uuid.UUID, name, fieldType string) *types.List {
	t.Helper()
	rec := do(t, s, http.MethodPost, fmt.Sprintf("/lists/%s/fields", listID),
		map[string]string{"name": name, "type": fieldType})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeList(t, rec)
}

func fieldIDByName(t *testing.T, list *types.List, name string) uuid.UUID {
	t.Helper()
	for id, f := range list.Fields {
		if f.Name == name {
			return id
		}
	}
	t.Fatalf("list has no field named %q", name)
	return uuid.Nil
}

func TestListLifecycle(t *testing.T) {
	s := newTestServer(t)

	list := createList(t, s, "Groceries")
	assert.Equal(t, "Groceries", list.Name)
	assert.NotEqual(t, uuid.Nil, list.ID)

	rec := do(t, s, http.MethodGet, "/lists", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []types.List
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 1)

	rec = do(t, s, http.MethodGet, "/lists/"+list.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, list.ID, decodeList(t, rec).ID)

	rec = do(t, s, http.MethodPut, "/lists/"+list.ID.String(), map[string]string{"name": "Weekly"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Weekly", decodeList(t, rec).Name)

	rec = do(t, s, http.MethodDelete, "/lists/"+list.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/lists/"+list.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetListErrors(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/lists/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/lists/"+uuid.Must(uuid.NewV7()).String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "List not found", body["detail"])
}

func TestCreateListBadBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/lists", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFieldEndpoints(t *testing.T) {
	s := newTestServer(t)
	list := createList(t, s, "Groceries")

	updated := addField(t, s, list.ID, "Name", types.FieldTypeText)
	updated = addField(t, s, list.ID, "Quantity", types.FieldTypeNumber)
	require.Len(t, updated.Fields, 2)

	nameID := fieldIDByName(t, updated, "Name")
	qtyID := fieldIDByName(t, updated, "Quantity")
	assert.Equal(t, 0, updated.Fields[nameID].Order)
	assert.Equal(t, 1, updated.Fields[qtyID].Order)

	t.Run("unknown field type is a client error", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, fmt.Sprintf("/lists/%s/fields", list.ID),
			map[string]string{"name": "When", "type": "timestamp"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("reorder", func(t *testing.T) {
		rec := do(t, s, http.MethodPut, fmt.Sprintf("/lists/%s/fields/order", list.ID),
			map[string]any{"orders": map[string]int{nameID.String(): 1, qtyID.String(): 0}})
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeList(t, rec)
		assert.Equal(t, 1, got.Fields[nameID].Order)
		assert.Equal(t, 0, got.Fields[qtyID].Order)
	})

	t.Run("move boundary is a client error", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, fmt.Sprintf("/lists/%s/fields/%s/move", list.ID, qtyID),
			map[string]string{"direction": "up"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("move swaps neighbors", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, fmt.Sprintf("/lists/%s/fields/%s/move", list.ID, qtyID),
			map[string]string{"direction": "down"})
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeList(t, rec)
		assert.Equal(t, 0, got.Fields[nameID].Order)
		assert.Equal(t, 1, got.Fields[qtyID].Order)
	})

	t.Run("delete field", func(t *testing.T) {
		rec := do(t, s, http.MethodDelete, fmt.Sprintf("/lists/%s/fields/%s", list.ID, qtyID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeList(t, rec)
		assert.Len(t, got.Fields, 1)

		rec = do(t, s, http.MethodDelete, fmt.Sprintf("/lists/%s/fields/%s", list.ID, qtyID), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestItemEndpoints(t *testing.T) {
	s := newTestServer(t)
	list := createList(t, s, "Groceries")
	updated := addField(t, s, list.ID, "Name", types.FieldTypeText)
	updated = addField(t, s, list.ID, "Purchased", types.FieldTypeBoolean)
	nameID := fieldIDByName(t, updated, "Name")
	purchasedID := fieldIDByName(t, updated, "Purchased")

	itemsPath := fmt.Sprintf("/lists/%s/items", list.ID)

	rec := do(t, s, http.MethodPost, itemsPath, map[string]any{
		"field_values": map[string]any{nameID.String(): "Milk", purchasedID.String(): false},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	got := decodeList(t, rec)
	require.Len(t, got.Items, 1)
	var itemID uuid.UUID
	for id := range got.Items {
		itemID = id
	}

	t.Run("missing value is a client error", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, itemsPath, map[string]any{
			"field_values": map[string]any{nameID.String(): "Bread"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong value type is a client error", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, itemsPath, map[string]any{
			"field_values": map[string]any{nameID.String(): "Bread", purchasedID.String(): "yes"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update replaces the value sequence", func(t *testing.T) {
		rec := do(t, s, http.MethodPut, fmt.Sprintf("%s/%s", itemsPath, itemID), map[string]any{
			"field_values": map[string]any{nameID.String(): "Oat Milk", purchasedID.String(): true},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeList(t, rec)
		require.Len(t, got.Items[itemID], 2)
	})

	t.Run("unknown item is a 404", func(t *testing.T) {
		rec := do(t, s, http.MethodDelete,
			fmt.Sprintf("%s/%s", itemsPath, uuid.Must(uuid.NewV7())), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete item", func(t *testing.T) {
		rec := do(t, s, http.MethodDelete, fmt.Sprintf("%s/%s", itemsPath, itemID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeList(t, rec)
		assert.Empty(t, got.Items)
	})
}

func TestFieldTypesEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/field-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var meta map[string]fields.Metadata
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	require.Len(t, meta, 5)
	for _, name := range []string{
		types.FieldTypeBoolean, types.FieldTypeText, types.FieldTypeNumber,
		types.FieldTypeURL, types.FieldTypeImage,
	} {
		assert.Contains(t, meta, name)
	}
	assert.Equal(t, "boolean", meta[types.FieldTypeBoolean].ValueType)
	assert.Equal(t, "url", meta[types.FieldTypeImage].Constraints["format"])
}
