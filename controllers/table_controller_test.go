package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTables(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/tables", map[string]string{"name": "Mesa 2"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Mesa 2", decodeObject(t, w)["name"])

	w = doJSON(t, router, http.MethodPost, "/tables", map[string]string{"name": "Mesa 1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/tables", map[string]string{"name": "Mesa 1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "TABLE_EXISTS", errorCode(t, w))

	w = doJSON(t, router, http.MethodPost, "/tables", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = doJSON(t, router, http.MethodGet, "/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tables := decodeList(t, w)
	require.Len(t, tables, 2)
	first := tables[0].(map[string]interface{})
	assert.Equal(t, "Mesa 1", first["name"])
	assert.Len(t, first, 2, "only id and name are exposed")
}
