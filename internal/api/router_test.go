package api

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouterRegistersRoutes(t *testing.T) {
	r := NewRouter(Deps{Log: slog.New(slog.DiscardHandler), MaxUploadMB: 10})
	require.NotNil(t, r)

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		http.MethodPost + " /api/v1/categories",
		http.MethodGet + " /api/v1/categories/:id/materials",
		http.MethodPost + " /api/v1/materials",
		http.MethodPost + " /api/v1/materials/bulk",
		http.MethodPost + " /api/v1/materials/find-or-create",
		http.MethodGet + " /api/v1/materials/search",
		http.MethodGet + " /api/v1/constructions/:id/materials",
		http.MethodGet + " /api/v1/constructions/:id/inventory",
		http.MethodGet + " /api/v1/constructions/:id/inventory/export",
		http.MethodPost + " /api/v1/constructions/:id/storages",
		http.MethodPost + " /api/v1/storage-items",
		http.MethodPost + " /api/v1/constructions/:id/storage-items/bulk",
		http.MethodPut + " /api/v1/storage-items/:construction_id/:material_id",
		http.MethodPost + " /api/v1/constructions/:id/documents/analyze",
		http.MethodGet + " /api/v1/jobs/:id",
	}
	for _, route := range want {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestNewRouterUnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(Deps{Log: slog.New(slog.DiscardHandler)})

	req, err := http.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
