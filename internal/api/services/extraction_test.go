package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/mapping"
	"stockroom/internal/testutil"
)

func newTestExtractionService(schemaSvc *SchemaService) *ExtractionService {
	mapper := mapping.NewMapper(mapping.NewResolver(mapping.DefaultAliasTable()))
	return NewExtractionService(mapper, schemaSvc, 5*time.Second)
}

func TestExtractionService_Fetch(t *testing.T) {
	service := newTestExtractionService(nil)
	ctx := context.Background()

	t.Run("decodes payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"url": "https://www.amazon.com/dp/B00X",
				"name": "Wireless Mouse",
				"description": "A mouse",
				"extractedData": {"brand": "Logi", "price": "$24.99"}
			}`))
		}))
		defer srv.Close()

		payload, err := service.Fetch(ctx, srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "Wireless Mouse", payload.Name)
		assert.Equal(t, "Logi", payload.ExtractedData["brand"])
	})

	t.Run("non-200 surfaces unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := service.Fetch(ctx, srv.URL)
		assert.ErrorIs(t, err, ErrExtractionUnavailable)
	})

	t.Run("malformed body surfaces unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		_, err := service.Fetch(ctx, srv.URL)
		assert.ErrorIs(t, err, ErrExtractionUnavailable)
	})

	t.Run("unreachable host surfaces unavailable", func(t *testing.T) {
		_, err := service.Fetch(ctx, "http://127.0.0.1:1/payload")
		assert.ErrorIs(t, err, ErrExtractionUnavailable)
	})
}

func TestExtractionService_PopulateFromURL(t *testing.T) {
	testutil.RequireDB(t, testDB)

	schemaSvc := newTestSchemaService()
	service := newTestExtractionService(schemaSvc)
	inv := createTestInventory(t)
	ctx := context.Background()

	_, err := schemaSvc.AddField(ctx, inv.ID, FieldInput{Name: "Brand", Type: "text"})
	require.NoError(t, err)
	_, err = schemaSvc.AddField(ctx, inv.ID, FieldInput{Name: "Price", Type: "number"})
	require.NoError(t, err)
	_, err = schemaSvc.AddField(ctx, inv.ID, FieldInput{
		Name:    "Status",
		Type:    "select",
		Options: []string{"In Stock", "Low Stock", "Out of Stock"},
	})
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Wireless Mouse",
			"extractedData": {"brand": "Logi", "price": 24.99, "status": "Available now"}
		}`))
	}))
	defer srv.Close()

	draft, err := service.PopulateFromURL(ctx, inv.ID, srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Wireless Mouse", draft.Name)
	assert.Equal(t, "Logi", draft.Values["brand"].String())
	assert.Equal(t, 24.99, draft.Values["price"].Number())
	assert.Equal(t, "In Stock", draft.Values["status"].String())
	assert.Empty(t, draft.Unmapped)
	assert.Equal(t, 1.0, draft.Coverage)
}
