package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListStock(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"title":"Conflict"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetActiveAlert(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 409)")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestClient_SendsBearerToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"enabled":false}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithToken("tok-123"))
	enabled, err := c.GetSoundEnabled(context.Background())
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestClient_GetActiveAlert(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/alerts/active", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ActiveAlert{
			Alert: &domain.Alert{ID: "a1", State: domain.AlertActive},
			Stale: true,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.GetActiveAlert(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got.Alert)
	assert.Equal(t, "a1", got.Alert.ID)
	assert.True(t, got.Stale)
}

func TestClient_SnoozeAlert(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/alerts/a1/snooze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "medium", body["kind"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.Alert{ID: "a1", State: domain.AlertSnoozed, SnoozeCount: 1})
	}))
	defer srv.Close()

	c := New(srv.URL)
	a, err := c.SnoozeAlert(context.Background(), "a1", snooze.Medium)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertSnoozed, a.State)
	assert.Equal(t, 1, a.SnoozeCount)
}

func TestClient_DeactivateAlert(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/alerts/a1/deactivate", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).DeactivateAlert(context.Background(), "a1"))
}

func TestClient_Stock(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "/api/v1/stock", r.URL.Path)
			_, _ = w.Write([]byte(`{"items":[{"id":"1","name":"Harina","available_quantity":2,"unit":"kg"}]}`))
		case http.MethodPut:
			assert.Equal(t, "/api/v1/stock/1", r.URL.Path)
			var body stockRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Harina", body.Name)
			_ = json.NewEncoder(w).Encode(PutStockResult{
				Item:      domain.StockRecord{ID: "1", Name: body.Name, AvailableQuantity: body.AvailableQuantity},
				ChecksRun: 2,
			})
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	items, err := c.ListStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "kg", items[0].Unit)

	q := 12.0
	res, err := c.PutStock(context.Background(), &domain.StockRecord{ID: "1", Name: "Harina", AvailableQuantity: &q})
	require.NoError(t, err)
	assert.Equal(t, 2, res.ChecksRun)
	require.NotNil(t, res.Item.AvailableQuantity)
	assert.InDelta(t, 12, *res.Item.AvailableQuantity, 0.001)
}

func TestClient_SetSoundEnabled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body soundBody
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body.Enabled)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"enabled":true}`))
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).SetSoundEnabled(context.Background(), true))
}
