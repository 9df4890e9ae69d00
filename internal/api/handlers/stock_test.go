package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

type stockList struct {
	Items []domain.StockRecord `json:"items"`
}

type putStockBody struct {
	Item      domain.StockRecord `json:"item"`
	ChecksRun int                `json:"checks_run"`
}

func TestStock_PutTriggersOpenSessions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp := env.api.Get("/api/v1/stock", env.as(t, "u1"))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decode[stockList](t, resp.Body.Bytes()).Items)

	p := env.openSession(t, "u1")
	env.openSession(t, "u2")

	resp = env.api.Put("/api/v1/stock/7", env.as(t, "u1"), map[string]any{
		"name":               "Azúcar",
		"available_quantity": 3,
		"unit":               "kg",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	put := decode[putStockBody](t, resp.Body.Bytes())
	assert.Equal(t, "7", put.Item.ID)
	assert.Equal(t, 1, put.ChecksRun, "only the caller's session re-checks")

	resp = env.api.Get("/api/v1/sessions/"+p.SessionID, env.as(t, "u1"))
	require.Equal(t, http.StatusOK, resp.Code)
	view := decode[domain.Presentation](t, resp.Body.Bytes())
	assert.True(t, view.PopupVisible)
	require.Len(t, view.CriticalItems, 1)
	assert.Equal(t, "Azúcar", view.CriticalItems[0].Name)

	resp = env.api.Get("/api/v1/stock", env.as(t, "u1"))
	require.Equal(t, http.StatusOK, resp.Code)
	items := decode[stockList](t, resp.Body.Bytes()).Items
	require.Len(t, items, 1)
	require.NotNil(t, items[0].AvailableQuantity)
	assert.InDelta(t, 3, *items[0].AvailableQuantity, 0.001)

	resp = env.api.Get("/api/v1/stock", env.as(t, "u2"))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decode[stockList](t, resp.Body.Bytes()).Items)
}

func TestStock_PutRequiresName(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	resp := env.api.Put("/api/v1/stock/7", env.as(t, "u1"), map[string]any{"available_quantity": 3})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
