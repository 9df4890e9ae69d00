package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/mi-caja/internal/api/handlers"
	"github.com/donaldgifford/mi-caja/internal/auth"
	"github.com/donaldgifford/mi-caja/internal/engine"
	"github.com/donaldgifford/mi-caja/internal/session"
	"github.com/donaldgifford/mi-caja/internal/store"
	"github.com/donaldgifford/mi-caja/pkg/logger"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// testEnv wires the real engine over an in-memory store behind the auth
// middleware, the way the server does.
type testEnv struct {
	api      humatest.TestAPI
	store    *store.MemoryStore
	gateway  *engine.Gateway
	manager  *session.Manager
	clock    *clockwork.FakeClock
	verifier *auth.Verifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clk := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))
	log := logger.Discard()
	s := store.NewMemoryStore()
	gw := engine.NewGateway(s, engine.WithGatewayClock(clk), engine.WithGatewayLogger(log))
	svc := engine.NewService(gw, engine.WithServiceClock(clk), engine.WithServiceLogger(log))

	m := session.NewManager(func(sessionID, userID string) *engine.Coordinator {
		return engine.NewCoordinator(userID, s, svc, gw,
			engine.WithSessionID(sessionID),
			engine.WithCoordinatorClock(clk),
			engine.WithCoordinatorLogger(log),
		)
	}, time.Hour, session.WithClock(clk), session.WithLogger(log))
	t.Cleanup(m.CloseAll)

	v := auth.NewVerifier("test-secret")

	_, api := humatest.New(t)
	api.UseMiddleware(auth.Middleware(api, v))
	handlers.RegisterSessionRoutes(api, handlers.NewSessionsHandler(m))
	handlers.RegisterAlertRoutes(api, handlers.NewAlertsHandler(gw, s, log))
	handlers.RegisterStockRoutes(api, handlers.NewStockHandler(s, m, log))
	handlers.RegisterPreferenceRoutes(api, handlers.NewPreferencesHandler(s, log))

	return &testEnv{
		api:      api,
		store:    s,
		gateway:  gw,
		manager:  m,
		clock:    clk,
		verifier: v,
	}
}

// as returns the Authorization header for the user.
func (e *testEnv) as(t *testing.T, userID string) string {
	t.Helper()

	token, err := e.verifier.Issue(userID, time.Hour)
	require.NoError(t, err)
	return "Authorization: Bearer " + token
}

func (e *testEnv) seedStock(t *testing.T, userID string, records ...domain.StockRecord) {
	t.Helper()

	for i := range records {
		require.NoError(t, e.store.UpsertStock(t.Context(), userID, &records[i]))
	}
}

func (e *testEnv) openSession(t *testing.T, userID string) domain.Presentation {
	t.Helper()

	resp := e.api.Post("/api/v1/sessions", e.as(t, userID))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[domain.Presentation](t, resp.Body.Bytes())
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func qty(v float64) *float64 { return &v }
