package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/mi-caja/internal/engine"
	"github.com/donaldgifford/mi-caja/internal/metrics"
	"github.com/donaldgifford/mi-caja/internal/store"
	"github.com/donaldgifford/mi-caja/pkg/logger"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

func newTestManager(t *testing.T, ttl time.Duration) (*Manager, *clockwork.FakeClock, *store.MemoryStore) {
	t.Helper()

	clk := clockwork.NewFakeClock()
	s := store.NewMemoryStore()
	log := logger.Discard()
	gw := engine.NewGateway(s, engine.WithGatewayClock(clk), engine.WithGatewayLogger(log))
	svc := engine.NewService(gw, engine.WithServiceClock(clk), engine.WithServiceLogger(log))

	factory := func(sessionID, userID string) *engine.Coordinator {
		return engine.NewCoordinator(userID, s, svc, gw,
			engine.WithSessionID(sessionID),
			engine.WithCoordinatorClock(clk),
			engine.WithCoordinatorLogger(log),
		)
	}

	m := NewManager(factory, ttl, WithClock(clk), WithLogger(log))
	t.Cleanup(m.CloseAll)
	return m, clk, s
}

func TestManager_OpenGetClose(t *testing.T) {
	m, _, _ := newTestManager(t, time.Hour)

	id, coord := m.Open("u1")
	require.NotEmpty(t, id)
	assert.Equal(t, engine.StatusRunning, coord.Status())
	assert.Equal(t, 1, m.Count())
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SessionsActive), 0.001)

	got, err := m.Get(id, "u1")
	require.NoError(t, err)
	assert.Same(t, coord, got)
	assert.Equal(t, id, got.Snapshot().SessionID)

	_, err = m.Get(id, "intruder")
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, m.Close(id, "intruder"), ErrForbidden)

	_, err = m.Get("nope", "u1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Close(id, "u1"))
	assert.Equal(t, engine.StatusStopped, coord.Status())
	assert.Zero(t, m.Count())
	require.ErrorIs(t, m.Close(id, "u1"), ErrNotFound)
}

func TestManager_TriggerUser(t *testing.T) {
	m, _, s := newTestManager(t, time.Hour)
	ctx := context.Background()

	q := 1.0
	require.NoError(t, s.UpsertStock(ctx, "u1", &domain.StockRecord{ID: "1", Name: "Sal", AvailableQuantity: &q}))

	_, a := m.Open("u1")
	_, b := m.Open("u1")
	_, other := m.Open("u2")

	assert.Equal(t, 2, m.TriggerUser(ctx, "u1"))
	assert.True(t, a.Snapshot().PopupVisible)
	assert.True(t, b.Snapshot().PopupVisible)
	assert.False(t, other.Snapshot().PopupVisible)

	assert.Zero(t, m.TriggerUser(ctx, "u1"), "second trigger is debounced")
	assert.Zero(t, m.TriggerUser(ctx, "nobody"))
}

func TestManager_Reap(t *testing.T) {
	m, clk, _ := newTestManager(t, 30*time.Minute)

	before := testutil.ToFloat64(metrics.SessionsReapedTotal)

	stale, staleCoord := m.Open("u1")
	clk.Advance(20 * time.Minute)
	fresh, _ := m.Open("u1")
	clk.Advance(15 * time.Minute)

	assert.Equal(t, 1, m.Reap())
	assert.Equal(t, engine.StatusStopped, staleCoord.Status())

	_, err := m.Get(stale, "u1")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(fresh, "u1")
	require.NoError(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SessionsReapedTotal)-before, 0.001)
}

func TestManager_GetKeepsSessionAlive(t *testing.T) {
	m, clk, _ := newTestManager(t, 30*time.Minute)

	id, _ := m.Open("u1")
	clk.Advance(25 * time.Minute)
	_, err := m.Get(id, "u1")
	require.NoError(t, err)
	clk.Advance(25 * time.Minute)

	assert.Zero(t, m.Reap())
	assert.Equal(t, 1, m.Count())
}

func TestManager_CloseAll(t *testing.T) {
	m, _, _ := newTestManager(t, time.Hour)

	_, a := m.Open("u1")
	_, b := m.Open("u2")

	m.CloseAll()
	assert.Zero(t, m.Count())
	assert.Equal(t, engine.StatusStopped, a.Status())
	assert.Equal(t, engine.StatusStopped, b.Status())
}

func TestManager_ActiveGaugeTracksCount(t *testing.T) {
	m, clk, _ := newTestManager(t, time.Minute)

	const workers = 16
	ids := make([]string, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i], _ = m.Open("u1")
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, m.Count())
	assert.InDelta(t, float64(m.Count()), testutil.ToFloat64(metrics.SessionsActive), 0.001)

	for i := range workers / 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, m.Close(ids[i], "u1"))
		}()
	}
	for range workers / 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Open("u2")
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, m.Count())
	assert.InDelta(t, float64(m.Count()), testutil.ToFloat64(metrics.SessionsActive), 0.001)

	clk.Advance(2 * time.Minute)
	assert.Equal(t, workers, m.Reap())
	assert.Zero(t, m.Count())
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.SessionsActive), 0.001)
}
