package engine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/mi-caja/internal/cache"
	cacheMocks "github.com/donaldgifford/mi-caja/internal/cache/mocks"
	"github.com/donaldgifford/mi-caja/internal/metrics"
	"github.com/donaldgifford/mi-caja/internal/store"
	storeMocks "github.com/donaldgifford/mi-caja/internal/store/mocks"
	"github.com/donaldgifford/mi-caja/pkg/logger"
	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

var testNow = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func testCriticalItems() []domain.CriticalItem {
	return []domain.CriticalItem{{ID: "1", Name: "Harina", Quantity: 2, Unit: "kg"}}
}

func newTestGateway(s store.Store, opts ...GatewayOption) *Gateway {
	base := []GatewayOption{
		WithGatewayLogger(logger.Discard()),
		WithGatewayClock(clockwork.NewFakeClockAt(testNow)),
	}
	return NewGateway(s, append(base, opts...)...)
}

func TestGateway_GetActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(*storeMocks.MockStore)
		want    *domain.Alert
		wantErr bool
	}{
		{
			name: "none",
			setup: func(ms *storeMocks.MockStore) {
				ms.EXPECT().GetActiveAlert(mock.Anything, "u1").Return(nil, nil).Once()
			},
		},
		{
			name: "found",
			setup: func(ms *storeMocks.MockStore) {
				ms.EXPECT().GetActiveAlert(mock.Anything, "u1").
					Return(&domain.Alert{ID: "a1", UserID: "u1"}, nil).Once()
			},
			want: &domain.Alert{ID: "a1", UserID: "u1"},
		},
		{
			name: "backend error",
			setup: func(ms *storeMocks.MockStore) {
				ms.EXPECT().GetActiveAlert(mock.Anything, "u1").
					Return(nil, errors.New("connection refused")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			tt.setup(ms)

			got, err := newTestGateway(ms).GetActive(context.Background(), "u1")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "connection refused")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGateway_GetActive_MissingUser(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	_, err := newTestGateway(ms).GetActive(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingUserID)
}

func TestGateway_Upsert_Creates(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().GetActiveAlert(mock.Anything, "u1").Return(nil, nil).Once()
	ms.EXPECT().CreateAlert(mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
		return a.UserID == "u1" &&
			a.State == domain.AlertActive &&
			a.LastNotifiedAt.Equal(testNow) &&
			len(a.CriticalItems) == 1
	})).Run(func(_ context.Context, a *domain.Alert) {
		a.ID = "a1"
	}).Return(nil).Once()

	got, err := newTestGateway(ms).Upsert(context.Background(), "u1", testCriticalItems())
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, domain.AlertActive, got.State)
	assert.Zero(t, got.SnoozeCount)
}

func TestGateway_Upsert_Reactivates(t *testing.T) {
	t.Parallel()

	until := testNow.Add(-time.Minute)
	kind := snooze.Short
	existing := &domain.Alert{
		ID: "a1", UserID: "u1", State: domain.AlertSnoozed,
		SnoozedUntil: &until, SnoozeKind: &kind, SnoozeCount: 2,
	}

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().GetActiveAlert(mock.Anything, "u1").Return(existing, nil).Once()
	ms.EXPECT().ReactivateAlert(mock.Anything, "a1", testCriticalItems(), testNow).Return(nil).Once()

	got, err := newTestGateway(ms).Upsert(context.Background(), "u1", testCriticalItems())
	require.NoError(t, err)
	assert.Equal(t, domain.AlertActive, got.State)
	assert.Nil(t, got.SnoozedUntil)
	assert.Nil(t, got.SnoozeKind)
	assert.Equal(t, 2, got.SnoozeCount, "snooze count never decreases")
	assert.Equal(t, testCriticalItems(), got.CriticalItems)
}

func TestGateway_Upsert_CreateError(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().GetActiveAlert(mock.Anything, "u1").Return(nil, nil).Once()
	ms.EXPECT().CreateAlert(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := newTestGateway(ms).Upsert(context.Background(), "u1", testCriticalItems())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating alert")
}

func TestGateway_Snooze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		alertID   string
		kind      snooze.Kind
		setup     func(*storeMocks.MockStore)
		wantErr   error
		wantUntil time.Time
	}{
		{
			name:    "short increments count",
			alertID: "a1",
			kind:    snooze.Short,
			setup: func(ms *storeMocks.MockStore) {
				ms.EXPECT().GetAlert(mock.Anything, "a1").
					Return(&domain.Alert{ID: "a1", UserID: "u1", SnoozeCount: 1}, nil).Once()
				ms.EXPECT().SnoozeAlert(mock.Anything, "a1", testNow.Add(15*time.Minute), snooze.Short, 2).
					Return(nil).Once()
			},
			wantUntil: testNow.Add(15 * time.Minute),
		},
		{
			name:    "tomorrow wakes at nine",
			alertID: "a1",
			kind:    snooze.Tomorrow,
			setup: func(ms *storeMocks.MockStore) {
				wake := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
				ms.EXPECT().GetAlert(mock.Anything, "a1").
					Return(&domain.Alert{ID: "a1", UserID: "u1"}, nil).Once()
				ms.EXPECT().SnoozeAlert(mock.Anything, "a1", wake, snooze.Tomorrow, 1).
					Return(nil).Once()
			},
			wantUntil: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			name:    "invalid kind fails before the store",
			alertID: "a1",
			kind:    snooze.Kind("bogus"),
			setup:   func(*storeMocks.MockStore) {},
			wantErr: snooze.ErrInvalidKind,
		},
		{
			name:    "missing alert id fails before the store",
			alertID: "",
			kind:    snooze.Short,
			setup:   func(*storeMocks.MockStore) {},
			wantErr: ErrMissingAlertID,
		},
		{
			name:    "unknown alert",
			alertID: "missing",
			kind:    snooze.Medium,
			setup: func(ms *storeMocks.MockStore) {
				ms.EXPECT().GetAlert(mock.Anything, "missing").
					Return(nil, store.ErrNotFound).Once()
			},
			wantErr: store.ErrNotFound,
		},
		{
			name:    "deactivated alert is not revived",
			alertID: "a1",
			kind:    snooze.Short,
			setup: func(ms *storeMocks.MockStore) {
				ms.EXPECT().GetAlert(mock.Anything, "a1").
					Return(&domain.Alert{ID: "a1", UserID: "u1", State: domain.AlertDeactivated}, nil).Once()
			},
			wantErr: ErrAlertDeactivated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			tt.setup(ms)

			got, err := newTestGateway(ms).Snooze(context.Background(), tt.alertID, tt.kind)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.AlertSnoozed, got.State)
			require.NotNil(t, got.SnoozedUntil)
			assert.True(t, tt.wantUntil.Equal(*got.SnoozedUntil))
			require.NotNil(t, got.SnoozeKind)
			assert.Equal(t, tt.kind, *got.SnoozeKind)
		})
	}
}

func TestGateway_Deactivate(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().DeactivateAlert(mock.Anything, "a1").Return(nil).Once()

	require.NoError(t, newTestGateway(ms).Deactivate(context.Background(), "a1"))
	require.ErrorIs(t, newTestGateway(ms).Deactivate(context.Background(), ""), ErrMissingAlertID)
}

func TestGateway_RefreshItems(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().UpdateAlertItems(mock.Anything, "a1", testCriticalItems()).Return(nil).Once()
	ms.EXPECT().UpdateAlertItems(mock.Anything, "gone", mock.Anything).Return(store.ErrNotFound).Once()

	gw := newTestGateway(ms)
	require.NoError(t, gw.RefreshItems(context.Background(), "a1", testCriticalItems()))
	require.ErrorIs(t, gw.RefreshItems(context.Background(), "gone", nil), store.ErrNotFound)
	require.ErrorIs(t, gw.RefreshItems(context.Background(), "", nil), ErrMissingAlertID)
}

func TestGateway_WriteThroughCache(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	c := cache.NewMemoryCache(nil)
	gw := newTestGateway(s, WithCache(c, "test", time.Hour))
	ctx := context.Background()

	_, err := gw.LastKnown(ctx, "u1")
	require.ErrorIs(t, err, cache.ErrCacheMiss)

	a, err := gw.Upsert(ctx, "u1", testCriticalItems())
	require.NoError(t, err)

	cached, err := gw.LastKnown(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, cached.ID)
	assert.Equal(t, domain.AlertActive, cached.State)

	_, err = gw.Snooze(ctx, a.ID, snooze.Medium)
	require.NoError(t, err)
	cached, err = gw.LastKnown(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.AlertSnoozed, cached.State)
	assert.Equal(t, 1, cached.SnoozeCount)

	require.NoError(t, gw.Deactivate(ctx, a.ID))
	_, err = gw.LastKnown(ctx, "u1")
	require.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestGateway_CacheFailureIsBestEffort(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mc := cacheMocks.NewMockCache(t)

	ms.EXPECT().GetActiveAlert(mock.Anything, "u1").Return(nil, nil).Once()
	ms.EXPECT().CreateAlert(mock.Anything, mock.Anything).Run(func(_ context.Context, a *domain.Alert) {
		a.ID = "a1"
	}).Return(nil).Once()
	mc.EXPECT().Set(mock.Anything, "test:u1", mock.MatchedBy(func(b []byte) bool {
		var a domain.Alert
		return json.Unmarshal(b, &a) == nil && a.ID == "a1"
	}), time.Hour).Return(errors.New("redis down")).Once()

	before := testutil.ToFloat64(metrics.CacheErrorsTotal.WithLabelValues("set"))

	gw := newTestGateway(ms, WithCache(mc, "test", time.Hour))
	got, err := gw.Upsert(context.Background(), "u1", testCriticalItems())
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)

	after := testutil.ToFloat64(metrics.CacheErrorsTotal.WithLabelValues("set"))
	assert.GreaterOrEqual(t, after-before, 1.0)
}
