package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/mi-caja/internal/store"
	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func sampleItems() []domain.CriticalItem {
	return []domain.CriticalItem{
		{ID: "i1", Name: "Harina", Quantity: 0, Unit: "kg"},
		{ID: "i2", Name: "Azucar", Quantity: 2.5, Unit: "kg"},
	}
}

// runStoreSuite exercises the behavior every Store implementation shares.
// newStore must return a fresh, migrated store.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("no active alert", func(t *testing.T) {
		s := newStore(t)
		got, err := s.GetActiveAlert(context.Background(), "u-none")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("create and get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		notified := time.Now().UTC().Truncate(time.Microsecond)

		a := &domain.Alert{UserID: "u1", CriticalItems: sampleItems(), LastNotifiedAt: notified}
		require.NoError(t, s.CreateAlert(ctx, a))
		assert.NotEmpty(t, a.ID)
		assert.Equal(t, domain.AlertActive, a.State)
		assert.Zero(t, a.SnoozeCount)

		got, err := s.GetAlert(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "u1", got.UserID)
		assert.Equal(t, domain.AlertActive, got.State)
		assert.Equal(t, sampleItems(), got.CriticalItems)
		assert.True(t, notified.Equal(got.LastNotifiedAt))
		assert.Nil(t, got.SnoozedUntil)
		assert.Nil(t, got.SnoozeKind)

		active, err := s.GetActiveAlert(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, a.ID, active.ID)
	})

	t.Run("get unknown alert", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetAlert(context.Background(), "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("snooze then reactivate", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		a := &domain.Alert{UserID: "u2", CriticalItems: sampleItems(), LastNotifiedAt: time.Now()}
		require.NoError(t, s.CreateAlert(ctx, a))

		until := time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond)
		require.NoError(t, s.SnoozeAlert(ctx, a.ID, until, snooze.Medium, 1))

		got, err := s.GetActiveAlert(ctx, "u2")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, domain.AlertSnoozed, got.State)
		require.NotNil(t, got.SnoozedUntil)
		assert.True(t, until.Equal(*got.SnoozedUntil))
		require.NotNil(t, got.SnoozeKind)
		assert.Equal(t, snooze.Medium, *got.SnoozeKind)
		assert.Equal(t, 1, got.SnoozeCount)

		items := []domain.CriticalItem{{ID: "i3", Name: "Sal", Quantity: 1, Unit: "kg"}}
		notified := time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, s.ReactivateAlert(ctx, a.ID, items, notified))

		got, err = s.GetAlert(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AlertActive, got.State)
		assert.Equal(t, items, got.CriticalItems)
		assert.Nil(t, got.SnoozedUntil)
		assert.Nil(t, got.SnoozeKind)
		assert.Equal(t, 1, got.SnoozeCount, "reactivation keeps the snooze count")
		assert.True(t, notified.Equal(got.LastNotifiedAt))
	})

	t.Run("update items keeps state", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		a := &domain.Alert{UserID: "u3", CriticalItems: sampleItems(), LastNotifiedAt: time.Now()}
		require.NoError(t, s.CreateAlert(ctx, a))
		require.NoError(t, s.SnoozeAlert(ctx, a.ID, time.Now().Add(time.Hour), snooze.Short, 1))

		items := []domain.CriticalItem{{ID: "i1", Name: "Harina", Quantity: 1, Unit: "kg"}}
		require.NoError(t, s.UpdateAlertItems(ctx, a.ID, items))

		got, err := s.GetAlert(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AlertSnoozed, got.State)
		assert.Equal(t, items, got.CriticalItems)
	})

	t.Run("deactivate hides alert", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		a := &domain.Alert{UserID: "u4", CriticalItems: sampleItems(), LastNotifiedAt: time.Now()}
		require.NoError(t, s.CreateAlert(ctx, a))
		require.NoError(t, s.DeactivateAlert(ctx, a.ID))

		got, err := s.GetActiveAlert(ctx, "u4")
		require.NoError(t, err)
		assert.Nil(t, got)

		stored, err := s.GetAlert(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AlertDeactivated, stored.State)
	})

	t.Run("snooze skips deactivated alert", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		a := &domain.Alert{UserID: "u8", CriticalItems: sampleItems(), LastNotifiedAt: time.Now()}
		require.NoError(t, s.CreateAlert(ctx, a))
		require.NoError(t, s.DeactivateAlert(ctx, a.ID))

		err := s.SnoozeAlert(ctx, a.ID, time.Now().Add(time.Hour), snooze.Short, 1)
		require.ErrorIs(t, err, store.ErrNotFound)

		stored, err := s.GetAlert(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AlertDeactivated, stored.State)
		assert.Nil(t, stored.SnoozedUntil)
		assert.Zero(t, stored.SnoozeCount)

		active, err := s.GetActiveAlert(ctx, "u8")
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("newest open alert wins", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		first := &domain.Alert{UserID: "u5", CriticalItems: sampleItems(), LastNotifiedAt: time.Now()}
		require.NoError(t, s.CreateAlert(ctx, first))
		time.Sleep(2 * time.Millisecond)
		second := &domain.Alert{UserID: "u5", CriticalItems: sampleItems(), LastNotifiedAt: time.Now()}
		require.NoError(t, s.CreateAlert(ctx, second))

		got, err := s.GetActiveAlert(ctx, "u5")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, second.ID, got.ID)
	})

	t.Run("updates on unknown id", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		id := "00000000-0000-0000-0000-000000000000"

		assert.ErrorIs(t, s.DeactivateAlert(ctx, id), store.ErrNotFound)
		assert.ErrorIs(t, s.UpdateAlertItems(ctx, id, nil), store.ErrNotFound)
		assert.ErrorIs(t, s.ReactivateAlert(ctx, id, nil, time.Now()), store.ErrNotFound)
		assert.ErrorIs(t, s.SnoozeAlert(ctx, id, time.Now(), snooze.Short, 1), store.ErrNotFound)
	})

	t.Run("stock upsert and list", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.UpsertStock(ctx, "u6", &domain.StockRecord{
			ID: "b", Name: "Leche", AvailableQuantity: ptr(3.0), Unit: "l",
		}))
		require.NoError(t, s.UpsertStock(ctx, "u6", &domain.StockRecord{
			ID: "a", Name: "Arroz",
		}))
		require.NoError(t, s.UpsertStock(ctx, "other", &domain.StockRecord{
			ID: "z", Name: "Otro", AvailableQuantity: ptr(1.0),
		}))
		require.NoError(t, s.UpsertStock(ctx, "u6", &domain.StockRecord{
			ID: "b", Name: "Leche", AvailableQuantity: ptr(12.5), Unit: "l",
		}))

		got, err := s.ListStock(ctx, "u6")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Arroz", got[0].Name)
		assert.Nil(t, got[0].AvailableQuantity)
		assert.Equal(t, "Leche", got[1].Name)
		require.NotNil(t, got[1].AvailableQuantity)
		assert.InDelta(t, 12.5, *got[1].AvailableQuantity, 1e-9)
		assert.Equal(t, "l", got[1].Unit)

		empty, err := s.ListStock(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("sound preference defaults on", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		on, err := s.GetSoundEnabled(ctx, "u7")
		require.NoError(t, err)
		assert.True(t, on)

		require.NoError(t, s.SetSoundEnabled(ctx, "u7", false))
		on, err = s.GetSoundEnabled(ctx, "u7")
		require.NoError(t, err)
		assert.False(t, on)

		require.NoError(t, s.SetSoundEnabled(ctx, "u7", true))
		on, err = s.GetSoundEnabled(ctx, "u7")
		require.NoError(t, err)
		assert.True(t, on)
	})

	t.Run("ping and migrate are idempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Ping(ctx))
		require.NoError(t, s.Migrate(ctx))
	})
}
