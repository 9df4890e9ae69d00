package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

func TestPrintStockTable(t *testing.T) {
	t.Parallel()

	q := 2.5
	var buf bytes.Buffer
	require.NoError(t, printStockTable(&buf, []domain.StockRecord{
		{ID: "1", Name: "Harina", AvailableQuantity: &q, Unit: "kg"},
		{ID: "2", Name: "Sal"},
	}))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Harina")
	assert.Contains(t, out, "2.5")
	assert.Regexp(t, `Sal\s+-`, out)
}

func TestPrintAlert(t *testing.T) {
	t.Parallel()

	until := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, printAlert(&buf, &domain.Alert{
		ID:            "a1",
		State:         domain.AlertSnoozed,
		SnoozedUntil:  &until,
		SnoozeCount:   2,
		CriticalItems: []domain.CriticalItem{{ID: "1", Name: "Harina", Quantity: 0, Unit: "kg"}},
	}, true))

	out := buf.String()
	assert.Contains(t, out, "snoozed")
	assert.Contains(t, out, "Snoozed until:")
	assert.Contains(t, out, "cache (store unreachable)")
	assert.Regexp(t, `Harina\s+0\s+kg`, out)
}

func TestOnOff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "on", onOff(true))
	assert.Equal(t, "off", onOff(false))
}
