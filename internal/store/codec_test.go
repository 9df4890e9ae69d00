package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

func TestEncodeItems_NilIsEmptyArray(t *testing.T) {
	t.Parallel()

	b, err := encodeItems(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestFinishAlertScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		items    []byte
		kind     *string
		wantKind *snooze.Kind
		wantLen  int
		wantErr  bool
	}{
		{name: "empty column", items: nil, wantLen: 0},
		{
			name:    "items and kind",
			items:   []byte(`[{"id":"1","name":"Harina","quantity":2,"unit":"kg"}]`),
			kind:    func() *string { s := "tomorrow"; return &s }(),
			wantLen: 1,
			wantKind: func() *snooze.Kind {
				k := snooze.Tomorrow
				return &k
			}(),
		},
		{name: "blank kind", items: []byte(`[]`), kind: new(string)},
		{name: "bad json", items: []byte(`{`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := &domain.Alert{}
			err := finishAlertScan(a, tt.items, tt.kind)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, a.CriticalItems, tt.wantLen)
			assert.NotNil(t, a.CriticalItems)
			assert.Equal(t, tt.wantKind, a.SnoozeKind)
		})
	}
}

func TestSQLiteTimeLayout_SortsLexically(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	earlier := formatTime(base)
	later := formatTime(base.Add(time.Millisecond))
	assert.Less(t, earlier, later)

	parsed, err := parseTime(later)
	require.NoError(t, err)
	assert.True(t, base.Add(time.Millisecond).Equal(parsed))
}
