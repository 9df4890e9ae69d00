package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/mi-caja/internal/metrics"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

func testItems(quantities ...float64) []domain.CriticalItem {
	items := make([]domain.CriticalItem, 0, len(quantities))
	for i, q := range quantities {
		items = append(items, domain.CriticalItem{
			ID:       fmt.Sprintf("item-%d", i),
			Name:     fmt.Sprintf("Producto %d", i),
			Quantity: q,
			Unit:     "kg",
		})
	}
	return items
}

func TestDiscordNotifier_NotifyCriticalStock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		items      []domain.CriticalItem
		statusCode int
		wantErr    bool
		errMsg     string
		wantColor  int
	}{
		{
			name:       "empty item uses red color",
			items:      testItems(0, 3),
			statusCode: http.StatusNoContent,
			wantColor:  colorRed,
		},
		{
			name:       "low items use orange color",
			items:      testItems(1.5, 4),
			statusCode: http.StatusNoContent,
			wantColor:  colorOrange,
		},
		{
			name:       "discord returns 429 rate limited",
			items:      testItems(1),
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400 error",
			items:      testItems(1),
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)

					err := json.NewDecoder(r.Body).Decode(&received)
					assert.NoError(t, err)

					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL)
			err := d.NotifyCriticalStock(context.Background(), "u1", tt.items)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Contains(t, embed.Title, fmt.Sprintf("%d", len(tt.items)))
			assert.Contains(t, embed.Description, "u1")

			fieldMap := make(map[string]string)
			for _, f := range embed.Fields {
				fieldMap[f.Name] = f.Value
			}
			for _, it := range tt.items {
				assert.Equal(t, formatQuantity(it.Quantity)+" kg", fieldMap[it.Name])
			}
		})
	}
}

func TestBuildEmbed_TruncatesFields(t *testing.T) {
	t.Parallel()

	quantities := make([]float64, 30)
	embed := buildEmbed("u1", testItems(quantities...))

	require.Len(t, embed.Fields, maxEmbedFields)
	last := embed.Fields[len(embed.Fields)-1]
	assert.Equal(t, "y 6 más", last.Value)
}

func TestBuildEmbed_ExactlyMaxFields(t *testing.T) {
	t.Parallel()

	quantities := make([]float64, maxEmbedFields)
	embed := buildEmbed("u1", testItems(quantities...))

	require.Len(t, embed.Fields, maxEmbedFields)
	assert.NotEqual(t, "...", embed.Fields[len(embed.Fields)-1].Name)
}

func TestDiscordNotifier_MinGap(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := NewDiscordNotifier(srv.URL, WithMinGap(time.Hour))

	require.NoError(t, d.NotifyCriticalStock(context.Background(), "u1", testItems(1)))
	err := d.NotifyCriticalStock(context.Background(), "u1", testItems(1))
	require.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	err := d.NotifyCriticalStock(context.Background(), "u1", testItems(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	err := d.NotifyCriticalStock(context.Background(), "u1", testItems(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}

func getNotificationHistogramSampleCount() uint64 {
	ch := make(chan prometheus.Metric, 1)
	metrics.NotificationDuration.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestNotifyCriticalStock_ObservesNotificationDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := getNotificationHistogramSampleCount()

	d := NewDiscordNotifier(srv.URL)
	require.NoError(t, d.NotifyCriticalStock(context.Background(), "u1", testItems(2)))

	after := getNotificationHistogramSampleCount()
	assert.Greater(t, after, before, "NotificationDuration histogram sample count should increase")
}

// compile-time interface check.
var _ Notifier = (*DiscordNotifier)(nil)
