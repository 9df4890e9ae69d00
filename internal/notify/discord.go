package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/mi-caja/internal/metrics"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

const (
	colorRed    = 0xE74C3C // at least one item is out of stock
	colorOrange = 0xE67E22 // low but not empty

	// Discord allows max 25 fields per embed.
	maxEmbedFields = 25
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
	limiter    *rate.Limiter
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithMinGap drops notifications sent less than gap after the previous one.
// Several open tabs of the same user would otherwise post one message each.
func WithMinGap(gap time.Duration) DiscordOption {
	return func(d *DiscordNotifier) {
		if gap > 0 {
			d.limiter = rate.NewLimiter(rate.Every(gap), 1)
		}
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// NotifyCriticalStock posts the critical items as a single Discord embed.
func (d *DiscordNotifier) NotifyCriticalStock(
	ctx context.Context,
	userID string,
	items []domain.CriticalItem,
) error {
	if !d.limiter.Allow() {
		metrics.NotificationsSkippedTotal.Inc()
		return ErrRateLimited
	}

	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(userID, items)},
	}
	return d.post(ctx, payload)
}

func buildEmbed(userID string, items []domain.CriticalItem) discordEmbed {
	embed := discordEmbed{
		Title:       fmt.Sprintf("Stock crítico: %d producto(s)", len(items)),
		Color:       stockColor(items),
		Description: "Usuario " + userID,
	}

	limit := min(len(items), maxEmbedFields)
	if len(items) > maxEmbedFields {
		limit = maxEmbedFields - 1
	}

	embed.Fields = make([]discordEmbedField, 0, limit+1)
	for _, it := range items[:limit] {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:   it.Name,
			Value:  formatQuantity(it.Quantity) + " " + it.Unit,
			Inline: true,
		})
	}

	if len(items) > limit {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:  "...",
			Value: fmt.Sprintf("y %d más", len(items)-limit),
		})
	}

	return embed
}

func stockColor(items []domain.CriticalItem) int {
	for _, it := range items {
		if it.Quantity <= 0 {
			return colorRed
		}
	}
	return colorOrange
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
