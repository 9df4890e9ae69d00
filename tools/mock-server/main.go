// Package main implements a mock Discord webhook receiver for local
// development. Point notifications.discord.webhook_url at it to watch sound
// cue notifications arrive without a real Discord channel.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title       string       `json:"title"`
	Color       int          `json:"color"`
	Description string       `json:"description,omitempty"`
	Fields      []embedField `json:"fields,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// received is one accepted webhook call.
type received struct {
	Webhook    string         `json:"webhook"`
	ReceivedAt time.Time      `json:"received_at"`
	Payload    webhookPayload `json:"payload"`
}

// inbox stores accepted webhook calls and decides which requests to
// rate-limit.
type inbox struct {
	mu        sync.Mutex
	messages  []received
	requests  int
	limitEach int
}

func newInbox(limitEach int) *inbox {
	return &inbox{limitEach: limitEach}
}

// admit counts a request and reports whether it should be rejected with 429.
func (b *inbox) admit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests++
	return b.limitEach > 0 && b.requests%b.limitEach == 0
}

func (b *inbox) add(m received) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, m)
}

func (b *inbox) list() []received {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]received, len(b.messages))
	copy(out, b.messages)
	return out
}

func (b *inbox) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = nil
	b.requests = 0
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	limitEach := flag.Int("rate-limit-every", 0, "answer every Nth webhook call with 429 (0 disables)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	box := newInbox(*limitEach)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/webhooks/{id}/{token}", webhookHandler(logger, box))
	mux.HandleFunc("GET /messages", listHandler(box))
	mux.HandleFunc("DELETE /messages", resetHandler(logger, box))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Discord server", "addr", addr,
		"webhook_url", fmt.Sprintf("http://localhost%s/api/webhooks/1/mock", addr))

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func webhookHandler(logger *slog.Logger, box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if box.admit() {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"message":     "You are being rate limited.",
				"retry_after": 1.0,
				"global":      false,
			})
			logger.Warn("rate limited webhook call")
			return
		}

		var payload webhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": "The request body contains invalid JSON.",
				"code":    50109,
			})
			return
		}
		if len(payload.Embeds) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": "Cannot send an empty message",
				"code":    50006,
			})
			return
		}

		box.add(received{
			Webhook:    r.PathValue("id"),
			ReceivedAt: time.Now().UTC(),
			Payload:    payload,
		})
		w.WriteHeader(http.StatusNoContent)
		logger.Info("webhook received", "webhook", r.PathValue("id"),
			"embeds", len(payload.Embeds), "title", payload.Embeds[0].Title)
	}
}

func listHandler(box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"messages": box.list()})
	}
}

func resetHandler(logger *slog.Logger, box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		box.reset()
		w.WriteHeader(http.StatusNoContent)
		logger.Info("inbox cleared")
	}
}
