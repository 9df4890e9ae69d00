package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printAlert(w io.Writer, a *domain.Alert, stale bool) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", a.ID)
	tw.writef("State:\t%s\n", a.State)
	if a.SnoozedUntil != nil {
		tw.writef("Snoozed until:\t%s\n", formatTime(a.SnoozedUntil))
	}
	tw.writef("Snoozes:\t%d\n", a.SnoozeCount)
	tw.writef("Last notified:\t%s\n", formatTime(&a.LastNotifiedAt))
	if stale {
		tw.writef("Source:\tcache (store unreachable)\n")
	}
	tw.writef("\nITEM\tQUANTITY\tUNIT\n")
	for _, it := range a.CriticalItems {
		tw.writef("%s\t%s\t%s\n", it.Name, formatQuantity(it.Quantity), it.Unit)
	}
	return tw.finish()
}

func printStockTable(w io.Writer, items []domain.StockRecord) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tQUANTITY\tUNIT\n")
	for _, it := range items {
		q := "-"
		if it.AvailableQuantity != nil {
			q = formatQuantity(*it.AvailableQuantity)
		}
		tw.writef("%s\t%s\t%s\t%s\n", it.ID, it.Name, q, it.Unit)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatQuantity(q float64) string {
	return fmt.Sprintf("%g", q)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
