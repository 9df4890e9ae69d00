package store

import (
	"encoding/json"
	"fmt"

	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// encodeItems serializes the embedded critical items column. A nil slice is
// stored as an empty JSON array so the column never holds null.
func encodeItems(items []domain.CriticalItem) ([]byte, error) {
	if items == nil {
		items = []domain.CriticalItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshaling critical items: %w", err)
	}
	return b, nil
}

func decodeItems(b []byte) ([]domain.CriticalItem, error) {
	items := []domain.CriticalItem{}
	if len(b) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("unmarshaling critical items: %w", err)
	}
	return items, nil
}

// finishAlertScan fills the columns that need decoding after a raw row scan.
func finishAlertScan(a *domain.Alert, itemsJSON []byte, kind *string) error {
	items, err := decodeItems(itemsJSON)
	if err != nil {
		return err
	}
	a.CriticalItems = items

	a.SnoozeKind = nil
	if kind != nil && *kind != "" {
		k := snooze.Kind(*kind)
		a.SnoozeKind = &k
	}
	return nil
}
