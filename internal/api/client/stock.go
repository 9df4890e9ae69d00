package client

import (
	"context"

	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

type stockRequest struct {
	Name              string   `json:"name"`
	AvailableQuantity *float64 `json:"available_quantity,omitempty"`
	Unit              string   `json:"unit,omitempty"`
}

// PutStockResult is the recorded item and how many sessions re-checked.
type PutStockResult struct {
	Item      domain.StockRecord `json:"item"`
	ChecksRun int                `json:"checks_run"`
}

// ListStock returns the caller's inventory.
func (c *Client) ListStock(ctx context.Context) ([]domain.StockRecord, error) {
	var out struct {
		Items []domain.StockRecord `json:"items"`
	}
	if err := c.get(ctx, "/api/v1/stock", &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// PutStock records the quantity of one item.
func (c *Client) PutStock(ctx context.Context, r *domain.StockRecord) (*PutStockResult, error) {
	var out PutStockResult
	req := stockRequest{
		Name:              r.Name,
		AvailableQuantity: r.AvailableQuantity,
		Unit:              r.Unit,
	}
	if err := c.put(ctx, "/api/v1/stock/"+r.ID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
