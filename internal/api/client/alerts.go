package client

import (
	"context"

	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// ActiveAlert is the response of GET /api/v1/alerts/active.
type ActiveAlert struct {
	Alert *domain.Alert `json:"alert"`
	Stale bool          `json:"stale"`
}

// GetActiveAlert returns the caller's active or snoozed alert. Alert is nil
// when there is none.
func (c *Client) GetActiveAlert(ctx context.Context) (*ActiveAlert, error) {
	var out ActiveAlert
	if err := c.get(ctx, "/api/v1/alerts/active", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SnoozeAlert snoozes an alert for the given duration kind.
func (c *Client) SnoozeAlert(ctx context.Context, id string, kind snooze.Kind) (*domain.Alert, error) {
	var a domain.Alert
	body := map[string]string{"kind": string(kind)}
	if err := c.post(ctx, "/api/v1/alerts/"+id+"/snooze", body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DeactivateAlert closes an alert.
func (c *Client) DeactivateAlert(ctx context.Context, id string) error {
	return c.post(ctx, "/api/v1/alerts/"+id+"/deactivate", nil, nil)
}
