package client

import "context"

type soundBody struct {
	Enabled bool `json:"enabled"`
}

// GetSoundEnabled returns the caller's sound flag.
func (c *Client) GetSoundEnabled(ctx context.Context) (bool, error) {
	var out soundBody
	if err := c.get(ctx, "/api/v1/preferences/sound", &out); err != nil {
		return false, err
	}
	return out.Enabled, nil
}

// SetSoundEnabled updates the caller's sound flag.
func (c *Client) SetSoundEnabled(ctx context.Context, enabled bool) error {
	return c.put(ctx, "/api/v1/preferences/sound", soundBody{Enabled: enabled}, nil)
}
