package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// StockStore reads and records inventory quantities.
type StockStore interface {
	ListStock(ctx context.Context, userID string) ([]domain.StockRecord, error)
	UpsertStock(ctx context.Context, userID string, r *domain.StockRecord) error
}

// CheckTrigger runs a manual check on every open session of a user.
type CheckTrigger interface {
	TriggerUser(ctx context.Context, userID string) int
}

// StockHandler handles the inventory endpoints.
type StockHandler struct {
	store   StockStore
	trigger CheckTrigger
	log     *slog.Logger
}

// NewStockHandler creates a StockHandler.
func NewStockHandler(s StockStore, t CheckTrigger, log *slog.Logger) *StockHandler {
	return &StockHandler{store: s, trigger: t, log: log}
}

// --- Input/Output types ---

// ListStockOutput is the caller's stock snapshot.
type ListStockOutput struct {
	Body struct {
		Items []domain.StockRecord `json:"items"`
	}
}

// PutStockInput records the quantity of one item.
type PutStockInput struct {
	ID   string `path:"id" doc:"Inventory item ID"`
	Body struct {
		Name              string   `json:"name"                         minLength:"1"              doc:"Item name"`
		AvailableQuantity *float64 `json:"available_quantity,omitempty" doc:"Quantity on hand"`
		Unit              string   `json:"unit,omitempty"               doc:"Unit of measure"`
	}
}

// PutStockOutput is the recorded item and how many sessions re-checked.
type PutStockOutput struct {
	Body struct {
		Item      domain.StockRecord `json:"item"`
		ChecksRun int                `json:"checks_run" doc:"Sessions that re-checked immediately (others were debounced)"`
	}
}

// --- Handlers ---

// List returns the caller's inventory.
func (h *StockHandler) List(ctx context.Context, _ *struct{}) (*ListStockOutput, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	items, err := h.store.ListStock(ctx, userID)
	if err != nil {
		h.log.Error("listing stock", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("listing stock failed")
	}
	if items == nil {
		items = []domain.StockRecord{}
	}

	out := &ListStockOutput{}
	out.Body.Items = items
	return out, nil
}

// Put records a purchase or count and re-checks the caller's open sessions.
func (h *StockHandler) Put(ctx context.Context, in *PutStockInput) (*PutStockOutput, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	rec := domain.StockRecord{
		ID:                in.ID,
		Name:              in.Body.Name,
		AvailableQuantity: in.Body.AvailableQuantity,
		Unit:              in.Body.Unit,
	}
	if err := h.store.UpsertStock(ctx, userID, &rec); err != nil {
		h.log.Error("recording stock", "user_id", userID, "item_id", in.ID, "error", err)
		return nil, huma.Error500InternalServerError("recording stock failed")
	}

	out := &PutStockOutput{}
	out.Body.Item = rec
	out.Body.ChecksRun = h.trigger.TriggerUser(ctx, userID)
	return out, nil
}

// RegisterStockRoutes registers inventory endpoints with the Huma API.
func RegisterStockRoutes(api huma.API, h *StockHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-stock",
		Method:      http.MethodGet,
		Path:        "/api/v1/stock",
		Summary:     "List stock",
		Description: "Returns the caller's inventory with current quantities.",
		Tags:        []string{"stock"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "put-stock",
		Method:      http.MethodPut,
		Path:        "/api/v1/stock/{id}",
		Summary:     "Record stock",
		Description: "Records the quantity of an item and triggers a check on the caller's open sessions.",
		Tags:        []string{"stock"},
	}, h.Put)
}
