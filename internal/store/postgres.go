package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
// Exercised by the integration tests in postgres_integration_test.go.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
// A poolSize of zero uses the default.
func NewPostgresStore(ctx context.Context, connString string, poolSize int) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	cfg.MaxConns = int32(poolSize) //nolint:gosec // bounded by config

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// GetActiveAlert returns the user's newest non-deactivated alert through the
// get_active_stock_alert lookup function, or nil when there is none.
func (s *PostgresStore) GetActiveAlert(ctx context.Context, userID string) (*domain.Alert, error) {
	a := &domain.Alert{}
	err := scanAlert(s.pool.QueryRow(ctx, queryGetActiveAlert, userID), a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting active alert: %w", err)
	}
	return a, nil
}

// GetAlert retrieves an alert by id.
func (s *PostgresStore) GetAlert(ctx context.Context, id string) (*domain.Alert, error) {
	a := &domain.Alert{}
	err := scanAlert(s.pool.QueryRow(ctx, queryGetAlert, id), a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting alert: %w", err)
	}
	return a, nil
}

// CreateAlert inserts a new active alert with a zero snooze count.
func (s *PostgresStore) CreateAlert(ctx context.Context, a *domain.Alert) error {
	itemsJSON, err := encodeItems(a.CriticalItems)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"user_id":          a.UserID,
		"state":            string(domain.AlertActive),
		"critical_items":   itemsJSON,
		"last_notified_at": a.LastNotifiedAt,
	}

	if err := s.pool.QueryRow(ctx, queryCreateAlert, args).Scan(
		&a.ID, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return fmt.Errorf("creating alert: %w", err)
	}

	a.State = domain.AlertActive
	a.SnoozeCount = 0
	return nil
}

// ReactivateAlert refreshes an alert's items and returns it to active,
// clearing any snooze.
func (s *PostgresStore) ReactivateAlert(
	ctx context.Context,
	id string,
	items []domain.CriticalItem,
	notifiedAt time.Time,
) error {
	itemsJSON, err := encodeItems(items)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, queryReactivateAlert, id, itemsJSON, notifiedAt)
	return checkAffected(tag, err, "reactivating alert", id)
}

// UpdateAlertItems replaces an alert's embedded critical items only.
func (s *PostgresStore) UpdateAlertItems(
	ctx context.Context,
	id string,
	items []domain.CriticalItem,
) error {
	itemsJSON, err := encodeItems(items)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, queryUpdateAlertItems, id, itemsJSON)
	return checkAffected(tag, err, "updating alert items", id)
}

// SnoozeAlert marks an alert snoozed until the given time.
func (s *PostgresStore) SnoozeAlert(
	ctx context.Context,
	id string,
	until time.Time,
	kind snooze.Kind,
	count int,
) error {
	tag, err := s.pool.Exec(ctx, querySnoozeAlert, id, until, string(kind), count)
	return checkAffected(tag, err, "snoozing alert", id)
}

// DeactivateAlert marks an alert deactivated.
func (s *PostgresStore) DeactivateAlert(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, queryDeactivateAlert, id)
	return checkAffected(tag, err, "deactivating alert", id)
}

// ListStock returns the user's stock snapshot.
func (s *PostgresStore) ListStock(ctx context.Context, userID string) ([]domain.StockRecord, error) {
	rows, err := s.pool.Query(ctx, queryListStock, userID)
	if err != nil {
		return nil, fmt.Errorf("querying stock: %w", err)
	}
	defer rows.Close()

	var records []domain.StockRecord
	for rows.Next() {
		var r domain.StockRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.AvailableQuantity, &r.Unit); err != nil {
			return nil, fmt.Errorf("scanning stock item: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// UpsertStock inserts or updates one stock item for the user.
func (s *PostgresStore) UpsertStock(ctx context.Context, userID string, r *domain.StockRecord) error {
	args := pgx.NamedArgs{
		"id":                 r.ID,
		"user_id":            userID,
		"name":               r.Name,
		"available_quantity": r.AvailableQuantity,
		"unit":               r.Unit,
	}

	if _, err := s.pool.Exec(ctx, queryUpsertStock, args); err != nil {
		return fmt.Errorf("upserting stock item: %w", err)
	}
	return nil
}

// GetSoundEnabled returns the user's sound preference. Users without a
// stored preference have sound enabled.
func (s *PostgresStore) GetSoundEnabled(ctx context.Context, userID string) (bool, error) {
	var enabled bool
	err := s.pool.QueryRow(ctx, queryGetSoundEnabled, userID).Scan(&enabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("getting sound preference: %w", err)
	}
	return enabled, nil
}

// SetSoundEnabled stores the user's sound preference.
func (s *PostgresStore) SetSoundEnabled(ctx context.Context, userID string, enabled bool) error {
	if _, err := s.pool.Exec(ctx, querySetSoundEnabled, userID, enabled); err != nil {
		return fmt.Errorf("setting sound preference: %w", err)
	}
	return nil
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

// scanAlert scans a full stock_alerts row.
func scanAlert(row scannable, a *domain.Alert) error {
	var (
		itemsJSON []byte
		kind      *string
	)

	if err := row.Scan(
		&a.ID, &a.UserID, &a.State, &itemsJSON, &a.LastNotifiedAt,
		&a.SnoozedUntil, &kind, &a.SnoozeCount, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return err
	}

	return finishAlertScan(a, itemsJSON, kind)
}

func checkAffected(tag pgconn.CommandTag, err error, op, id string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	return nil
}
