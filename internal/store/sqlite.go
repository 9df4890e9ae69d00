package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO required

	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// sqliteTimeLayout is fixed-width so that TEXT ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const sqliteAlertColumns = `
	id, user_id, state, critical_items, last_notified_at,
	snoozed_until, snooze_kind, snooze_count, created_at, updated_at`

// SQLiteStore implements Store on a single SQLite file for single-node
// deployments and local development.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database handle is usable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate applies pending SQLite schema migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return runSQLiteMigrations(ctx, s.db)
}

// GetActiveAlert returns the user's newest non-deactivated alert, or nil.
func (s *SQLiteStore) GetActiveAlert(ctx context.Context, userID string) (*domain.Alert, error) {
	a := &domain.Alert{}
	err := scanSQLiteAlert(s.db.QueryRowContext(ctx, `SELECT`+sqliteAlertColumns+`
		FROM stock_alerts
		WHERE user_id = ? AND state <> 'deactivated'
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1`, userID), a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting active alert: %w", err)
	}
	return a, nil
}

// GetAlert retrieves an alert by id.
func (s *SQLiteStore) GetAlert(ctx context.Context, id string) (*domain.Alert, error) {
	a := &domain.Alert{}
	err := scanSQLiteAlert(s.db.QueryRowContext(ctx, `SELECT`+sqliteAlertColumns+`
		FROM stock_alerts
		WHERE id = ?`, id), a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting alert: %w", err)
	}
	return a, nil
}

// CreateAlert inserts a new active alert with a zero snooze count.
func (s *SQLiteStore) CreateAlert(ctx context.Context, a *domain.Alert) error {
	itemsJSON, err := encodeItems(a.CriticalItems)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	id := uuid.NewString()

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO stock_alerts (
			id, user_id, state, critical_items, last_notified_at,
			snooze_count, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		id, a.UserID, string(domain.AlertActive), string(itemsJSON),
		formatTime(a.LastNotifiedAt), formatTime(now), formatTime(now),
	); err != nil {
		return fmt.Errorf("creating alert: %w", err)
	}

	a.ID = id
	a.State = domain.AlertActive
	a.SnoozeCount = 0
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

// ReactivateAlert refreshes an alert's items and returns it to active,
// clearing any snooze.
func (s *SQLiteStore) ReactivateAlert(
	ctx context.Context,
	id string,
	items []domain.CriticalItem,
	notifiedAt time.Time,
) error {
	itemsJSON, err := encodeItems(items)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE stock_alerts SET
			state = 'active',
			critical_items = ?,
			last_notified_at = ?,
			snoozed_until = NULL,
			snooze_kind = NULL,
			updated_at = ?
		WHERE id = ?`,
		string(itemsJSON), formatTime(notifiedAt), formatTime(time.Now()), id,
	)
	return checkResult(res, err, "reactivating alert", id)
}

// UpdateAlertItems replaces an alert's embedded critical items only.
func (s *SQLiteStore) UpdateAlertItems(
	ctx context.Context,
	id string,
	items []domain.CriticalItem,
) error {
	itemsJSON, err := encodeItems(items)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE stock_alerts SET
			critical_items = ?,
			updated_at = ?
		WHERE id = ?`,
		string(itemsJSON), formatTime(time.Now()), id,
	)
	return checkResult(res, err, "updating alert items", id)
}

// SnoozeAlert marks an alert snoozed until the given time.
func (s *SQLiteStore) SnoozeAlert(
	ctx context.Context,
	id string,
	until time.Time,
	kind snooze.Kind,
	count int,
) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE stock_alerts SET
			state = 'snoozed',
			snoozed_until = ?,
			snooze_kind = ?,
			snooze_count = ?,
			updated_at = ?
		WHERE id = ? AND state <> 'deactivated'`,
		formatTime(until), string(kind), count, formatTime(time.Now()), id,
	)
	return checkResult(res, err, "snoozing alert", id)
}

// DeactivateAlert marks an alert deactivated.
func (s *SQLiteStore) DeactivateAlert(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE stock_alerts SET
			state = 'deactivated',
			updated_at = ?
		WHERE id = ?`,
		formatTime(time.Now()), id,
	)
	return checkResult(res, err, "deactivating alert", id)
}

// ListStock returns the user's stock snapshot.
func (s *SQLiteStore) ListStock(ctx context.Context, userID string) ([]domain.StockRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, available_quantity, unit
		FROM stock_items
		WHERE user_id = ?
		ORDER BY name, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying stock: %w", err)
	}
	defer rows.Close()

	var records []domain.StockRecord
	for rows.Next() {
		var (
			r   domain.StockRecord
			qty sql.NullFloat64
		)
		if err := rows.Scan(&r.ID, &r.Name, &qty, &r.Unit); err != nil {
			return nil, fmt.Errorf("scanning stock item: %w", err)
		}
		if qty.Valid {
			v := qty.Float64
			r.AvailableQuantity = &v
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// UpsertStock inserts or updates one stock item for the user.
func (s *SQLiteStore) UpsertStock(ctx context.Context, userID string, r *domain.StockRecord) error {
	var qty sql.NullFloat64
	if r.AvailableQuantity != nil {
		qty = sql.NullFloat64{Float64: *r.AvailableQuantity, Valid: true}
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO stock_items (id, user_id, name, available_quantity, unit, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, id) DO UPDATE SET
			name = excluded.name,
			available_quantity = excluded.available_quantity,
			unit = excluded.unit,
			updated_at = excluded.updated_at`,
		r.ID, userID, r.Name, qty, r.Unit, formatTime(time.Now()),
	); err != nil {
		return fmt.Errorf("upserting stock item: %w", err)
	}
	return nil
}

// GetSoundEnabled returns the user's sound preference, defaulting to enabled.
func (s *SQLiteStore) GetSoundEnabled(ctx context.Context, userID string) (bool, error) {
	var enabled bool
	err := s.db.QueryRowContext(ctx,
		`SELECT sound_enabled FROM user_preferences WHERE user_id = ?`, userID,
	).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("getting sound preference: %w", err)
	}
	return enabled, nil
}

// SetSoundEnabled stores the user's sound preference.
func (s *SQLiteStore) SetSoundEnabled(ctx context.Context, userID string, enabled bool) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, sound_enabled, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			sound_enabled = excluded.sound_enabled,
			updated_at = excluded.updated_at`,
		userID, enabled, formatTime(time.Now()),
	); err != nil {
		return fmt.Errorf("setting sound preference: %w", err)
	}
	return nil
}

func scanSQLiteAlert(row scannable, a *domain.Alert) error {
	var (
		itemsJSON    string
		notifiedAt   string
		snoozedUntil sql.NullString
		kind         sql.NullString
		createdAt    string
		updatedAt    string
	)

	if err := row.Scan(
		&a.ID, &a.UserID, &a.State, &itemsJSON, &notifiedAt,
		&snoozedUntil, &kind, &a.SnoozeCount, &createdAt, &updatedAt,
	); err != nil {
		return err
	}

	var err error
	if a.LastNotifiedAt, err = parseTime(notifiedAt); err != nil {
		return err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return err
	}

	a.SnoozedUntil = nil
	if snoozedUntil.Valid {
		t, err := parseTime(snoozedUntil.String)
		if err != nil {
			return err
		}
		a.SnoozedUntil = &t
	}

	var kindPtr *string
	if kind.Valid {
		kindPtr = &kind.String
	}
	return finishAlertScan(a, []byte(itemsJSON), kindPtr)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func checkResult(res sql.Result, err error, op, id string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	return nil
}
