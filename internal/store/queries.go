package store

// SQL query constants organized by entity.
// PostgresStore methods reference these constants; sqlite.go keeps its own dialect.

const alertColumns = `
	id::text, user_id, state, critical_items, last_notified_at,
	snoozed_until, snooze_kind, snooze_count, created_at, updated_at`

// Stock alert queries.
const (
	queryGetActiveAlert = `SELECT` + alertColumns + `
		FROM get_active_stock_alert($1)`

	queryGetAlert = `SELECT` + alertColumns + `
		FROM stock_alerts
		WHERE id = $1`

	queryCreateAlert = `
		INSERT INTO stock_alerts (
			user_id, state, critical_items, last_notified_at, snooze_count
		) VALUES (
			@user_id, @state, @critical_items, @last_notified_at, 0
		)
		RETURNING id::text, created_at, updated_at`

	queryReactivateAlert = `
		UPDATE stock_alerts SET
			state = 'active',
			critical_items = $2,
			last_notified_at = $3,
			snoozed_until = NULL,
			snooze_kind = NULL,
			updated_at = now()
		WHERE id = $1`

	queryUpdateAlertItems = `
		UPDATE stock_alerts SET
			critical_items = $2,
			updated_at = now()
		WHERE id = $1`

	querySnoozeAlert = `
		UPDATE stock_alerts SET
			state = 'snoozed',
			snoozed_until = $2,
			snooze_kind = $3,
			snooze_count = $4,
			updated_at = now()
		WHERE id = $1 AND state <> 'deactivated'`

	queryDeactivateAlert = `
		UPDATE stock_alerts SET
			state = 'deactivated',
			updated_at = now()
		WHERE id = $1`
)

// Stock queries.
const (
	queryListStock = `
		SELECT id, name, available_quantity::float8, unit
		FROM stock_items
		WHERE user_id = $1
		ORDER BY name, id`

	queryUpsertStock = `
		INSERT INTO stock_items (id, user_id, name, available_quantity, unit, updated_at)
		VALUES (@id, @user_id, @name, @available_quantity, @unit, now())
		ON CONFLICT (user_id, id) DO UPDATE SET
			name = EXCLUDED.name,
			available_quantity = EXCLUDED.available_quantity,
			unit = EXCLUDED.unit,
			updated_at = now()`
)

// Preference queries.
const (
	queryGetSoundEnabled = `
		SELECT sound_enabled
		FROM user_preferences
		WHERE user_id = $1`

	querySetSoundEnabled = `
		INSERT INTO user_preferences (user_id, sound_enabled, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET
			sound_enabled = EXCLUDED.sound_enabled,
			updated_at = now()`
)
