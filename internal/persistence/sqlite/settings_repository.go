package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/persistence"
)

// settingsSlot is the fixed key of the single persisted settings record.
const settingsSlot = "markdays-settings"

// SettingsRepository implements persistence.SettingsRepository using SQLite.
type SettingsRepository struct {
	helper *QueryHelper
	mapper *ErrorMapper
	now    func() time.Time
}

// NewSettingsRepository creates a SQLite settings repository. A nil clock
// falls back to time.Now.
func NewSettingsRepository(pool *ConnectionPool, now func() time.Time) *SettingsRepository {
	if now == nil {
		now = time.Now
	}
	return &SettingsRepository{
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
		now:    now,
	}
}

// SaveSettings overwrites the slot with the JSON-encoded settings.
func (r *SettingsRepository) SaveSettings(ctx context.Context, settings persistence.StoredSettings) error {
	settings.UpdatedAt = r.now().UTC()

	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("sqlite: encode settings: %w", err)
	}

	query := `
		INSERT INTO settings_slot (slot, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`
	if _, err := r.helper.Exec(ctx, query, settingsSlot, string(payload), settings.UpdatedAt.Format(time.RFC3339)); err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// LoadSettings returns the slot contents. A missing or malformed record
// yields persistence.ErrNotFound so callers degrade to defaults.
func (r *SettingsRepository) LoadSettings(ctx context.Context) (persistence.StoredSettings, error) {
	query := `SELECT payload FROM settings_slot WHERE slot = ?`

	var payload string
	err := r.helper.QueryRow(ctx, query, settingsSlot).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.StoredSettings{}, persistence.ErrNotFound
		}
		return persistence.StoredSettings{}, r.mapper.MapError(err)
	}

	var settings persistence.StoredSettings
	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		// Malformed payloads degrade to defaults rather than failing.
		return persistence.StoredSettings{}, persistence.ErrNotFound
	}
	return settings, nil
}

// ClearSettings empties the slot.
func (r *SettingsRepository) ClearSettings(ctx context.Context) error {
	if _, err := r.helper.Exec(ctx, `DELETE FROM settings_slot WHERE slot = ?`, settingsSlot); err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}
