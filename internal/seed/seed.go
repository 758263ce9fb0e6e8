package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/Simplici0/preventivatore3d/internal/pricing"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureConfiguration(ctx, tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// ensureConfiguration inserts the default rates, or completes a stored
// configuration with rates and groups added since it was written.
func ensureConfiguration(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	var payload string
	err := tx.QueryRowContext(ctx, `SELECT payload_json FROM configuration WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		def, err := json.Marshal(pricing.DefaultConfiguration())
		if err != nil {
			return fmt.Errorf("encode default configuration: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO configuration (id, payload_json) VALUES (1, ?)`, string(def)); err != nil {
			return fmt.Errorf("insert default configuration: %w", err)
		}
		stats.Inserts++
		return nil
	}
	if err != nil {
		return fmt.Errorf("check configuration existence: %w", err)
	}

	var stored pricing.Configuration
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		return fmt.Errorf("decode stored configuration: %w", err)
	}
	completed := stored.WithDefaults()
	if reflect.DeepEqual(stored, completed) {
		return nil
	}

	out, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("encode completed configuration: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE configuration
		SET payload_json = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, string(out)); err != nil {
		return fmt.Errorf("update configuration: %w", err)
	}
	stats.Updates++
	return nil
}
