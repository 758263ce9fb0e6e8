// Package store keeps configuration, saved quotes and the item library in
// the local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/preventivatore3d/internal/pricing"
	"github.com/Simplici0/preventivatore3d/internal/quote"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

const timestampLayout = "2006-01-02 15:04:05"

// Store wraps the SQLite handle.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// New returns a Store over db.
func New(db *sql.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log.Named("store")}
}

// QuoteSummary is one row of the saved quotes list.
type QuoteSummary struct {
	QuoteID    string       `json:"quoteId"`
	Client     string       `json:"client"`
	Status     quote.Status `json:"status"`
	Date       string       `json:"date"`
	ItemsCount int          `json:"itemsCount"`
	Total      float64      `json:"total"`
	CreatedAt  string       `json:"createdAt"`
}

// GetConfiguration returns the stored rates merged over the defaults. The
// defaults alone are returned when nothing has been stored yet.
func (s *Store) GetConfiguration(ctx context.Context) (pricing.Configuration, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload_json FROM configuration WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.DefaultConfiguration(), nil
	}
	if err != nil {
		return pricing.Configuration{}, fmt.Errorf("query configuration: %w", err)
	}

	cfg := pricing.DefaultConfiguration()
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		return pricing.Configuration{}, fmt.Errorf("decode configuration: %w", err)
	}
	return cfg, nil
}

// SaveConfiguration replaces the stored rates.
func (s *Store) SaveConfiguration(ctx context.Context, cfg pricing.Configuration) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO configuration (id, payload_json, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			payload_json = excluded.payload_json,
			updated_at = CURRENT_TIMESTAMP
	`, string(payload))
	if err != nil {
		return fmt.Errorf("upsert configuration: %w", err)
	}
	return nil
}

// SaveQuote inserts snap, or replaces the quote with the same number.
func (s *Store) SaveQuote(ctx context.Context, snap quote.Snapshot) error {
	stateJSON, err := json.Marshal(snap.State)
	if err != nil {
		return fmt.Errorf("encode quote state: %w", err)
	}
	sumsJSON, err := json.Marshal(snap.Sums)
	if err != nil {
		return fmt.Errorf("encode quote sums: %w", err)
	}

	createdAt := time.Now().UTC()
	if t, err := time.Parse(time.RFC3339, snap.State.Order.SavedAt); err == nil {
		createdAt = t.UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (quote_id, client, status, date_label, items_count, total, state_json, sums_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(quote_id) DO UPDATE SET
			client = excluded.client,
			status = excluded.status,
			date_label = excluded.date_label,
			items_count = excluded.items_count,
			total = excluded.total,
			state_json = excluded.state_json,
			sums_json = excluded.sums_json,
			updated_at = CURRENT_TIMESTAMP
	`,
		snap.QuoteID,
		snap.Client,
		string(snap.Status),
		snap.Date,
		snap.ItemsCount,
		snap.Total,
		string(stateJSON),
		string(sumsJSON),
		createdAt.Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert quote %s: %w", snap.QuoteID, err)
	}

	s.log.Debug("quote saved", zap.String("quote_id", snap.QuoteID), zap.Float64("total", snap.Total))
	return nil
}

// GetQuote loads one snapshot by quote number.
func (s *Store) GetQuote(ctx context.Context, quoteID string) (quote.Snapshot, error) {
	var (
		snap      quote.Snapshot
		status    string
		stateJSON string
		sumsJSON  string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT quote_id, client, status, date_label, items_count, total, state_json, sums_json
		FROM quotes
		WHERE quote_id = ?
	`, quoteID).Scan(
		&snap.QuoteID,
		&snap.Client,
		&status,
		&snap.Date,
		&snap.ItemsCount,
		&snap.Total,
		&stateJSON,
		&sumsJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return quote.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return quote.Snapshot{}, fmt.Errorf("query quote %s: %w", quoteID, err)
	}
	snap.Status = quote.Status(status)

	snap.State = quote.NewState()
	if err := json.Unmarshal([]byte(stateJSON), &snap.State); err != nil {
		return quote.Snapshot{}, fmt.Errorf("decode quote state: %w", err)
	}
	if err := json.Unmarshal([]byte(sumsJSON), &snap.Sums); err != nil {
		return quote.Snapshot{}, fmt.Errorf("decode quote sums: %w", err)
	}

	return snap, nil
}

// ListQuotes returns saved quotes newest first, filtered by quote number or
// client when query is not empty. Rows saved without a total are priced
// again from their stored state.
func (s *Store) ListQuotes(ctx context.Context, query string) ([]QuoteSummary, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT quote_id, client, status, date_label, items_count, total, state_json, created_at
		FROM quotes
		WHERE (? = '' OR quote_id LIKE ? OR client LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]QuoteSummary, 0)
	for rows.Next() {
		var (
			item      QuoteSummary
			status    string
			stateJSON string
		)
		if err := rows.Scan(&item.QuoteID, &item.Client, &status, &item.Date, &item.ItemsCount, &item.Total, &stateJSON, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		item.Status = quote.Status(status)
		if item.Total == 0 {
			item.Total = s.recomputeTotal(item.QuoteID, stateJSON)
		}
		quotes = append(quotes, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}

func (s *Store) recomputeTotal(quoteID, stateJSON string) float64 {
	state := quote.NewState()
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		s.log.Warn("unreadable quote state", zap.String("quote_id", quoteID), zap.Error(err))
		return 0
	}
	return pricing.Round2(state.Quote().Sums.Total)
}

// DeleteQuote removes a saved quote.
func (s *Store) DeleteQuote(ctx context.Context, quoteID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE quote_id = ?`, quoteID)
	if err != nil {
		return fmt.Errorf("delete quote %s: %w", quoteID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete quote %s: %w", quoteID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveLibraryItem stores a reusable item.
func (s *Store) SaveLibraryItem(ctx context.Context, item quote.LibraryItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode library item: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO library_items (id, name, payload_json)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, payload_json = excluded.payload_json
	`, item.ID, item.Name, string(payload)); err != nil {
		return fmt.Errorf("insert library item: %w", err)
	}
	return nil
}

// ListLibraryItems returns the saved items, most recent first.
func (s *Store) ListLibraryItems(ctx context.Context) ([]quote.LibraryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload_json
		FROM library_items
		ORDER BY datetime(created_at) DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query library items: %w", err)
	}
	defer rows.Close()

	items := make([]quote.LibraryItem, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan library item: %w", err)
		}
		var item quote.LibraryItem
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			s.log.Warn("skipping unreadable library item", zap.Error(err))
			continue
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate library items: %w", err)
	}

	return items, nil
}
