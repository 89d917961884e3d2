package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"habitquest/internal/domain"
)

// Store persists profile snapshots and per-day history rows.
type Store struct {
	db *sql.DB
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProfile writes the full snapshot in one transaction. The profile body
// and the history rows are stored separately; history is append-heavy and
// replacing it wholesale on every flush would rewrite the largest part of
// the snapshot for no reason.
func (s *Store) SaveProfile(ctx context.Context, p *domain.Profile) error {
	body := p.Clone()
	history := body.History
	body.History = nil

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding profile snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting snapshot transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO profile_snapshots (id, data, updated_at) VALUES (?, ?, ?)`,
		p.UserID, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting profile snapshot: %w", err)
	}

	for _, e := range history {
		entry, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encoding history entry %s: %w", e.Date, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO day_history (user_id, date, day_number, data) VALUES (?, ?, ?, ?)`,
			p.UserID, e.Date, e.DayNumber, string(entry))
		if err != nil {
			return fmt.Errorf("upserting history entry %s: %w", e.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	committed = true
	return nil
}

// LoadProfile reads the snapshot for userID and reattaches its history,
// oldest day first. Returns ErrNotFound when no snapshot exists.
func (s *Store) LoadProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM profile_snapshots WHERE id = ?`, userID).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("reading profile snapshot: %w", err)
	}

	p := domain.NewProfile(userID)
	if err := json.Unmarshal([]byte(data), p); err != nil {
		return nil, fmt.Errorf("decoding profile snapshot: %w", err)
	}
	p.UserID = userID

	history, err := s.loadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.History = history
	if p.Achievements == nil {
		p.Achievements = make(map[domain.Achievement]bool)
	}
	return p, nil
}

// History returns the stored day history for userID, oldest first.
func (s *Store) History(ctx context.Context, userID string) ([]domain.DayHistoryEntry, error) {
	return s.loadHistory(ctx, userID)
}

func (s *Store) loadHistory(ctx context.Context, userID string) ([]domain.DayHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM day_history WHERE user_id = ? ORDER BY date`, userID)
	if err != nil {
		return nil, fmt.Errorf("reading day history: %w", err)
	}
	defer rows.Close()

	var history []domain.DayHistoryEntry
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		var e domain.DayHistoryEntry
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			return nil, fmt.Errorf("decoding history row: %w", err)
		}
		history = append(history, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}
	return history, nil
}

// Clear removes the snapshot and all history for userID. History rows are
// deleted explicitly rather than left to the FK cascade, which only fires on
// connections that have the foreign_keys pragma active; an orphaned history
// row would otherwise be re-attached to the next profile saved under this id.
func (s *Store) Clear(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting clear transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM day_history WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting day history: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM profile_snapshots WHERE id = ?`, userID); err != nil {
		return fmt.Errorf("deleting profile snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing clear: %w", err)
	}
	committed = true
	return nil
}
