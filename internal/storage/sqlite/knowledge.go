package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/heroguide/internal/core"
)

// KnowledgeRepo keeps the hero table in SQLite. Counters are stored as a JSON array.
type KnowledgeRepo struct {
	db *sql.DB
}

func NewKnowledgeRepo(db *sql.DB) *KnowledgeRepo {
	return &KnowledgeRepo{db: db}
}

func (r *KnowledgeRepo) Load(ctx context.Context) (map[string]core.Hero, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, role, counters, tips FROM heroes`)
	if err != nil {
		return nil, fmt.Errorf("failed to query heroes: %w", err)
	}
	defer rows.Close()

	heroes := make(map[string]core.Hero)
	for rows.Next() {
		var h core.Hero
		var counters string
		if err := rows.Scan(&h.Name, &h.Role, &counters, &h.Tips); err != nil {
			return nil, fmt.Errorf("failed to scan hero: %w", err)
		}
		if err := json.Unmarshal([]byte(counters), &h.Counters); err != nil {
			return nil, fmt.Errorf("failed to decode counters of %s: %w", h.Name, err)
		}
		heroes[h.Name] = h
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate heroes: %w", err)
	}
	return heroes, nil
}

// Save replaces the stored table with heroes in one transaction.
func (r *KnowledgeRepo) Save(ctx context.Context, heroes map[string]core.Hero) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM heroes`); err != nil {
		return fmt.Errorf("failed to clear heroes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO heroes (name, role, counters, tips, updated_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for name, h := range heroes {
		counters := h.Counters
		if counters == nil {
			counters = []string{}
		}
		blob, err := json.Marshal(counters)
		if err != nil {
			return fmt.Errorf("failed to encode counters of %s: %w", name, err)
		}
		if _, err := stmt.ExecContext(ctx, name, h.Role, string(blob), h.Tips); err != nil {
			return fmt.Errorf("failed to insert hero %s: %w", name, err)
		}
	}

	return tx.Commit()
}
