// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/reelflix/internal/platform/apperr"
	"github.com/taibuivan/reelflix/internal/platform/database/schema"
	"github.com/taibuivan/reelflix/internal/platform/dberr"
	"github.com/taibuivan/reelflix/internal/platform/postgres"
)

// # History Repository

// PostgresHistoryRepository implements HistoryRepository using pgx.
type PostgresHistoryRepository struct {
	db postgres.Querier
}

// NewHistoryRepository creates a new PostgreSQL implementation of HistoryRepository.
func NewHistoryRepository(db postgres.Querier) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

var (
	insertHistory = fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.UserSearchHistory.Table,
		strings.Join(schema.UserSearchHistory.Columns(), ", "),
	)

	listHistory = fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2`,
		strings.Join(schema.UserSearchHistory.Columns(), ", "),
		schema.UserSearchHistory.Table,
		schema.UserSearchHistory.AccountID,
		schema.UserSearchHistory.CreatedAt,
	)

	deleteHistory = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.UserSearchHistory.Table,
		schema.UserSearchHistory.ID,
		schema.UserSearchHistory.AccountID,
	)
)

/*
Append persists a search history row.

Parameters:
  - context: context.Context
  - entry: *HistoryEntry

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresHistoryRepository) Append(context context.Context, entry *HistoryEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := repository.db.Exec(context, insertHistory,
		entry.ID,
		entry.UserID,
		entry.Image,
		entry.Title,
		entry.SearchType,
		entry.CreatedAt,
	)

	return dberr.Wrap(err, "Search history", "postgres_history_repo_append")
}

/*
ListByUser returns up to limit entries for the user, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - limit: int

Returns:
  - []HistoryEntry: Hydrated entries
  - error: Database errors
*/
func (repository *PostgresHistoryRepository) ListByUser(context context.Context, userID string, limit int) ([]HistoryEntry, error) {
	rows, err := repository.db.Query(context, listHistory, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "Search history", "postgres_history_repo_list")
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (HistoryEntry, error) {
		var entry HistoryEntry
		err := row.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Image,
			&entry.Title,
			&entry.SearchType,
			&entry.CreatedAt,
		)
		return entry, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Search history", "postgres_history_repo_list")
	}

	return entries, nil
}

/*
Delete removes an entry only if it belongs to the user.

Parameters:
  - context: context.Context
  - userID: string
  - id: string

Returns:
  - error: apperr.NotFound when nothing was deleted
*/
func (repository *PostgresHistoryRepository) Delete(context context.Context, userID, id string) error {
	tag, err := repository.db.Exec(context, deleteHistory, id, userID)
	if err != nil {
		return dberr.Wrap(err, "Search history", "postgres_history_repo_delete")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Search history entry")
	}

	return nil
}
