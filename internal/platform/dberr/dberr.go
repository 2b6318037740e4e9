// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/reelflix/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Mapping
//   - pgx.ErrNoRows          -> NOT_FOUND for the named resource
//   - SQLSTATE 23505 (unique) -> CONFLICT naming the violated column when known
//   - anything else           -> the original error wrapped with the action name
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Unique constraint violations are client-fixable conflicts
	if IsUniqueViolation(err) {
		conflict := apperr.Conflict(resource + " already exists")
		if column := ConstraintColumn(err); column != "" {
			conflict = apperr.Conflict(column + " already exists")
		}
		conflict.Cause = err
		return conflict
	}

	// 3. Unknown query errors keep their cause and surface as 500 upstream
	return fmt.Errorf("%s_failed: %w", action, err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// constraintColumns maps named UNIQUE constraints to client-facing field names.
var constraintColumns = map[string]string{
	"account_email_key":    "Email",
	"account_username_key": "Username",
}

// ConstraintColumn returns the field guarded by the violated constraint, or "".
func ConstraintColumn(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}
	return constraintColumns[pgErr.ConstraintName]
}
