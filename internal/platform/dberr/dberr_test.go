// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelflix/internal/platform/apperr"
	"github.com/taibuivan/reelflix/internal/platform/dberr"
)

/*
TestWrap classifies driver errors into application errors.
*/
func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "User", "find"))

	t.Run("no_rows", func(t *testing.T) {
		err := dberr.Wrap(pgx.ErrNoRows, "User", "find")
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("unique_email", func(t *testing.T) {
		violation := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "account_email_key"}
		err := dberr.Wrap(violation, "User", "create")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeConflict, ae.Code)
		assert.Equal(t, "Email already exists", ae.Message)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("unique_unknown_constraint", func(t *testing.T) {
		violation := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "something_else"}
		err := dberr.Wrap(violation, "User", "create")
		assert.Equal(t, "User already exists", apperr.As(err).Message)
	})

	t.Run("other", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := dberr.Wrap(cause, "User", "create")

		assert.False(t, apperr.IsAppError(err))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "create_failed")
	})
}
