// Copyright 2023 Canonical Ltd.

package db

import (
	"github.com/jackc/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/canonical/rhub/internal/errors"
)

// postgresql error codes from
// https://www.postgresql.org/docs/11/errcodes-appendix.html.
const pgUniqueViolation = "23505"

// dbError translates an error returned from the database into the error
// form understood by the rhub system.
func dbError(err error) error {
	code := errors.Code(errors.ErrorCode(err))

	if err == gorm.ErrRecordNotFound {
		code = errors.CodeNotFound
	}

	if e, ok := err.(*pgconn.PgError); ok {
		if e.Code == pgUniqueViolation {
			code = errors.CodeAlreadyExists
		}
	}

	if e, ok := err.(sqlite3.Error); ok {
		if e.ExtendedCode == sqlite3.ErrConstraintUnique || e.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			code = errors.CodeAlreadyExists
		}
	}

	return errors.E(code, err)
}
