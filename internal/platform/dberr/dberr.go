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

	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// resource names the entity for NotFound messages; action tags the cause for logs.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	// 1. Already classified (e.g. returned from inside a transaction callback)
	if apperr.IsAppError(err) {
		return err
	}

	// 2. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 3. Constraint violations carry a SQLSTATE
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(resource + " already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.NotFound(resource)
		case pgerrcode.CheckViolation, pgerrcode.InvalidTextRepresentation:
			return apperr.ValidationError("Invalid " + resource + " data")
		}
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
