package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

// Postgres SQLSTATE codes the API distinguishes.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
	pqNotNullViolation    = "23502"
	pqInvalidText         = "22P02"
)

// mapError translates driver errors into AppErrors. resource names the row
// being read or written.
func mapError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			if strings.Contains(pqErr.Constraint, "email") {
				return apperrors.Conflict("email already in use", err)
			}
			return apperrors.Conflict(fmt.Sprintf("%s already exists", resource), err)
		case pqForeignKeyViolation:
			// Deleting a row that is still referenced.
			if strings.HasPrefix(pqErr.Message, "update or delete") {
				return apperrors.Conflict(fmt.Sprintf("%s is still in use", resource), err)
			}
			return apperrors.NotFound(referencedResource(pqErr.Constraint, resource), err)
		case pqCheckViolation, pqNotNullViolation, pqInvalidText:
			return apperrors.BadRequest(fmt.Sprintf("invalid %s", resource), err)
		}
	}

	// Timeouts, dropped connections and anything unrecognised.
	return apperrors.Unavailable(err)
}

// referencedResource guesses the missing parent from a constraint name such
// as "appointments_member_id_fkey".
func referencedResource(constraint, fallback string) string {
	switch {
	case strings.Contains(constraint, "member_id"):
		return "member"
	case strings.Contains(constraint, "service_id"):
		return "service"
	case strings.Contains(constraint, "staff_id"):
		return "staff"
	}
	return fallback
}

// expectOne turns a zero-row update or delete into a not-found error.
func expectOne(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, resource)
	}
	if n == 0 {
		return apperrors.NotFound(resource, sql.ErrNoRows)
	}
	return nil
}
