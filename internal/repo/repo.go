// Package repo implements the typed entity repositories. Every read and
// write goes through the persistence gateway; no repository touches the
// database handle directly, so the busy-retry policy stays in one place.
package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"selectiq/internal/apperr"
)

// translate maps storage errors to the boundary taxonomy. Raw gorm or
// driver errors never leave this package.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what)
	}
	return apperr.Internal("storage failure on "+what, err)
}

// isDupKey detects unique-constraint violations by message so the check is
// portable across sqlite, postgres and mysql.
func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "constraint failed")
}
