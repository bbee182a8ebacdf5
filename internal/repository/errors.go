// Package repository provides PostgreSQL persistence for users, planets,
// characters, vehicles and favorites.
package repository

import (
	"errors"
	"fmt"

	"github.com/atinyakov/holocron/internal/models"
	"github.com/lib/pq"
)

// constraintOneTarget is the CHECK guarding the favorite target columns.
const constraintOneTarget = "favorites_one_target"

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// classify translates PostgreSQL constraint violations into model errors.
// onForeignKey is returned for foreign_key_violation: ErrReferential when
// writing a reference, ErrConflict when deleting a referenced row.
func classify(err error, op string, onForeignKey error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch pqErr.Code.Name() {
	case "unique_violation":
		return fmt.Errorf("%w: %s: duplicate value violates %s", models.ErrConflict, op, pqErr.Constraint)
	case "foreign_key_violation":
		return fmt.Errorf("%w: %s: %s", onForeignKey, op, pqErr.Detail)
	case "check_violation":
		if pqErr.Constraint == constraintOneTarget {
			return fmt.Errorf("%w: %s: favorite must reference exactly one target", models.ErrConflict, op)
		}
		return fmt.Errorf("%w: %s: violates %s", models.ErrValidation, op, pqErr.Constraint)
	case "not_null_violation", "string_data_right_truncation":
		return fmt.Errorf("%w: %s: %s", models.ErrValidation, op, pqErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%w: %s %d", models.ErrNotFound, entity, id)
}
