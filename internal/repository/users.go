package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/holocron/internal/db"
	"github.com/atinyakov/holocron/internal/models"
)

// PostgresUserRepository stores users in PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresUserRepository creates a user repository on top of db.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

const selectUser = `SELECT id, email, password, is_active FROM users`

func scanUser(s scanner) (*models.User, error) {
	var u models.User
	if err := s.Scan(&u.ID, &u.Email, &u.Password, &u.IsActive); err != nil {
		return nil, err
	}
	return &u, nil
}

func getUser(ctx context.Context, q db.DBTX, id int64, lock bool) (*models.User, error) {
	query := selectUser + ` WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	u, err := scanUser(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByID returns the user with the given id or models.ErrNotFound.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return getUser(ctx, r.DB, id, false)
}

// List returns all users in creation order.
func (r *PostgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, selectUser+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create inserts u and returns it with its assigned id.
func (r *PostgresUserRepository) Create(ctx context.Context, u models.User) (*models.User, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (email, password, is_active) VALUES ($1, $2, $3) RETURNING id
	`, u.Email, u.Password, u.IsActive).Scan(&u.ID)
	if err != nil {
		return nil, classify(err, "create user", models.ErrReferential)
	}
	return &u, nil
}

// Update overwrites the supplied fields of user id within one transaction.
func (r *PostgresUserRepository) Update(ctx context.Context, id int64, fields models.UserFields) (*models.User, error) {
	var updated *models.User
	err := db.WithTx(ctx, r.DB, func(ctx context.Context, tx db.DBTX) error {
		u, err := getUser(ctx, tx, id, true)
		if err != nil {
			return err
		}
		fields.Apply(u)

		_, err = tx.ExecContext(ctx, `
			UPDATE users SET email = $1, password = $2, is_active = $3 WHERE id = $4
		`, u.Email, u.Password, u.IsActive, id)
		if err != nil {
			return classify(err, "update user", models.ErrReferential)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes user id. Users that still own favorites are kept and
// models.ErrConflict is returned.
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "users", "user", id)
}

// deleteByID removes one row of table, reporting a missing row as
// ErrNotFound and a still-referenced row as ErrConflict.
func deleteByID(ctx context.Context, q db.DBTX, table, entity string, id int64) error {
	res, err := q.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete "+entity, models.ErrConflict)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", entity, err)
	}
	if n == 0 {
		return notFound(entity, id)
	}
	return nil
}
