package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/holocron/internal/db"
	"github.com/atinyakov/holocron/internal/models"
)

// PostgresVehicleRepository stores vehicles in PostgreSQL.
type PostgresVehicleRepository struct {
	DB *sql.DB
}

// NewPostgresVehicleRepository creates a vehicle repository on top of db.
func NewPostgresVehicleRepository(db *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{DB: db}
}

const selectVehicle = `SELECT id, name, type FROM vehicles`

func scanVehicle(s scanner) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := s.Scan(&v.ID, &v.Name, &v.Type); err != nil {
		return nil, err
	}
	return &v, nil
}

func getVehicle(ctx context.Context, q db.DBTX, id int64, lock bool) (*models.Vehicle, error) {
	query := selectVehicle + ` WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	v, err := scanVehicle(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("vehicle", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

// GetByID returns the vehicle with the given id or models.ErrNotFound.
func (r *PostgresVehicleRepository) GetByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	return getVehicle(ctx, r.DB, id, false)
}

// List returns all vehicles in creation order.
func (r *PostgresVehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx, selectVehicle+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]models.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		vehicles = append(vehicles, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

// Create inserts v and returns it with its assigned id.
func (r *PostgresVehicleRepository) Create(ctx context.Context, v models.Vehicle) (*models.Vehicle, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO vehicles (name, type) VALUES ($1, $2) RETURNING id
	`, v.Name, v.Type).Scan(&v.ID)
	if err != nil {
		return nil, classify(err, "create vehicle", models.ErrReferential)
	}
	return &v, nil
}

// Update overwrites the supplied fields of vehicle id within one transaction.
func (r *PostgresVehicleRepository) Update(ctx context.Context, id int64, fields models.VehicleFields) (*models.Vehicle, error) {
	var updated *models.Vehicle
	err := db.WithTx(ctx, r.DB, func(ctx context.Context, tx db.DBTX) error {
		v, err := getVehicle(ctx, tx, id, true)
		if err != nil {
			return err
		}
		fields.Apply(v)

		_, err = tx.ExecContext(ctx, `
			UPDATE vehicles SET name = $1, type = $2 WHERE id = $3
		`, v.Name, v.Type, id)
		if err != nil {
			return classify(err, "update vehicle", models.ErrReferential)
		}
		updated = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes vehicle id unless it is somebody's favorite.
func (r *PostgresVehicleRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "vehicles", "vehicle", id)
}
