package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/holocron/internal/db"
	"github.com/atinyakov/holocron/internal/models"
)

// PostgresPlanetRepository stores planets in PostgreSQL.
type PostgresPlanetRepository struct {
	DB *sql.DB
}

// NewPostgresPlanetRepository creates a planet repository on top of db.
func NewPostgresPlanetRepository(db *sql.DB) *PostgresPlanetRepository {
	return &PostgresPlanetRepository{DB: db}
}

const selectPlanet = `SELECT id, name, population FROM planets`

func scanPlanet(s scanner) (*models.Planet, error) {
	var p models.Planet
	if err := s.Scan(&p.ID, &p.Name, &p.Population); err != nil {
		return nil, err
	}
	return &p, nil
}

func getPlanet(ctx context.Context, q db.DBTX, id int64, lock bool) (*models.Planet, error) {
	query := selectPlanet + ` WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	p, err := scanPlanet(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("planet", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get planet: %w", err)
	}
	return p, nil
}

// GetByID returns the planet with the given id or models.ErrNotFound.
func (r *PostgresPlanetRepository) GetByID(ctx context.Context, id int64) (*models.Planet, error) {
	return getPlanet(ctx, r.DB, id, false)
}

// List returns all planets in creation order.
func (r *PostgresPlanetRepository) List(ctx context.Context) ([]models.Planet, error) {
	rows, err := r.DB.QueryContext(ctx, selectPlanet+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list planets: %w", err)
	}
	defer rows.Close()

	planets := make([]models.Planet, 0)
	for rows.Next() {
		p, err := scanPlanet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		planets = append(planets, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list planets: %w", err)
	}
	return planets, nil
}

// Create inserts p and returns it with its assigned id.
func (r *PostgresPlanetRepository) Create(ctx context.Context, p models.Planet) (*models.Planet, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO planets (name, population) VALUES ($1, $2) RETURNING id
	`, p.Name, p.Population).Scan(&p.ID)
	if err != nil {
		return nil, classify(err, "create planet", models.ErrReferential)
	}
	return &p, nil
}

// Update overwrites the supplied fields of planet id within one transaction.
func (r *PostgresPlanetRepository) Update(ctx context.Context, id int64, fields models.PlanetFields) (*models.Planet, error) {
	var updated *models.Planet
	err := db.WithTx(ctx, r.DB, func(ctx context.Context, tx db.DBTX) error {
		p, err := getPlanet(ctx, tx, id, true)
		if err != nil {
			return err
		}
		fields.Apply(p)

		_, err = tx.ExecContext(ctx, `
			UPDATE planets SET name = $1, population = $2 WHERE id = $3
		`, p.Name, p.Population, id)
		if err != nil {
			return classify(err, "update planet", models.ErrReferential)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes planet id. A planet that is home to characters or is a
// favorite of some user is kept and models.ErrConflict is returned.
func (r *PostgresPlanetRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "planets", "planet", id)
}
