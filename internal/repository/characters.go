package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/holocron/internal/db"
	"github.com/atinyakov/holocron/internal/models"
)

// PostgresCharacterRepository stores characters in PostgreSQL. Every read
// resolves the home planet with an explicit join.
type PostgresCharacterRepository struct {
	DB *sql.DB
}

// NewPostgresCharacterRepository creates a character repository on top of db.
func NewPostgresCharacterRepository(db *sql.DB) *PostgresCharacterRepository {
	return &PostgresCharacterRepository{DB: db}
}

const selectCharacter = `
	SELECT c.id, c.name, c.height, c.mass, c.planet_id, p.name, p.population
	FROM characters c
	JOIN planets p ON p.id = c.planet_id`

func scanCharacter(s scanner) (*models.Character, error) {
	var (
		c models.Character
		p models.Planet
	)
	if err := s.Scan(&c.ID, &c.Name, &c.Height, &c.Mass, &c.PlanetID, &p.Name, &p.Population); err != nil {
		return nil, err
	}
	p.ID = c.PlanetID
	c.Planet = &p
	return &c, nil
}

func getCharacter(ctx context.Context, q db.DBTX, id int64, lock bool) (*models.Character, error) {
	query := selectCharacter + ` WHERE c.id = $1`
	if lock {
		query += ` FOR UPDATE OF c`
	}
	c, err := scanCharacter(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("character", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get character: %w", err)
	}
	return c, nil
}

// GetByID returns the character with the given id and its planet, or
// models.ErrNotFound.
func (r *PostgresCharacterRepository) GetByID(ctx context.Context, id int64) (*models.Character, error) {
	return getCharacter(ctx, r.DB, id, false)
}

// List returns all characters in creation order.
func (r *PostgresCharacterRepository) List(ctx context.Context) ([]models.Character, error) {
	rows, err := r.DB.QueryContext(ctx, selectCharacter+` ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer rows.Close()

	characters := make([]models.Character, 0)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		characters = append(characters, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	return characters, nil
}

// Create inserts c and returns it with its id and resolved planet. An
// unknown planet yields models.ErrReferential.
func (r *PostgresCharacterRepository) Create(ctx context.Context, c models.Character) (*models.Character, error) {
	var created *models.Character
	err := db.WithTx(ctx, r.DB, func(ctx context.Context, tx db.DBTX) error {
		var id int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO characters (name, height, mass, planet_id) VALUES ($1, $2, $3, $4) RETURNING id
		`, c.Name, c.Height, c.Mass, c.PlanetID).Scan(&id)
		if err != nil {
			return classify(err, "create character", models.ErrReferential)
		}

		created, err = getCharacter(ctx, tx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update overwrites the supplied fields of character id within one
// transaction and returns it with its (possibly new) planet.
func (r *PostgresCharacterRepository) Update(ctx context.Context, id int64, fields models.CharacterFields) (*models.Character, error) {
	var updated *models.Character
	err := db.WithTx(ctx, r.DB, func(ctx context.Context, tx db.DBTX) error {
		c, err := getCharacter(ctx, tx, id, true)
		if err != nil {
			return err
		}
		fields.Apply(c)

		_, err = tx.ExecContext(ctx, `
			UPDATE characters SET name = $1, height = $2, mass = $3, planet_id = $4 WHERE id = $5
		`, c.Name, c.Height, c.Mass, c.PlanetID, id)
		if err != nil {
			return classify(err, "update character", models.ErrReferential)
		}

		updated, err = getCharacter(ctx, tx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes character id unless it is somebody's favorite.
func (r *PostgresCharacterRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "characters", "character", id)
}
