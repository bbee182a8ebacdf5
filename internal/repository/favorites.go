package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/holocron/internal/db"
	"github.com/atinyakov/holocron/internal/models"
)

// PostgresFavoriteRepository stores favorites in PostgreSQL. A favorite
// target is persisted as three nullable foreign keys of which exactly one
// is set; reads join the owning user and the populated target.
type PostgresFavoriteRepository struct {
	DB *sql.DB
}

// NewPostgresFavoriteRepository creates a favorite repository on top of db.
func NewPostgresFavoriteRepository(db *sql.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{DB: db}
}

var targetTables = map[models.TargetType]string{
	models.TargetPlanet:    "planets",
	models.TargetCharacter: "characters",
	models.TargetVehicle:   "vehicles",
}

const selectFavorite = `
	SELECT f.id, f.user_id, f.planet_id, f.character_id, f.vehicle_id,
	       u.email, u.is_active,
	       p.name, p.population,
	       c.name, c.height, c.mass, c.planet_id, cp.name, cp.population,
	       v.name, v.type
	FROM favorites f
	JOIN users u ON u.id = f.user_id
	LEFT JOIN planets p ON p.id = f.planet_id
	LEFT JOIN characters c ON c.id = f.character_id
	LEFT JOIN planets cp ON cp.id = c.planet_id
	LEFT JOIN vehicles v ON v.id = f.vehicle_id`

func scanFavorite(s scanner) (*models.ResolvedFavorite, error) {
	var (
		f                                         models.ResolvedFavorite
		u                                         models.User
		planetID, characterID, vehicleID          *int64
		planetName, characterName, homeName       *string
		vehicleName, vehicleType                  *string
		population, height, mass, homeID, homePop *int64
	)
	err := s.Scan(
		&f.ID, &f.UserID, &planetID, &characterID, &vehicleID,
		&u.Email, &u.IsActive,
		&planetName, &population,
		&characterName, &height, &mass, &homeID, &homeName, &homePop,
		&vehicleName, &vehicleType,
	)
	if err != nil {
		return nil, err
	}

	target, err := models.TargetFromColumns(planetID, characterID, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("favorite %d: %w", f.ID, err)
	}
	f.Target = target
	u.ID = f.UserID
	f.User = &u

	switch target.Type() {
	case models.TargetPlanet:
		if planetName != nil {
			f.Planet = &models.Planet{ID: target.ID(), Name: *planetName, Population: population}
		}
	case models.TargetCharacter:
		if characterName != nil && homeID != nil && homeName != nil {
			f.Character = &models.Character{
				ID:       target.ID(),
				Name:     *characterName,
				Height:   height,
				Mass:     mass,
				PlanetID: *homeID,
				Planet:   &models.Planet{ID: *homeID, Name: *homeName, Population: homePop},
			}
		}
	case models.TargetVehicle:
		if vehicleName != nil && vehicleType != nil {
			f.Vehicle = &models.Vehicle{ID: target.ID(), Name: *vehicleName, Type: *vehicleType}
		}
	}
	return &f, nil
}

func queryFavorites(ctx context.Context, q db.DBTX, where string, args ...any) ([]models.ResolvedFavorite, error) {
	rows, err := q.QueryContext(ctx, selectFavorite+where+` ORDER BY f.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]models.ResolvedFavorite, 0)
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		favorites = append(favorites, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

func exists(ctx context.Context, q db.DBTX, table string, id int64) (bool, error) {
	var ok bool
	err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", table, err)
	}
	return ok, nil
}

// Add records target as a favorite of user userID. A missing user or
// target yields models.ErrNotFound and nothing is written; a repeated
// favorite yields models.ErrConflict.
func (r *PostgresFavoriteRepository) Add(ctx context.Context, userID int64, target models.FavoriteTarget) (*models.ResolvedFavorite, error) {
	table, ok := targetTables[target.Type()]
	if !ok {
		return nil, fmt.Errorf("%w: favorite target %s", models.ErrValidation, target)
	}

	var added *models.ResolvedFavorite
	err := db.WithTx(ctx, r.DB, func(ctx context.Context, tx db.DBTX) error {
		found, err := exists(ctx, tx, "users", userID)
		if err != nil {
			return err
		}
		if !found {
			return notFound("user", userID)
		}

		found, err = exists(ctx, tx, table, target.ID())
		if err != nil {
			return err
		}
		if !found {
			return notFound(string(target.Type()), target.ID())
		}

		planetID, characterID, vehicleID := target.Columns()
		var id int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO favorites (user_id, planet_id, character_id, vehicle_id)
			VALUES ($1, $2, $3, $4) RETURNING id
		`, userID, planetID, characterID, vehicleID).Scan(&id)
		if err != nil {
			return classify(err, "add favorite", models.ErrNotFound)
		}

		added, err = scanFavorite(tx.QueryRowContext(ctx, selectFavorite+` WHERE f.id = $1`, id))
		if err != nil {
			return fmt.Errorf("load favorite: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// Remove deletes favorite favoriteID if it belongs to user userID. A
// favorite owned by someone else is reported as models.ErrNotFound.
func (r *PostgresFavoriteRepository) Remove(ctx context.Context, favoriteID, userID int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1 AND user_id = $2`, favoriteID, userID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: favorite %d of user %d", models.ErrNotFound, favoriteID, userID)
	}
	return nil
}

// ListByUser returns the favorites of user userID with their targets
// resolved, or models.ErrNotFound when the user does not exist.
func (r *PostgresFavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]models.ResolvedFavorite, error) {
	found, err := exists(ctx, r.DB, "users", userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("user", userID)
	}
	return queryFavorites(ctx, r.DB, ` WHERE f.user_id = $1`, userID)
}

// ListAll returns every favorite joined with its owner and target.
func (r *PostgresFavoriteRepository) ListAll(ctx context.Context) ([]models.ResolvedFavorite, error) {
	return queryFavorites(ctx, r.DB, "")
}
