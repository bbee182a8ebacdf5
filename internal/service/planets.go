package service

import (
	"context"

	"github.com/atinyakov/holocron/internal/models"
)

// PlanetRepository defines the persistence operations required by PlanetService.
type PlanetRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Planet, error)
	List(ctx context.Context) ([]models.Planet, error)
	Create(ctx context.Context, p models.Planet) (*models.Planet, error)
	Update(ctx context.Context, id int64, fields models.PlanetFields) (*models.Planet, error)
	Delete(ctx context.Context, id int64) error
}

// PlanetService validates planet requests before they reach the repository.
type PlanetService struct {
	repo PlanetRepository
}

// NewPlanetService constructs a PlanetService using repo.
func NewPlanetService(repo PlanetRepository) *PlanetService {
	return &PlanetService{repo: repo}
}

func (s *PlanetService) Get(ctx context.Context, id int64) (*models.Planet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PlanetService) List(ctx context.Context) ([]models.Planet, error) {
	return s.repo.List(ctx)
}

// Create stores a new planet. Name is required, population is optional.
func (s *PlanetService) Create(ctx context.Context, fields models.PlanetFields) (*models.Planet, error) {
	if err := fields.ValidateCreate(); err != nil {
		return nil, err
	}
	var p models.Planet
	fields.Apply(&p)
	return s.repo.Create(ctx, p)
}

func (s *PlanetService) Update(ctx context.Context, id int64, fields models.PlanetFields) (*models.Planet, error) {
	if err := fields.ValidatePatch(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, fields)
}

// Delete removes planet id. A planet that is still home to a character or
// a favorite target yields models.ErrConflict.
func (s *PlanetService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
