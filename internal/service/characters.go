package service

import (
	"context"

	"github.com/atinyakov/holocron/internal/models"
)

// CharacterRepository defines the persistence operations required by
// CharacterService. Returned characters have their Planet resolved.
type CharacterRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Character, error)
	List(ctx context.Context) ([]models.Character, error)
	Create(ctx context.Context, c models.Character) (*models.Character, error)
	Update(ctx context.Context, id int64, fields models.CharacterFields) (*models.Character, error)
	Delete(ctx context.Context, id int64) error
}

// CharacterService validates character requests. Planet existence is
// checked by the repository and reported as models.ErrReferential.
type CharacterService struct {
	repo CharacterRepository
}

// NewCharacterService constructs a CharacterService using repo.
func NewCharacterService(repo CharacterRepository) *CharacterService {
	return &CharacterService{repo: repo}
}

func (s *CharacterService) Get(ctx context.Context, id int64) (*models.Character, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CharacterService) List(ctx context.Context) ([]models.Character, error) {
	return s.repo.List(ctx)
}

func (s *CharacterService) Create(ctx context.Context, fields models.CharacterFields) (*models.Character, error) {
	if err := fields.ValidateCreate(); err != nil {
		return nil, err
	}
	var c models.Character
	fields.Apply(&c)
	return s.repo.Create(ctx, c)
}

func (s *CharacterService) Update(ctx context.Context, id int64, fields models.CharacterFields) (*models.Character, error) {
	if err := fields.ValidatePatch(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *CharacterService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
