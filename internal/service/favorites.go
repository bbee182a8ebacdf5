package service

import (
	"context"

	"github.com/atinyakov/holocron/internal/models"
)

// FavoriteRepository defines the persistence operations required by
// FavoriteService.
type FavoriteRepository interface {
	// Add links target to user userID.
	Add(ctx context.Context, userID int64, target models.FavoriteTarget) (*models.ResolvedFavorite, error)
	// Remove deletes favoriteID when it belongs to userID.
	Remove(ctx context.Context, favoriteID, userID int64) error
	// ListByUser returns the favorites of userID.
	ListByUser(ctx context.Context, userID int64) ([]models.ResolvedFavorite, error)
	// ListAll returns every favorite with its owner resolved.
	ListAll(ctx context.Context) ([]models.ResolvedFavorite, error)
}

// FavoriteService manages the favorites of users.
type FavoriteService struct {
	repo FavoriteRepository
}

// NewFavoriteService constructs a FavoriteService using repo.
func NewFavoriteService(repo FavoriteRepository) *FavoriteService {
	return &FavoriteService{repo: repo}
}

// Add marks record targetID of kind targetType ("planet", "character" or
// "vehicle") as a favorite of user userID. An unknown kind or a
// non-positive id is a validation error and never reaches storage.
func (s *FavoriteService) Add(ctx context.Context, userID int64, targetType string, targetID int64) (*models.ResolvedFavorite, error) {
	typ, err := models.ParseTargetType(targetType)
	if err != nil {
		return nil, err
	}
	target, err := models.NewFavoriteTarget(typ, targetID)
	if err != nil {
		return nil, err
	}
	return s.repo.Add(ctx, userID, target)
}

// Remove deletes favorite favoriteID of user userID.
func (s *FavoriteService) Remove(ctx context.Context, userID, favoriteID int64) error {
	return s.repo.Remove(ctx, favoriteID, userID)
}

// ListForUser returns the favorites of user userID.
func (s *FavoriteService) ListForUser(ctx context.Context, userID int64) ([]models.ResolvedFavorite, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every favorite of every user.
func (s *FavoriteService) ListAll(ctx context.Context) ([]models.ResolvedFavorite, error) {
	return s.repo.ListAll(ctx)
}
