package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/holocron/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FavoriteService defines the favorite operations required by FavoriteHandler.
type FavoriteService interface {
	Add(ctx context.Context, userID int64, targetType string, targetID int64) (*models.ResolvedFavorite, error)
	Remove(ctx context.Context, userID, favoriteID int64) error
	ListForUser(ctx context.Context, userID int64) ([]models.ResolvedFavorite, error)
	ListAll(ctx context.Context) ([]models.ResolvedFavorite, error)
}

// FavoriteHandler serves the favorites of users.
type FavoriteHandler struct {
	FavoriteService FavoriteService
	Logger          *zap.Logger
}

// UserRoutes registers the per-user favorite routes on a router mounted
// at /user.
func (h *FavoriteHandler) UserRoutes(r chi.Router) {
	r.Get("/{user_id}/favorites", h.ListForUser)
	r.Post("/{user_id}/favorites/{target_type}/{target_id}", h.Add)
	r.Delete("/{user_id}/favorites/{favorite_id}", h.Remove)
}

// ListForUser handles GET /user/{user_id}/favorites.
func (h *FavoriteHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	favs, err := h.FavoriteService.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	views, err := models.NewFavoriteViews(favs)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, "ok", views)
}

// Add handles POST /user/{user_id}/favorites/{target_type}/{target_id}.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	targetID, err := pathID(r, "target_id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	fav, err := h.FavoriteService.Add(r.Context(), userID, chi.URLParam(r, "target_type"), targetID)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	view, err := models.NewFavoriteView(*fav)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, "favorite added", view)
}

// Remove handles DELETE /user/{user_id}/favorites/{favorite_id}.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	favoriteID, err := pathID(r, "favorite_id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	if err := h.FavoriteService.Remove(r.Context(), userID, favoriteID); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, "favorite removed", nil)
}

// ListAll handles GET /favorites.
func (h *FavoriteHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	favs, err := h.FavoriteService.ListAll(r.Context())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	views, err := models.NewFavoriteDetailViews(favs)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, "ok", views)
}
