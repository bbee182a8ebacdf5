package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/holocron/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EntityService is the CRUD surface shared by the user, planet, character
// and vehicle services. T is the stored record, F the partial field set
// accepted on create and update.
type EntityService[T, F any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, fields F) (*T, error)
	Update(ctx context.Context, id int64, fields F) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// EntityHandler serves list, get, create, update and delete for one
// entity type.
type EntityHandler[T, F any] struct {
	// Service performs the underlying operations.
	Service EntityService[T, F]
	// Logger records unexpected failures.
	Logger *zap.Logger
	// Name is used in response messages, e.g. "planet".
	Name string
	// Param is the URL parameter carrying the id, e.g. "planet_id".
	Param string
	// View projects a record for the response. Records are encoded as-is
	// when nil.
	View func(T) (any, error)
}

type (
	UserHandler      = EntityHandler[models.User, models.UserFields]
	PlanetHandler    = EntityHandler[models.Planet, models.PlanetFields]
	CharacterHandler = EntityHandler[models.Character, models.CharacterFields]
	VehicleHandler   = EntityHandler[models.Vehicle, models.VehicleFields]
)

// NewUserHandler serves /user.
func NewUserHandler(svc EntityService[models.User, models.UserFields], logger *zap.Logger) *UserHandler {
	return &UserHandler{Service: svc, Logger: logger, Name: "user", Param: "user_id"}
}

// NewPlanetHandler serves /planets.
func NewPlanetHandler(svc EntityService[models.Planet, models.PlanetFields], logger *zap.Logger) *PlanetHandler {
	return &PlanetHandler{Service: svc, Logger: logger, Name: "planet", Param: "planet_id"}
}

// NewCharacterHandler serves /characters. Characters are rendered with
// their home planet embedded.
func NewCharacterHandler(svc EntityService[models.Character, models.CharacterFields], logger *zap.Logger) *CharacterHandler {
	return &CharacterHandler{
		Service: svc,
		Logger:  logger,
		Name:    "character",
		Param:   "character_id",
		View: func(c models.Character) (any, error) {
			return models.NewCharacterView(c)
		},
	}
}

// NewVehicleHandler serves /vehicles.
func NewVehicleHandler(svc EntityService[models.Vehicle, models.VehicleFields], logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{Service: svc, Logger: logger, Name: "vehicle", Param: "vehicle_id"}
}

// Routes registers the collection and item routes on r, which is expected
// to be mounted at the collection path.
func (h *EntityHandler[T, F]) Routes(r chi.Router) {
	item := "/{" + h.Param + "}"
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get(item, h.Get)
	r.Put(item, h.Update)
	r.Delete(item, h.Delete)
}

func (h *EntityHandler[T, F]) project(v T) (any, error) {
	if h.View == nil {
		return v, nil
	}
	return h.View(v)
}

// List handles GET on the collection.
func (h *EntityHandler[T, F]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	result := make([]any, 0, len(items))
	for _, item := range items {
		v, err := h.project(item)
		if err != nil {
			writeError(w, r, h.Logger, err)
			return
		}
		result = append(result, v)
	}
	writeJSON(w, http.StatusOK, "ok", result)
}

// Get handles GET on an item.
func (h *EntityHandler[T, F]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, h.Param)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	item, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	h.respond(w, r, http.StatusOK, "ok", item)
}

// Create handles POST on the collection and answers 201.
func (h *EntityHandler[T, F]) Create(w http.ResponseWriter, r *http.Request) {
	var fields F
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	item, err := h.Service.Create(r.Context(), fields)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	h.respond(w, r, http.StatusCreated, h.Name+" created", item)
}

// Update handles PUT on an item. Only the fields present in the body change.
func (h *EntityHandler[T, F]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, h.Param)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	var fields F
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	item, err := h.Service.Update(r.Context(), id, fields)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	h.respond(w, r, http.StatusOK, h.Name+" updated", item)
}

// Delete handles DELETE on an item.
func (h *EntityHandler[T, F]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, h.Param)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Name+" deleted", nil)
}

func (h *EntityHandler[T, F]) respond(w http.ResponseWriter, r *http.Request, status int, msg string, item *T) {
	v, err := h.project(*item)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, status, msg, v)
}
