package models

import "fmt"

// CharacterView is the transport projection of a Character with its home
// planet embedded.
type CharacterView struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Height *int64 `json:"height"`
	Mass   *int64 `json:"mass"`
	Planet Planet `json:"planet"`
}

// FavoriteView is the transport projection of a favorite. Only the key of
// the populated target is present.
type FavoriteView struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Planet    *Planet        `json:"planet,omitempty"`
	Character *CharacterView `json:"character,omitempty"`
	Vehicle   *Vehicle       `json:"vehicle,omitempty"`
}

// FavoriteDetailView is a FavoriteView together with its owner.
type FavoriteDetailView struct {
	FavoriteView
	User User `json:"user"`
}

// NewCharacterView projects c. It fails when the planet reference was not
// resolved or does not match the stored id.
func NewCharacterView(c Character) (CharacterView, error) {
	if c.Planet == nil || c.Planet.ID != c.PlanetID {
		return CharacterView{}, fmt.Errorf("character %d: planet %d not resolved", c.ID, c.PlanetID)
	}
	return CharacterView{
		ID:     c.ID,
		Name:   c.Name,
		Height: c.Height,
		Mass:   c.Mass,
		Planet: *c.Planet,
	}, nil
}

// NewCharacterViews projects every character of cs.
func NewCharacterViews(cs []Character) ([]CharacterView, error) {
	out := make([]CharacterView, 0, len(cs))
	for _, c := range cs {
		v, err := NewCharacterView(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// NewFavoriteView projects f, embedding the single resolved target.
func NewFavoriteView(f ResolvedFavorite) (FavoriteView, error) {
	view := FavoriteView{ID: f.ID, UserID: f.UserID}
	switch f.Target.Type() {
	case TargetPlanet:
		if f.Planet == nil || f.Planet.ID != f.Target.ID() {
			return FavoriteView{}, unresolved(f)
		}
		view.Planet = f.Planet
	case TargetCharacter:
		if f.Character == nil || f.Character.ID != f.Target.ID() {
			return FavoriteView{}, unresolved(f)
		}
		cv, err := NewCharacterView(*f.Character)
		if err != nil {
			return FavoriteView{}, err
		}
		view.Character = &cv
	case TargetVehicle:
		if f.Vehicle == nil || f.Vehicle.ID != f.Target.ID() {
			return FavoriteView{}, unresolved(f)
		}
		view.Vehicle = f.Vehicle
	default:
		return FavoriteView{}, fmt.Errorf("%w: favorite %d has no target", ErrConflict, f.ID)
	}
	return view, nil
}

// NewFavoriteViews projects every favorite of fs.
func NewFavoriteViews(fs []ResolvedFavorite) ([]FavoriteView, error) {
	out := make([]FavoriteView, 0, len(fs))
	for _, f := range fs {
		v, err := NewFavoriteView(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// NewFavoriteDetailViews projects favorites together with their owners.
func NewFavoriteDetailViews(fs []ResolvedFavorite) ([]FavoriteDetailView, error) {
	out := make([]FavoriteDetailView, 0, len(fs))
	for _, f := range fs {
		v, err := NewFavoriteView(f)
		if err != nil {
			return nil, err
		}
		if f.User == nil || f.User.ID != f.UserID {
			return nil, fmt.Errorf("favorite %d: user %d not resolved", f.ID, f.UserID)
		}
		out = append(out, FavoriteDetailView{FavoriteView: v, User: *f.User})
	}
	return out, nil
}

func unresolved(f ResolvedFavorite) error {
	return fmt.Errorf("favorite %d: target %s not resolved", f.ID, f.Target)
}
