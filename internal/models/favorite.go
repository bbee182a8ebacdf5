package models

import "fmt"

// TargetType names the kind of record a favorite points to.
type TargetType string

const (
	// TargetPlanet marks a favorite planet.
	TargetPlanet TargetType = "planet"
	// TargetCharacter marks a favorite character.
	TargetCharacter TargetType = "character"
	// TargetVehicle marks a favorite vehicle.
	TargetVehicle TargetType = "vehicle"
)

// ParseTargetType converts a path or body value into a TargetType.
func ParseTargetType(s string) (TargetType, error) {
	switch t := TargetType(s); t {
	case TargetPlanet, TargetCharacter, TargetVehicle:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown favorite target type %q", ErrValidation, s)
}

// FavoriteTarget is the record a favorite points to. The zero value is not
// a valid target; build one with NewFavoriteTarget or TargetFromColumns.
type FavoriteTarget struct {
	typ TargetType
	id  int64
}

// NewFavoriteTarget returns a target of the given type and id.
func NewFavoriteTarget(t TargetType, id int64) (FavoriteTarget, error) {
	if _, err := ParseTargetType(string(t)); err != nil {
		return FavoriteTarget{}, err
	}
	if id <= 0 {
		return FavoriteTarget{}, fmt.Errorf("%w: %s id must be positive, got %d", ErrValidation, t, id)
	}
	return FavoriteTarget{typ: t, id: id}, nil
}

// Type returns the kind of the target.
func (t FavoriteTarget) Type() TargetType { return t.typ }

// ID returns the id of the target record.
func (t FavoriteTarget) ID() int64 { return t.id }

// IsZero reports whether t was never initialised.
func (t FavoriteTarget) IsZero() bool { return t.typ == "" }

func (t FavoriteTarget) String() string {
	if t.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s:%d", t.typ, t.id)
}

// Columns maps the target onto the three nullable foreign keys of the
// favorites table. Exactly one of the returned pointers is non-nil.
func (t FavoriteTarget) Columns() (planetID, characterID, vehicleID *int64) {
	id := t.id
	switch t.typ {
	case TargetPlanet:
		planetID = &id
	case TargetCharacter:
		characterID = &id
	case TargetVehicle:
		vehicleID = &id
	}
	return planetID, characterID, vehicleID
}

// TargetFromColumns rebuilds a target from the three nullable foreign keys.
// It fails with ErrConflict unless exactly one of them is set.
func TargetFromColumns(planetID, characterID, vehicleID *int64) (FavoriteTarget, error) {
	var (
		target FavoriteTarget
		set    int
	)
	if planetID != nil {
		target, set = FavoriteTarget{typ: TargetPlanet, id: *planetID}, set+1
	}
	if characterID != nil {
		target, set = FavoriteTarget{typ: TargetCharacter, id: *characterID}, set+1
	}
	if vehicleID != nil {
		target, set = FavoriteTarget{typ: TargetVehicle, id: *vehicleID}, set+1
	}
	if set != 1 {
		return FavoriteTarget{}, fmt.Errorf("%w: favorite must reference exactly one target, got %d", ErrConflict, set)
	}
	return target, nil
}
