package models

import (
	"fmt"
	"strings"
)

// UserFields carries the user attributes of a create or update request.
// A nil field was not supplied.
type UserFields struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// PlanetFields carries the planet attributes of a create or update request.
type PlanetFields struct {
	Name       *string `json:"name"`
	Population *int64  `json:"population"`
}

// CharacterFields carries the character attributes of a create or update request.
type CharacterFields struct {
	Name     *string `json:"name"`
	Height   *int64  `json:"height"`
	Mass     *int64  `json:"mass"`
	PlanetID *int64  `json:"planet_id"`
}

// VehicleFields carries the vehicle attributes of a create or update request.
type VehicleFields struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

func requireString(field string, v *string) error {
	if v == nil {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return checkString(field, v)
}

func checkString(field string, v *string) error {
	if v != nil && strings.TrimSpace(*v) == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrValidation, field)
	}
	return nil
}

func checkNonNegative(field string, v *int64) error {
	if v != nil && *v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrValidation, field)
	}
	return nil
}

func checkEmail(v *string) error {
	if err := checkString("email", v); err != nil {
		return err
	}
	if v != nil && !strings.Contains(*v, "@") {
		return fmt.Errorf("%w: email %q is malformed", ErrValidation, *v)
	}
	return nil
}

// ValidateCreate checks that email, password and is_active are all present.
func (f UserFields) ValidateCreate() error {
	if err := requireString("email", f.Email); err != nil {
		return err
	}
	if err := requireString("password", f.Password); err != nil {
		return err
	}
	if f.IsActive == nil {
		return fmt.Errorf("%w: is_active is required", ErrValidation)
	}
	return f.ValidatePatch()
}

// ValidatePatch checks the supplied fields only.
func (f UserFields) ValidatePatch() error {
	if err := checkEmail(f.Email); err != nil {
		return err
	}
	return checkString("password", f.Password)
}

// Apply overwrites the supplied fields of u.
func (f UserFields) Apply(u *User) {
	if f.Email != nil {
		u.Email = *f.Email
	}
	if f.Password != nil {
		u.Password = *f.Password
	}
	if f.IsActive != nil {
		u.IsActive = *f.IsActive
	}
}

// ValidateCreate checks that the planet has a name.
func (f PlanetFields) ValidateCreate() error {
	if err := requireString("name", f.Name); err != nil {
		return err
	}
	return f.ValidatePatch()
}

// ValidatePatch checks the supplied fields only.
func (f PlanetFields) ValidatePatch() error {
	if err := checkString("name", f.Name); err != nil {
		return err
	}
	return checkNonNegative("population", f.Population)
}

// Apply overwrites the supplied fields of p.
func (f PlanetFields) Apply(p *Planet) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Population != nil {
		v := *f.Population
		p.Population = &v
	}
}

// ValidateCreate checks that the character has a name and a planet.
func (f CharacterFields) ValidateCreate() error {
	if err := requireString("name", f.Name); err != nil {
		return err
	}
	if f.PlanetID == nil {
		return fmt.Errorf("%w: planet_id is required", ErrValidation)
	}
	return f.ValidatePatch()
}

// ValidatePatch checks the supplied fields only.
func (f CharacterFields) ValidatePatch() error {
	if err := checkString("name", f.Name); err != nil {
		return err
	}
	if err := checkNonNegative("height", f.Height); err != nil {
		return err
	}
	if err := checkNonNegative("mass", f.Mass); err != nil {
		return err
	}
	if f.PlanetID != nil && *f.PlanetID <= 0 {
		return fmt.Errorf("%w: planet_id must be positive", ErrValidation)
	}
	return nil
}

// Apply overwrites the supplied fields of c. A changed planet reference
// drops the resolved Planet.
func (f CharacterFields) Apply(c *Character) {
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Height != nil {
		v := *f.Height
		c.Height = &v
	}
	if f.Mass != nil {
		v := *f.Mass
		c.Mass = &v
	}
	if f.PlanetID != nil && *f.PlanetID != c.PlanetID {
		c.PlanetID = *f.PlanetID
		c.Planet = nil
	}
}

// ValidateCreate checks that the vehicle has a name and a type.
func (f VehicleFields) ValidateCreate() error {
	if err := requireString("name", f.Name); err != nil {
		return err
	}
	if err := requireString("type", f.Type); err != nil {
		return err
	}
	return nil
}

// ValidatePatch checks the supplied fields only.
func (f VehicleFields) ValidatePatch() error {
	if err := checkString("name", f.Name); err != nil {
		return err
	}
	return checkString("type", f.Type)
}

// Apply overwrites the supplied fields of v.
func (f VehicleFields) Apply(v *Vehicle) {
	if f.Name != nil {
		v.Name = *f.Name
	}
	if f.Type != nil {
		v.Type = *f.Type
	}
}
