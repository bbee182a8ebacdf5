// Package models defines the persisted records of the service (users,
// planets, characters, vehicles and favorites), the field sets used to
// create and patch them, and their transport projections.
package models

// User represents an account that can collect favorites.
type User struct {
	// ID is the surrogate identifier assigned on creation.
	ID int64 `json:"id"`
	// Email is the unique login address of the user.
	Email string `json:"email"`
	// Password holds the bcrypt hash of the user's password. It is never serialized.
	Password string `json:"-"`
	// IsActive reports whether the account is enabled.
	IsActive bool `json:"is_active"`
}

// Planet is a named world with an optional population count.
type Planet struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Population *int64 `json:"population"`
}

// Character is a named person living on a Planet.
type Character struct {
	ID     int64
	Name   string
	Height *int64
	Mass   *int64
	// PlanetID is the stored reference to the home planet.
	PlanetID int64
	// Planet is the resolved home planet. Repositories fill it with an
	// explicit join; it is nil when the caller did not ask for it.
	Planet *Planet
}

// Vehicle is a named craft of some type.
type Vehicle struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Favorite links a user to exactly one planet, character or vehicle.
type Favorite struct {
	ID     int64
	UserID int64
	Target FavoriteTarget
}

// ResolvedFavorite is a Favorite together with its owning user and the
// target record it points to. Exactly one of Planet, Character and Vehicle
// is set, matching Target.Type().
type ResolvedFavorite struct {
	Favorite
	User      *User
	Planet    *Planet
	Character *Character
	Vehicle   *Vehicle
}
