package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tatooine() *Planet {
	return &Planet{ID: 1, Name: "Tatooine", Population: ptr(int64(200000))}
}

func TestUser_PasswordNeverSerialized(t *testing.T) {
	data, err := json.Marshal(User{ID: 1, Email: "a@x.com", Password: "secret-hash", IsActive: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"email":"a@x.com","is_active":true}`, string(data))
}

func TestCharacterView_EmbedsPlanet(t *testing.T) {
	view, err := NewCharacterView(Character{ID: 3, Name: "Luke", PlanetID: 1, Planet: tatooine()})
	require.NoError(t, err)

	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":3,"name":"Luke","height":null,"mass":null,"planet":{"id":1,"name":"Tatooine","population":200000}}`,
		string(data))
}

func TestCharacterView_UnresolvedPlanet(t *testing.T) {
	_, err := NewCharacterView(Character{ID: 3, Name: "Luke", PlanetID: 1})
	assert.Error(t, err)

	_, err = NewCharacterView(Character{ID: 3, Name: "Luke", PlanetID: 2, Planet: tatooine()})
	assert.Error(t, err)
}

func TestFavoriteView_OnlyPopulatedKey(t *testing.T) {
	target, err := NewFavoriteTarget(TargetPlanet, 1)
	require.NoError(t, err)

	view, err := NewFavoriteView(ResolvedFavorite{
		Favorite: Favorite{ID: 9, UserID: 2, Target: target},
		Planet:   tatooine(),
	})
	require.NoError(t, err)

	data, err := json.Marshal(view)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "id")
	assert.Contains(t, raw, "user_id")
	assert.Contains(t, raw, "planet")
	assert.NotContains(t, raw, "vehicle")
	assert.NotContains(t, raw, "character")
	assert.JSONEq(t, `{"id":1,"name":"Tatooine","population":200000}`, string(raw["planet"]))
}

func TestFavoriteView_Character(t *testing.T) {
	target, err := NewFavoriteTarget(TargetCharacter, 3)
	require.NoError(t, err)

	view, err := NewFavoriteView(ResolvedFavorite{
		Favorite:  Favorite{ID: 1, UserID: 2, Target: target},
		Character: &Character{ID: 3, Name: "Luke", PlanetID: 1, Planet: tatooine()},
	})
	require.NoError(t, err)
	require.NotNil(t, view.Character)
	assert.Equal(t, "Tatooine", view.Character.Planet.Name)
	assert.Nil(t, view.Planet)
	assert.Nil(t, view.Vehicle)
}

func TestFavoriteView_Errors(t *testing.T) {
	_, err := NewFavoriteView(ResolvedFavorite{Favorite: Favorite{ID: 1, UserID: 1}})
	assert.ErrorIs(t, err, ErrConflict)

	target, err := NewFavoriteTarget(TargetVehicle, 5)
	require.NoError(t, err)
	_, err = NewFavoriteView(ResolvedFavorite{
		Favorite: Favorite{ID: 1, UserID: 1, Target: target},
		Vehicle:  &Vehicle{ID: 6, Name: "X-wing", Type: "starfighter"},
	})
	assert.Error(t, err)
}

func TestFavoriteDetailViews_IncludesUser(t *testing.T) {
	target, err := NewFavoriteTarget(TargetVehicle, 5)
	require.NoError(t, err)
	fav := ResolvedFavorite{
		Favorite: Favorite{ID: 1, UserID: 2, Target: target},
		User:     &User{ID: 2, Email: "b@x.com", Password: "hash"},
		Vehicle:  &Vehicle{ID: 5, Name: "X-wing", Type: "starfighter"},
	}

	views, err := NewFavoriteDetailViews([]ResolvedFavorite{fav})
	require.NoError(t, err)
	require.Len(t, views, 1)

	data, err := json.Marshal(views[0])
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":1,"user_id":2,"vehicle":{"id":5,"name":"X-wing","type":"starfighter"},"user":{"id":2,"email":"b@x.com","is_active":false}}`,
		string(data))

	fav.User = nil
	_, err = NewFavoriteDetailViews([]ResolvedFavorite{fav})
	assert.Error(t, err)
}
