package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParseTargetType(t *testing.T) {
	for _, s := range []string{"planet", "character", "vehicle"} {
		got, err := ParseTargetType(s)
		require.NoError(t, err)
		assert.Equal(t, TargetType(s), got)
	}

	_, err := ParseTargetType("starship")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewFavoriteTarget(t *testing.T) {
	target, err := NewFavoriteTarget(TargetVehicle, 5)
	require.NoError(t, err)
	assert.Equal(t, TargetVehicle, target.Type())
	assert.Equal(t, int64(5), target.ID())
	assert.False(t, target.IsZero())
	assert.Equal(t, "vehicle:5", target.String())

	_, err = NewFavoriteTarget("droid", 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewFavoriteTarget(TargetPlanet, 0)
	assert.ErrorIs(t, err, ErrValidation)

	assert.True(t, FavoriteTarget{}.IsZero())
}

func TestFavoriteTarget_ColumnsExactlyOne(t *testing.T) {
	tests := []struct {
		typ                 TargetType
		wantP, wantC, wantV bool
	}{
		{TargetPlanet, true, false, false},
		{TargetCharacter, false, true, false},
		{TargetVehicle, false, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			target, err := NewFavoriteTarget(tt.typ, 7)
			require.NoError(t, err)

			p, c, v := target.Columns()
			assert.Equal(t, tt.wantP, p != nil)
			assert.Equal(t, tt.wantC, c != nil)
			assert.Equal(t, tt.wantV, v != nil)

			back, err := TargetFromColumns(p, c, v)
			require.NoError(t, err)
			assert.Equal(t, target, back)
		})
	}
}

func TestTargetFromColumns_RejectsZeroOrMany(t *testing.T) {
	_, err := TargetFromColumns(nil, nil, nil)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = TargetFromColumns(ptr(int64(1)), ptr(int64(2)), nil)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = TargetFromColumns(ptr(int64(1)), ptr(int64(2)), ptr(int64(3)))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
