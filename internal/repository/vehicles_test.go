package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/holocron/internal/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupVehicleMock(t *testing.T) (*PostgresVehicleRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresVehicleRepository(db), mock
}

var vehicleColumns = []string{"id", "name", "type"}

func TestVehicleCreateAndList(t *testing.T) {
	repo, mock := setupVehicleMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO vehicles (name, type) VALUES ($1, $2) RETURNING id`)).
		WithArgs("X-wing", "starfighter").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, type FROM vehicles ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows(vehicleColumns).AddRow(int64(5), "X-wing", "starfighter"))

	v, err := repo.Create(context.Background(), models.Vehicle{Name: "X-wing", Type: "starfighter"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.ID)

	vs, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Vehicle{*v}, vs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleCreate_Duplicate(t *testing.T) {
	repo, mock := setupVehicleMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO vehicles`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "vehicles_name_key"})

	_, err := repo.Create(context.Background(), models.Vehicle{Name: "X-wing", Type: "starfighter"})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestVehicleUpdate_Type(t *testing.T) {
	repo, mock := setupVehicleMock(t)
	typ := "fighter"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM vehicles WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(vehicleColumns).AddRow(int64(5), "X-wing", "starfighter"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vehicles SET name = $1, type = $2 WHERE id = $3`)).
		WithArgs("X-wing", "fighter", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	v, err := repo.Update(context.Background(), 5, models.VehicleFields{Type: &typ})
	require.NoError(t, err)
	assert.Equal(t, models.Vehicle{ID: 5, Name: "X-wing", Type: "fighter"}, *v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleGetByID_NotFound(t *testing.T) {
	repo, mock := setupVehicleMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM vehicles WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(vehicleColumns))

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
