package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/holocron/internal/models"
	"github.com/lib/pq"
)

func setupUserMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresUserRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

var userColumns = []string{"id", "email", "password", "is_active"}

func TestUserCreate_ThenGetByID(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (email, password, is_active) VALUES ($1, $2, $3) RETURNING id`)).
		WithArgs("a@x.com", "hash", true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password, is_active FROM users WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(1), "a@x.com", "hash", true))

	created, err := repo.Create(context.Background(), models.User{Email: "a@x.com", Password: "hash", IsActive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != *created {
		t.Errorf("GetByID = %+v; want %+v", got, created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("a@x.com", "hash", false).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := repo.Create(context.Background(), models.User{Email: "a@x.com", Password: "hash"})
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserList_Ordered(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password, is_active FROM users ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(1), "a@x.com", "h1", true).
			AddRow(int64(2), "b@x.com", "h2", false))

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0].ID != 1 || users[1].Email != "b@x.com" {
		t.Errorf("unexpected users: %+v", users)
	}
}

func TestUserList_Empty(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", users)
	}
}

func TestUserUpdate_PartialFields(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	active := false
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(1), "a@x.com", "hash", true))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET email = $1, password = $2, is_active = $3 WHERE id = $4`)).
		WithArgs("a@x.com", "hash", false, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := repo.Update(context.Background(), 1, models.UserFields{IsActive: &active})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.User{ID: 1, Email: "a@x.com", Password: "hash", IsActive: false}
	if *u != want {
		t.Errorf("Update = %+v; want %+v", *u, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserUpdate_NotFoundRollsBack(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 7, models.UserFields{})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserDelete(t *testing.T) {
	tests := []struct {
		name    string
		result  func(*sqlmock.ExpectedExec)
		wantErr error
	}{
		{
			name:   "deleted",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 1)) },
		},
		{
			name:    "missing",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 0)) },
			wantErr: models.ErrNotFound,
		},
		{
			name:    "still referenced",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnError(&pq.Error{Code: "23503"}) },
			wantErr: models.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserMock(t)
			defer cleanup()

			tt.result(mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).WithArgs(int64(3)))

			err := repo.Delete(context.Background(), 3)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Delete error = %v; want %v", err, tt.wantErr)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}
