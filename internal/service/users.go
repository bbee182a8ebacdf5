// Package service provides the business logic of the catalog: request
// validation, password hashing and favorite target resolution, delegating
// persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/holocron/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the persistence operations required by UserService.
type UserRepository interface {
	// GetByID returns the user with the given id or models.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// List returns all users ordered by id.
	List(ctx context.Context) ([]models.User, error)
	// Create stores u and returns it with its assigned id.
	Create(ctx context.Context, u models.User) (*models.User, error)
	// Update applies the supplied fields to user id.
	Update(ctx context.Context, id int64, fields models.UserFields) (*models.User, error)
	// Delete removes user id.
	Delete(ctx context.Context, id int64) error
}

// UserService implements user management on top of a UserRepository.
type UserService struct {
	repo UserRepository
	// hash turns a plaintext password into its stored form.
	hash func(password []byte) ([]byte, error)
}

// NewUserService constructs a UserService that stores bcrypt password hashes.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
		hash: func(password []byte) ([]byte, error) {
			return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
		},
	}
}

// Get returns user id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// Create validates fields, hashes the password and stores the user.
func (s *UserService) Create(ctx context.Context, fields models.UserFields) (*models.User, error) {
	if err := fields.ValidateCreate(); err != nil {
		return nil, err
	}
	if err := s.hashPassword(&fields); err != nil {
		return nil, err
	}
	var u models.User
	fields.Apply(&u)
	return s.repo.Create(ctx, u)
}

// Update changes the supplied fields of user id. A new password is hashed
// before it reaches the repository.
func (s *UserService) Update(ctx context.Context, id int64, fields models.UserFields) (*models.User, error) {
	if err := fields.ValidatePatch(); err != nil {
		return nil, err
	}
	if err := s.hashPassword(&fields); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, fields)
}

// Delete removes user id.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *UserService) hashPassword(fields *models.UserFields) error {
	if fields.Password == nil {
		return nil
	}
	hashed, err := s.hash([]byte(*fields.Password))
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return fmt.Errorf("%w: password is longer than 72 bytes", models.ErrValidation)
	}
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	h := string(hashed)
	fields.Password = &h
	return nil
}
