package service

import (
	"context"

	"github.com/atinyakov/holocron/internal/models"
)

// VehicleRepository defines the persistence operations required by VehicleService.
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Vehicle, error)
	List(ctx context.Context) ([]models.Vehicle, error)
	Create(ctx context.Context, v models.Vehicle) (*models.Vehicle, error)
	Update(ctx context.Context, id int64, fields models.VehicleFields) (*models.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

type VehicleService struct {
	repo VehicleRepository
}

func NewVehicleService(repo VehicleRepository) *VehicleService {
	return &VehicleService{repo: repo}
}

func (s *VehicleService) Get(ctx context.Context, id int64) (*models.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VehicleService) List(ctx context.Context) ([]models.Vehicle, error) {
	return s.repo.List(ctx)
}

func (s *VehicleService) Create(ctx context.Context, fields models.VehicleFields) (*models.Vehicle, error) {
	if err := fields.ValidateCreate(); err != nil {
		return nil, err
	}
	var v models.Vehicle
	fields.Apply(&v)
	return s.repo.Create(ctx, v)
}

func (s *VehicleService) Update(ctx context.Context, id int64, fields models.VehicleFields) (*models.Vehicle, error) {
	if err := fields.ValidatePatch(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
