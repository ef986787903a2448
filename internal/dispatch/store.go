package dispatch

import (
	"context"

	"github.com/piciu1221/firesignal/internal/models"
	"gorm.io/gorm"
)

// Store is the persistence collaborator of the dispatcher. Each call is
// fallible and atomic on its own; Transact groups calls so a failed batch
// write leaves no alarm behind.
type Store interface {
	CreateAlarm(ctx context.Context, alarm *models.Alarm) error
	FirefightersByDepartments(ctx context.Context, departmentIDs []uint) ([]models.Firefighter, error)
	CreateAssignments(ctx context.Context, assignments []models.AlarmedFirefighter) error
	Transact(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm connection as a dispatch Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) CreateAlarm(ctx context.Context, alarm *models.Alarm) error {
	return s.db.WithContext(ctx).Create(alarm).Error
}

func (s *gormStore) FirefightersByDepartments(ctx context.Context, departmentIDs []uint) ([]models.Firefighter, error) {
	var firefighters []models.Firefighter

	err := s.db.WithContext(ctx).
		Where("department_id IN ?", departmentIDs).
		Find(&firefighters).Error

	if err != nil {
		return nil, err
	}

	return firefighters, nil
}

func (s *gormStore) CreateAssignments(ctx context.Context, assignments []models.AlarmedFirefighter) error {
	if len(assignments) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&assignments).Error
}

func (s *gormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
