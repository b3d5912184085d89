package repository

import (
	"context"
	"errors"
	"fmt"

	"tabletalk-service/internal/domain/entity"
	"tabletalk-service/internal/domain/repository"
	"tabletalk-service/pkg/logger"

	"gorm.io/gorm"
)

// GormReservationRepository implements the ReservationRepository interface
// on a relational backend
type GormReservationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormReservationRepository creates a new GORM reservation repository
func NewGormReservationRepository(db *gorm.DB, logger logger.Logger) repository.ReservationRepository {
	return &GormReservationRepository{
		db:     db,
		logger: logger,
	}
}

// Reservations GORM model for database mapping
type Reservations struct {
	gorm.Model
	Name   string `gorm:"column:name"`
	Phone  string `gorm:"column:phone;index"`
	Date   string `gorm:"column:date"`
	Time   string `gorm:"column:time"`
	Guests int    `gorm:"column:guests"`
}

// TableName overrides the default table name
func (Reservations) TableName() string {
	return "reservations"
}

// Create inserts a reservation unconditionally
func (r *GormReservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	model := Reservations{
		Name:   reservation.Name,
		Phone:  reservation.Phone,
		Date:   reservation.Date,
		Time:   reservation.Time,
		Guests: reservation.Guests,
	}

	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to create reservation: %w", result.Error)
	}

	reservation.CreatedAt = model.CreatedAt
	r.logger.Info("Reservation created", "phone", reservation.Phone)
	return nil
}

// FindByPhone finds a reservation by exact phone match
func (r *GormReservationRepository) FindByPhone(ctx context.Context, phone string) (*entity.Reservation, error) {
	var model Reservations
	result := r.db.WithContext(ctx).Where("phone = ?", phone).Order("id").First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", result.Error)
	}

	return &entity.Reservation{
		Name:      model.Name,
		Phone:     model.Phone,
		Date:      model.Date,
		Time:      model.Time,
		Guests:    model.Guests,
		CreatedAt: model.CreatedAt,
	}, nil
}

// DeleteByPhone removes the first reservation matching the phone
func (r *GormReservationRepository) DeleteByPhone(ctx context.Context, phone string) error {
	var model Reservations
	result := r.db.WithContext(ctx).Where("phone = ?", phone).Order("id").First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return entity.ErrNotFound
		}
		return fmt.Errorf("failed to find reservation: %w", result.Error)
	}

	if err := r.db.WithContext(ctx).Delete(&model).Error; err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	r.logger.Info("Reservation deleted", "phone", phone)
	return nil
}

// PurgeBefore removes reservations with a canonical date before the cutoff
func (r *GormReservationRepository) PurgeBefore(ctx context.Context, cutoff string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where(`date ~ '^\d{4}-\d{2}-\d{2}$'`).
		Where("date < ?", cutoff).
		Delete(&Reservations{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge reservations: %w", result.Error)
	}
	return result.RowsAffected, nil
}
