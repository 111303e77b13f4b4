package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/RodaNovaServices01/wheel-repair-api/internal/domain/reservation"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/httperr"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *ReservationGormRepository) GetShop(
	ctx context.Context,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ReservationGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", serviceID, true).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ReservationGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		Name:  name,
		Phone: phone,
		Email: email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Reservation
// --------------------------------------------------

func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	rv *models.Reservation,
) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReservationGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	mechanicID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"mechanic_id = ? AND status IN ('pending', 'confirmed') AND start_time < ? AND end_time > ?",
			mechanicID,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	reservationID uint,
) (*models.Reservation, error) {

	var rv models.Reservation
	if err := r.db.WithContext(ctx).
		First(&rv, reservationID).Error; err != nil {
		return nil, err
	}

	return &rv, nil
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	rv *models.Reservation,
) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *ReservationGormRepository) ListReservationsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {

	var rvs []models.Reservation

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"start_time >= ? AND start_time < ?",
			start,
			end,
		).
		Order("start_time ASC").
		Find(&rvs).Error

	if err != nil {
		return nil, err
	}

	return rvs, nil
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
