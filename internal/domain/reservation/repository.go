package reservation

import (
	"context"
	"time"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

type Repository interface {
	// -------- Shop --------
	GetShop(
		ctx context.Context,
	) (*models.Shop, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Reservation (create / conflict) --------
	CreateReservation(
		ctx context.Context,
		rv *models.Reservation,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		mechanicID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Reservation (state change) --------
	GetReservation(
		ctx context.Context,
		reservationID uint,
	) (*models.Reservation, error)

	UpdateReservation(
		ctx context.Context,
		rv *models.Reservation,
	) error

	// -------- Listing --------
	ListReservationsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Reservation, error)
}
