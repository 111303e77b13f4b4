package reservation

import (
	"context"
	"time"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/audit"
	domain "github.com/RodaNovaServices01/wheel-repair-api/internal/domain/reservation"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/httperr"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	MechanicID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	VehicleInfo string
	WheelCount  int

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo  domain.Repository
	audit *audit.Recorder
}

func NewCreateReservation(
	repo domain.Repository,
	rec *audit.Recorder,
) *CreateReservation {
	return &CreateReservation{
		repo:  repo,
		audit: rec,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	info audit.RequestInfo,
	in CreateReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// 1️⃣ Oficina (timezone)
	// --------------------------------------------------
	shop, err := uc.repo.GetShop(ctx)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone da oficina
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now) {
		return nil, httperr.ErrBusiness("reservation_in_the_past")
	}

	// --------------------------------------------------
	// 3️⃣ Serviço
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 4️⃣ Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Conflito de horário do mecânico
	// --------------------------------------------------
	if err := uc.repo.AssertNoTimeConflict(
		ctx,
		in.MechanicID,
		start,
		end,
	); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Criação da reserva (status centralizado)
	// --------------------------------------------------
	wheelCount := in.WheelCount
	if wheelCount <= 0 {
		wheelCount = 1
	}

	rv := &models.Reservation{
		ClientID:    client.ID,
		ServiceID:   svc.ID,
		MechanicID:  in.MechanicID,
		VehicleInfo: in.VehicleInfo,
		WheelCount:  wheelCount,
		StartTime:   start,
		EndTime:     end,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateReservation(ctx, rv); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ Auditoria (nunca derruba a criação)
	// --------------------------------------------------
	record(ctx, uc.audit, info, audit.Entry{
		EntityType: models.EntityReservation,
		EntityID:   rv.ID,
		Action:     models.ActionCreated,
		Summary:    "Reserva criada",
		Next:       audit.Snapshot(rv),
	})

	return rv, nil
}
