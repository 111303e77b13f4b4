package reservation

import (
	"context"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/audit"
	domain "github.com/RodaNovaServices01/wheel-repair-api/internal/domain/reservation"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/httperr"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/timezone"
)

type CompleteReservation struct {
	repo  domain.Repository
	audit *audit.Recorder
}

func NewCompleteReservation(
	repo domain.Repository,
	rec *audit.Recorder,
) *CompleteReservation {
	return &CompleteReservation{
		repo:  repo,
		audit: rec,
	}
}

func (uc *CompleteReservation) Execute(
	ctx context.Context,
	info audit.RequestInfo,
	reservationID uint,
) (*models.Reservation, error) {

	shop, err := uc.repo.GetShop(ctx)
	if err != nil {
		return nil, err
	}

	rv, err := uc.repo.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	before := audit.Snapshot(rv)
	prevStatus := rv.Status

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Complete(rv, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, rv); err != nil {
		return nil, err
	}

	record(ctx, uc.audit, info, audit.Entry{
		EntityType: models.EntityReservation,
		EntityID:   rv.ID,
		Action:     audit.ActionForStatusChange(prevStatus, rv.Status),
		Summary:    "Reserva concluída",
		Previous:   before,
		Next:       audit.Snapshot(rv),
	})

	return rv, nil
}
