package reservation

import (
	"context"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/audit"
	domain "github.com/RodaNovaServices01/wheel-repair-api/internal/domain/reservation"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/httperr"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/timezone"
)

type CancelReservation struct {
	repo  domain.Repository
	audit *audit.Recorder
}

func NewCancelReservation(
	repo domain.Repository,
	rec *audit.Recorder,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: rec,
	}
}

func (uc *CancelReservation) Execute(
	ctx context.Context,
	info audit.RequestInfo,
	reservationID uint,
	reason string,
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
	if err := domain.Cancel(rv, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, rv); err != nil {
		return nil, err
	}

	entry := audit.Entry{
		EntityType: models.EntityReservation,
		EntityID:   rv.ID,
		Action:     audit.ActionForStatusChange(prevStatus, rv.Status),
		Summary:    "Reserva cancelada",
		Previous:   before,
		Next:       audit.Snapshot(rv),
	}
	if reason != "" {
		entry.Metadata = map[string]any{"reason": reason}
	}
	record(ctx, uc.audit, info, entry)

	return rv, nil
}
