package reservation

import (
	"testing"
	"time"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

// ===============================
// Transitions
// ===============================

func TestCanConfirm(t *testing.T) {
	cases := []struct {
		current Status
		wantErr bool
	}{
		{StatusPending, false},
		{StatusConfirmed, true},
		{StatusCancelled, true},
		{StatusCompleted, true},
	}

	for _, tc := range cases {
		err := CanConfirm(tc.current)
		if (err != nil) != tc.wantErr {
			t.Errorf("CanConfirm(%s): err = %v, wantErr = %v", tc.current, err, tc.wantErr)
		}
	}
}

func TestCanCancel(t *testing.T) {
	cases := []struct {
		current Status
		wantErr bool
	}{
		{StatusPending, false},
		{StatusConfirmed, false},
		{StatusCancelled, true},
		{StatusCompleted, true},
	}

	for _, tc := range cases {
		err := CanCancel(tc.current)
		if (err != nil) != tc.wantErr {
			t.Errorf("CanCancel(%s): err = %v, wantErr = %v", tc.current, err, tc.wantErr)
		}
	}
}

func TestCanComplete(t *testing.T) {
	cases := []struct {
		current Status
		wantErr bool
	}{
		{StatusPending, true},
		{StatusConfirmed, false},
		{StatusCancelled, true},
		{StatusCompleted, true},
	}

	for _, tc := range cases {
		err := CanComplete(tc.current)
		if (err != nil) != tc.wantErr {
			t.Errorf("CanComplete(%s): err = %v, wantErr = %v", tc.current, err, tc.wantErr)
		}
	}
}

// ===============================
// Mutators
// ===============================

func TestConfirm_StampsTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	rv := &models.Reservation{Status: string(StatusPending)}

	if err := Confirm(rv, now); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if rv.Status != string(StatusConfirmed) {
		t.Errorf("status = %s", rv.Status)
	}
	if rv.ConfirmedAt == nil || !rv.ConfirmedAt.Equal(now) {
		t.Errorf("confirmed_at = %v", rv.ConfirmedAt)
	}
}

func TestCancel_FromConfirmed(t *testing.T) {
	now := time.Now()
	rv := &models.Reservation{Status: string(StatusConfirmed)}

	if err := Cancel(rv, now); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if rv.Status != string(StatusCancelled) || rv.CancelledAt == nil {
		t.Errorf("status = %s, cancelled_at = %v", rv.Status, rv.CancelledAt)
	}
}

func TestComplete_InvalidFromPending(t *testing.T) {
	rv := &models.Reservation{Status: string(StatusPending)}

	if err := Complete(rv, time.Now()); err == nil {
		t.Fatal("esperava erro ao concluir reserva não confirmada")
	}
	// estado não deve mudar quando a transição é rejeitada
	if rv.Status != string(StatusPending) || rv.CompletedAt != nil {
		t.Errorf("status = %s, completed_at = %v", rv.Status, rv.CompletedAt)
	}
}
