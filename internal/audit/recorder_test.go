package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
	)
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	return gdb, mock
}

func TestRecorder_Record_WithChanges(t *testing.T) {
	db, mock := newMockDB(t)
	rec := NewRecorder(db)

	actorID := uint(9)
	now := time.Now()

	// resolução do nome do ator
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "first_name", "last_name", "email", "role", "created_at", "updated_at"},
		).AddRow(9, "Jane", "Doe", "jane@x.com", "admin", now, now))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "audit_logs"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "audit_log_changes"`).
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	entry, err := rec.Record(
		context.Background(),
		RequestInfo{
			ActorID:   &actorID,
			ActorRole: "admin",
			IPAddress: "10.0.0.5",
			UserAgent: "curl/8.0",
		},
		Entry{
			EntityType: models.EntityQuote,
			EntityID:   3,
			Action:     models.ActionValidated,
			Summary:    "Orçamento aprovado",
			Previous: map[string]any{
				"status":       "pending",
				"quote_amount": "100.00",
				"client_id":    float64(7),
			},
			Next: map[string]any{
				"status":       "approved",
				"quote_amount": "150.00",
				"client_id":    float64(7),
			},
		},
	)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if entry.ActorName == nil || *entry.ActorName != "Jane Doe" {
		t.Errorf("actor_name = %v, esperava Jane Doe", entry.ActorName)
	}
	if entry.ActorRole == nil || *entry.ActorRole != "admin" {
		t.Errorf("actor_role = %v", entry.ActorRole)
	}
	if entry.OccurredAt.IsZero() {
		t.Error("occurred_at não foi preenchido")
	}

	// só os campos que mudaram viram linhas
	if len(entry.Changes) != 2 {
		t.Fatalf("esperava 2 mudanças, veio %d", len(entry.Changes))
	}
	if entry.Changes[0].Field != "quote_amount" || entry.Changes[1].Field != "status" {
		t.Errorf("campos = %s, %s", entry.Changes[0].Field, entry.Changes[1].Field)
	}
	for _, ch := range entry.Changes {
		if ch.AuditLogID != entry.ID {
			t.Errorf("mudança órfã: %v", ch.AuditLogID)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRecorder_Record_CreatedHasNoChanges(t *testing.T) {
	db, mock := newMockDB(t)
	rec := NewRecorder(db)

	// ação de sistema: sem ator, sem lookup de usuário
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "audit_logs"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entry, err := rec.Record(
		context.Background(),
		RequestInfo{},
		Entry{
			EntityType: models.EntityReservation,
			EntityID:   12,
			Action:     models.ActionCreated,
			Summary:    "Reserva criada",
			Next:       map[string]any{"status": "pending"},
		},
	)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if entry.ActorID != nil || entry.ActorName != nil || entry.ActorRole != nil {
		t.Errorf("ação de sistema não deveria ter ator: %+v", entry)
	}
	if len(entry.Changes) != 0 {
		t.Errorf("created não deveria ter mudanças: %v", entry.Changes)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRecorder_Record_RejectsInvalidEnums(t *testing.T) {
	db, _ := newMockDB(t)
	rec := NewRecorder(db)

	_, err := rec.Record(context.Background(), RequestInfo{}, Entry{
		EntityType: "spaceship",
		EntityID:   1,
		Action:     models.ActionCreated,
	})
	if err == nil {
		t.Error("entity type inválido deveria falhar")
	}

	_, err = rec.Record(context.Background(), RequestInfo{}, Entry{
		EntityType: models.EntityQuote,
		EntityID:   1,
		Action:     "exploded",
	})
	if err == nil {
		t.Error("action inválida deveria falhar")
	}
}

func TestRecorder_Record_CancelledWithEqualSnapshots(t *testing.T) {
	db, mock := newMockDB(t)
	rec := NewRecorder(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "audit_logs"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// snapshots idênticos: um log, zero linhas de mudança
	snap := map[string]any{"status": "cancelled", "client_id": float64(2)}

	entry, err := rec.Record(context.Background(), RequestInfo{}, Entry{
		EntityType: models.EntityReservation,
		EntityID:   5,
		Action:     models.ActionCancelled,
		Summary:    "Reserva cancelada",
		Previous:   snap,
		Next:       map[string]any{"status": "cancelled", "client_id": float64(2)},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if len(entry.Changes) != 0 {
		t.Errorf("esperava zero mudanças, veio %v", entry.Changes)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRecorder_Record_ActorDeletedBetweenTokenAndWrite(t *testing.T) {
	db, mock := newMockDB(t)
	rec := NewRecorder(db)

	actorID := uint(404)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "audit_logs"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entry, err := rec.Record(
		context.Background(),
		RequestInfo{ActorID: &actorID, ActorRole: "manager"},
		Entry{
			EntityType: models.EntityUser,
			EntityID:   404,
			Action:     models.ActionUpdated,
			Summary:    "Usuário atualizado",
		},
	)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	// id e role ficam, nome não tem de onde vir
	if entry.ActorID == nil || *entry.ActorID != actorID {
		t.Errorf("actor_id = %v", entry.ActorID)
	}
	if entry.ActorName != nil {
		t.Errorf("actor_name deveria ser nil, veio %q", *entry.ActorName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
