package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

func auditLogColumns() []string {
	return []string{
		"id", "entity_type", "entity_id", "action",
		"actor_id", "actor_role", "actor_name",
		"summary", "ip_address", "user_agent", "occurred_at",
	}
}

func TestStore_List_FiltersAndTotal(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db)

	logID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE entity_type = \$1 AND action = \$2`).
		WithArgs("invoice", "paid").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE entity_type = \$1 AND action = \$2 ORDER BY occurred_at DESC`).
		WillReturnRows(sqlmock.NewRows(auditLogColumns()).
			AddRow(logID.String(), "invoice", 42, "paid",
				nil, "manager", "Jane Doe",
				"Fatura marcada como paga", "10.0.0.5", "curl/8.0", now))

	mock.ExpectQuery(`SELECT \* FROM "audit_log_changes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "audit_log_id", "field", "previous_value", "new_value"}).
			AddRow(uuid.New().String(), logID.String(), "status", []byte(`"issued"`), []byte(`"paid"`)))

	entityType := models.EntityInvoice
	action := models.ActionPaid

	logs, total, err := store.List(context.Background(), Filters{
		EntityType: &entityType,
		Action:     &action,
		Limit:      2,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	// total conta ANTES da paginação
	if total != 7 {
		t.Errorf("total = %d, esperava 7", total)
	}
	if len(logs) != 1 {
		t.Fatalf("esperava 1 log na página, veio %d", len(logs))
	}
	if logs[0].Action != models.ActionPaid || logs[0].EntityType != models.EntityInvoice {
		t.Errorf("log inesperado: %+v", logs[0])
	}
	if len(logs[0].Changes) != 1 || logs[0].Changes[0].Field != "status" {
		t.Errorf("mudanças não vieram junto: %+v", logs[0].Changes)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestStore_List_DateRange(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE occurred_at >= \$1 AND occurred_at <= \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE occurred_at >= \$1 AND occurred_at <= \$2 ORDER BY occurred_at DESC`).
		WillReturnRows(sqlmock.NewRows(auditLogColumns()))

	logs, total, err := store.List(context.Background(), Filters{
		Start: &start,
		End:   &end,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 || len(logs) != 0 {
		t.Errorf("esperava resultado vazio, veio total=%d len=%d", total, len(logs))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestStore_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery(`SELECT \* FROM "audit_logs"`).
		WillReturnRows(sqlmock.NewRows(auditLogColumns()))

	_, err := store.Get(context.Background(), uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("esperava ErrRecordNotFound, veio %v", err)
	}
}

func TestStore_Get_LiveActorJoin(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db)

	logID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "audit_logs"`).
		WillReturnRows(sqlmock.NewRows(auditLogColumns()).
			AddRow(logID.String(), "quote", 3, "validated",
				9, "admin", "Jane Doe",
				"Orçamento aprovado", nil, nil, now))

	// preload do ator vivo (perfil atual), separado do snapshot congelado
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "role"}).
			AddRow(9, "Janet", "Doe-Smith", "janet@x.com", "admin"))

	mock.ExpectQuery(`SELECT \* FROM "audit_log_changes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "audit_log_id", "field", "previous_value", "new_value"}))

	entry, err := store.Get(context.Background(), logID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// join vivo reflete o perfil atual…
	if entry.Actor == nil || entry.Actor.FirstName != "Janet" {
		t.Errorf("ator vivo inesperado: %+v", entry.Actor)
	}
	// …o snapshot segue sendo a verdade histórica
	if entry.ActorName == nil || *entry.ActorName != "Jane Doe" {
		t.Errorf("actor_name congelado = %v", entry.ActorName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestStore_EntityHistory_MostRecentFirst(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db)

	older := uuid.New()
	newer := uuid.New()
	t1 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE entity_type = \$1 AND entity_id = \$2 ORDER BY occurred_at DESC`).
		WithArgs("quote", 3).
		WillReturnRows(sqlmock.NewRows(auditLogColumns()).
			AddRow(newer.String(), "quote", 3, "validated", nil, nil, nil, "Orçamento aprovado", nil, nil, t2).
			AddRow(older.String(), "quote", 3, "created", nil, nil, nil, "Orçamento criado", nil, nil, t1))

	mock.ExpectQuery(`SELECT \* FROM "audit_log_changes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "audit_log_id", "field", "previous_value", "new_value"}))

	logs, err := store.EntityHistory(context.Background(), models.EntityQuote, 3)
	if err != nil {
		t.Fatalf("EntityHistory: %v", err)
	}

	if len(logs) != 2 {
		t.Fatalf("esperava 2 logs, veio %d", len(logs))
	}
	if !logs[0].OccurredAt.After(logs[1].OccurredAt) {
		t.Errorf("histórico fora de ordem: %v antes de %v",
			logs[0].OccurredAt, logs[1].OccurredAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
