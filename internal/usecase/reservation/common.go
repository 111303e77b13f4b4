package reservation

import (
	"context"
	"log"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/audit"
)

// Falha de auditoria é logada e engolida: a mutação de negócio já
// aconteceu e não volta atrás por causa do log.
func record(
	ctx context.Context,
	rec *audit.Recorder,
	info audit.RequestInfo,
	e audit.Entry,
) {
	if _, err := rec.Record(ctx, info, e); err != nil {
		log.Printf("audit: falha ao registrar %s/%d (%s): %v",
			e.EntityType, e.EntityID, e.Action, err)
	}
}
