package audit

import "github.com/RodaNovaServices01/wheel-repair-api/internal/models"

// Status de destino → ação nomeada. Qualquer outra transição vira
// o genérico "updated".
var statusActions = map[string]models.AuditAction{
	"approved":  models.ActionValidated,
	"rejected":  models.ActionRejected,
	"completed": models.ActionCompleted,
	"cancelled": models.ActionCancelled,
	"paid":      models.ActionPaid,
	"confirmed": models.ActionConfirmed,
}

// ActionForStatusChange deriva a ação de auditoria de uma transição
// de status.
func ActionForStatusChange(previous, next string) models.AuditAction {
	if previous == next {
		return models.ActionUpdated
	}
	if action, ok := statusActions[next]; ok {
		return action
	}
	return models.ActionUpdated
}
