package audit

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/middleware"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

// ======================================================
// ACTOR / REQUEST INFO
// ======================================================

// Quem fez a requisição e de onde. Tudo nil/vazio para ações
// de sistema (sem sessão autenticada).
type RequestInfo struct {
	ActorID   *uint
	ActorRole string
	IPAddress string
	UserAgent string
}

// RequestInfoFrom extrai o ator autenticado e a proveniência da
// requisição a partir do contexto preenchido pelo AuthMiddleware.
func RequestInfoFrom(c *gin.Context) RequestInfo {
	if c == nil {
		return RequestInfo{}
	}

	info := RequestInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			info.ActorID = &id
		}
	}
	if v, ok := c.Get(middleware.ContextUserRole); ok {
		if role, ok := v.(string); ok {
			info.ActorRole = role
		}
	}

	return info
}

// DisplayName monta o nome exibível do ator: "FirstName LastName"
// aparado; se vazio, cai para o e-mail. É a única identidade legível
// que sobrevive se o usuário for renomeado ou apagado depois.
func DisplayName(u *models.User) string {
	if u == nil {
		return ""
	}

	name := strings.TrimSpace(
		strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName),
	)
	if name == "" {
		return u.Email
	}
	return name
}
