package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/audit"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/httperr"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/httpresp"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/middleware"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

// Gestão de usuários (somente admin)
type UserHandler struct {
	db    *gorm.DB
	audit *audit.Recorder
}

func NewUserHandler(db *gorm.DB, rec *audit.Recorder) *UserHandler {
	return &UserHandler{db: db, audit: rec}
}

// --------- Requests ---------

type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Role      *string `json:"role,omitempty"`
}

// --------- Handlers ---------

func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.
		Order("id ASC").
		Find(&users).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_users"})
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_user"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Role != nil {
		switch *req.Role {
		case models.RoleAdmin, models.RoleManager, models.RoleMechanic:
		default:
			httperr.BadRequest(c, "invalid_role", "Papel inválido.")
			return
		}

		// Admin não rebaixa o próprio papel
		if actorID, ok := c.MustGet(middleware.ContextUserID).(uint); ok {
			if actorID == user.ID && *req.Role != models.RoleAdmin {
				httperr.Forbidden(c, "cannot_demote_self", "Não é possível rebaixar o próprio papel.")
				return
			}
		}
	}

	before := audit.Snapshot(&user)

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_user"})
		return
	}

	h.audit.Capture(c, audit.Entry{
		EntityType: models.EntityUser,
		EntityID:   user.ID,
		Action:     models.ActionUpdated,
		Summary:    "Usuário atualizado",
		Previous:   before,
		Next:       audit.Snapshot(&user),
	})

	c.JSON(http.StatusOK, user)
}
