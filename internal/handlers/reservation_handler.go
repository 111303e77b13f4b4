package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/audit"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/dto"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/httperr"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/middleware"
	ucReservation "github.com/RodaNovaServices01/wheel-repair-api/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	createUC   *ucReservation.CreateReservation
	confirmUC  *ucReservation.ConfirmReservation
	cancelUC   *ucReservation.CancelReservation
	completeUC *ucReservation.CompleteReservation
	listUC     *ucReservation.ListReservationsByDate
}

func NewReservationHandler(
	createUC *ucReservation.CreateReservation,
	confirmUC *ucReservation.ConfirmReservation,
	cancelUC *ucReservation.CancelReservation,
	completeUC *ucReservation.CompleteReservation,
	listUC *ucReservation.ListReservationsByDate,
) *ReservationHandler {
	return &ReservationHandler{
		createUC:   createUC,
		confirmUC:  confirmUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		listUC:     listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	VehicleInfo string `json:"vehicle_info"`
	WheelCount  int    `json:"wheel_count"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	mechanicID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	rv, err := h.createUC.Execute(
		c.Request.Context(),
		audit.RequestInfoFrom(c),
		ucReservation.CreateReservationInput{
			MechanicID:  mechanicID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			ServiceID:   req.ServiceID,
			VehicleInfo: req.VehicleInfo,
			WheelCount:  req.WheelCount,
			Date:        req.Date,
			Time:        req.Time,
			Notes:       req.Notes,
		},
	)
	if err != nil {
		writeReservationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rv)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *ReservationHandler) Confirm(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	rv, err := h.confirmUC.Execute(
		c.Request.Context(),
		audit.RequestInfoFrom(c),
		uint(id),
	)
	if err != nil {
		writeReservationError(c, err)
		return
	}

	c.JSON(http.StatusOK, rv)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req CancelReservationRequest
	_ = c.ShouldBindJSON(&req) // corpo opcional

	rv, err := h.cancelUC.Execute(
		c.Request.Context(),
		audit.RequestInfoFrom(c),
		uint(id),
		req.Reason,
	)
	if err != nil {
		writeReservationError(c, err)
		return
	}

	c.JSON(http.StatusOK, rv)
}

func (h *ReservationHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	rv, err := h.completeUC.Execute(
		c.Request.Context(),
		audit.RequestInfoFrom(c),
		uint(id),
	)
	if err != nil {
		writeReservationError(c, err)
		return
	}

	c.JSON(http.StatusOK, rv)
}

// ======================================================
// LIST
// ======================================================

func (h *ReservationHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Informe a data (YYYY-MM-DD).")
		return
	}

	rvs, err := h.listUC.Execute(c.Request.Context(), date)
	if err != nil {
		writeReservationError(c, err)
		return
	}

	out := make([]dto.ReservationListDTO, 0, len(rvs))
	for _, rv := range rvs {
		out = append(out, dto.ReservationListDTO{
			ID:          rv.ID,
			StartTime:   rv.StartTime,
			EndTime:     rv.EndTime,
			Status:      rv.Status,
			ClientName:  rv.Client.Name,
			ServiceName: rv.Service.Name,
			VehicleInfo: rv.VehicleInfo,
		})
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// ERRORS
// ======================================================

func writeReservationError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if ok := httperr.AsBusiness(err, &be); ok {
		switch be.Code {
		case "reservation_not_found", "service_not_found":
			httperr.NotFound(c, be.Code, "Registro não encontrado.")
		default:
			httperr.BadRequest(c, be.Code, "Operação inválida.")
		}
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno.")
}
