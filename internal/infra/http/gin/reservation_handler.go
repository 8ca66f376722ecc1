package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"domoreserva/internal/app/commands"
	reservationapp "domoreserva/internal/app/handlers/reservation"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/infra/obs"
)

type ReservationHandler struct {
	Commands commands.Bus
	Metrics  *obs.Metrics
}

type createReservationRequest struct {
	UnitID   string     `json:"unit_id" binding:"required"`
	CheckIn  civil.Date `json:"check_in" binding:"required"`
	CheckOut civil.Date `json:"check_out" binding:"required"`
	Name     string     `json:"name" binding:"required"`
	Phone    string     `json:"phone" binding:"required"`
	Email    string     `json:"email"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Metrics.CountReservation(obs.OutcomeRejected)
		badRequest(c, err)
		return
	}
	cmd := reservationapp.CreateReservationCommand{
		CommandID:       uuid.NewString(),
		UnitID:          req.UnitID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[reservationapp.CreateReservationCommand, *reservationapp.CreateReservationResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		h.Metrics.CountReservation(reservationOutcome(err))
		respondError(c, err)
		return
	}
	h.Metrics.CountReservation(obs.OutcomeConfirmed)
	c.JSON(http.StatusCreated, result)
}

func reservationOutcome(err error) string {
	var conflict *reservationapp.ConflictError
	if errors.As(err, &conflict) {
		return obs.OutcomeConflict
	}
	return obs.OutcomeRejected
}

var _ ReservationHTTP = ReservationHandler{}
