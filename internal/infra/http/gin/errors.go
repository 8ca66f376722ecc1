package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	reservationapp "domoreserva/internal/app/handlers/reservation"
	domainpricing "domoreserva/internal/domain/pricing"
	domainreservation "domoreserva/internal/domain/reservation"
	"domoreserva/internal/domain/shared/money"
	domainunits "domoreserva/internal/domain/units"
)

// respondError maps domain errors onto HTTP statuses. Conflicts carry
// the occupied nights so the widget can repaint them.
func respondError(c *gin.Context, err error) {
	var conflict *reservationapp.ConflictError
	if errors.As(err, &conflict) {
		nights := make([]string, 0, len(conflict.Dates))
		for _, d := range conflict.Dates {
			nights = append(nights, d.String())
		}
		c.JSON(http.StatusConflict, gin.H{
			"error":           "selected nights are no longer available",
			"conflict_nights": nights,
		})
		return
	}

	switch {
	case errors.Is(err, domainunits.ErrUnitNotFound),
		errors.Is(err, domainreservation.ErrNotFound),
		errors.Is(err, domainpricing.ErrHolidayNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domainpricing.ErrHolidayExists),
		errors.Is(err, domainreservation.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domainreservation.ErrInvalidStay),
		errors.Is(err, domainreservation.ErrCheckInInPast),
		errors.Is(err, domainreservation.ErrGuestInvalid),
		errors.Is(err, domainpricing.ErrInvalidRange),
		errors.Is(err, domainpricing.ErrInvalidRates),
		errors.Is(err, domainpricing.ErrInvalidTier),
		errors.Is(err, domainunits.ErrInvalidRates),
		errors.Is(err, domainunits.ErrRateCurrencies),
		errors.Is(err, money.ErrInvalidCurrency),
		errors.Is(err, money.ErrCurrencyMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
