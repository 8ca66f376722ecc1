package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"domoreserva/internal/app/dto"
	availabilityapp "domoreserva/internal/app/handlers/availability"
	"domoreserva/internal/app/queries"
	"domoreserva/internal/domain/shared/civil"
)

type AvailabilityHandler struct {
	Queries queries.Bus
}

// Calendar serves GET /units/:id/calendar?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Missing bounds default to the widget's visible window.
func (h AvailabilityHandler) Calendar(c *gin.Context) {
	query := availabilityapp.GetCalendarQuery{UnitID: c.Param("id")}
	if raw := c.Query("from"); raw != "" {
		from, err := civil.Parse(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		query.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := civil.Parse(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		query.To = to
	}

	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.UnitCalendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
