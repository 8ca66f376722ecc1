package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"domoreserva/internal/app/dto"
	unitsapp "domoreserva/internal/app/handlers/units"
	"domoreserva/internal/app/queries"
)

type UnitHandler struct {
	Queries queries.Bus
}

func (h UnitHandler) List(c *gin.Context) {
	result, err := queries.Ask[unitsapp.ListUnitsQuery, dto.UnitCollection](c.Request.Context(), h.Queries, unitsapp.ListUnitsQuery{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ UnitHTTP = UnitHandler{}
