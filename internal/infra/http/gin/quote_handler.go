package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"domoreserva/internal/app/dto"
	pricingapp "domoreserva/internal/app/handlers/pricing"
	"domoreserva/internal/app/queries"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/infra/obs"
)

type QuoteHandler struct {
	Queries queries.Bus
	Metrics *obs.Metrics
}

type quoteRequest struct {
	UnitID   string     `json:"unit_id" binding:"required"`
	CheckIn  civil.Date `json:"check_in" binding:"required"`
	CheckOut civil.Date `json:"check_out" binding:"required"`
}

func (h QuoteHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Metrics.CountQuote(obs.OutcomeRejected)
		badRequest(c, err)
		return
	}
	query := pricingapp.QuotePriceQuery{
		UnitID: req.UnitID,
		Start:  req.CheckIn,
		End:    req.CheckOut,
	}
	result, err := queries.Ask[pricingapp.QuotePriceQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		h.Metrics.CountQuote(obs.OutcomeRejected)
		respondError(c, err)
		return
	}
	h.Metrics.CountQuote(obs.OutcomeOK)
	c.JSON(http.StatusOK, result)
}

var _ QuoteHTTP = QuoteHandler{}
