package pricing

import (
	"context"
	"log/slog"

	"domoreserva/internal/app/dto"
	"domoreserva/internal/app/queries"
	domainpricing "domoreserva/internal/domain/pricing"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/domain/units"
)

const quotePriceKey = "pricing.quote"

// QuotePriceQuery prices a candidate stay.
type QuotePriceQuery struct {
	UnitID string
	Start  civil.Date
	End    civil.Date
}

func (q QuotePriceQuery) Key() string { return quotePriceKey }

type QuotePriceHandler struct {
	Units     units.Repository
	Holidays  domainpricing.HolidayRepository
	Discounts domainpricing.DiscountRepository
	Logger    *slog.Logger
}

func (h *QuotePriceHandler) Handle(ctx context.Context, query QuotePriceQuery) (dto.Quote, error) {
	unit, err := h.Units.ByID(ctx, units.UnitID(query.UnitID))
	if err != nil {
		return dto.Quote{}, err
	}
	engine := LoadEngine(ctx, h.Holidays, h.Discounts, h.logger())
	quote, err := engine.Quote(domainpricing.Rates{
		Weekday: unit.WeekdayRate,
		Weekend: unit.WeekendRate,
	}, query.Start, query.End)
	if err != nil {
		return dto.Quote{}, err
	}
	return dto.MapQuote(quote), nil
}

func (h *QuotePriceHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

var _ queries.Handler[QuotePriceQuery, dto.Quote] = (*QuotePriceHandler)(nil)

// LoadEngine assembles a pricing engine from the stored holiday
// calendar and discount table. Either store failing degrades to the
// defaults rather than blocking the quote: a missing holiday list only
// risks undercharging a weekday holiday.
func LoadEngine(ctx context.Context, holidays domainpricing.HolidayRepository, discounts domainpricing.DiscountRepository, logger *slog.Logger) domainpricing.Engine {
	engine := domainpricing.Engine{Discounts: domainpricing.DefaultDiscountPolicy()}
	if holidays != nil {
		list, err := holidays.List(ctx)
		if err != nil {
			logger.Warn("holiday calendar unavailable, pricing without holidays", "error", err)
		} else {
			engine.Holidays = domainpricing.NewHolidaySet(list)
		}
	}
	if discounts != nil {
		policy, err := discounts.Policy(ctx)
		if err != nil {
			logger.Warn("discount table unavailable, using default tiers", "error", err)
		} else {
			engine.Discounts = policy
		}
	}
	return engine
}
