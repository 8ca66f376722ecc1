// Package pricing turns a validated date range into a price quote from
// a unit's weekday/weekend rate pair, the holiday calendar and the
// multi-night discount table. The engine is a pure function of its
// inputs; no clock, no storage.
package pricing

import (
	"errors"
	"time"

	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/domain/shared/money"
)

var (
	ErrInvalidRange = errors.New("pricing: end date must be after start date")
	ErrInvalidRates = errors.New("pricing: rates must be positive and share a currency")
)

// Rates is a unit's nightly rate pair. The weekend rate bills nights
// starting Friday or Saturday, plus holiday nights.
type Rates struct {
	Weekday money.Money
	Weekend money.Money
}

func (r Rates) validate() error {
	if r.Weekday.Amount <= 0 || r.Weekend.Amount <= 0 {
		return ErrInvalidRates
	}
	if r.Weekday.Currency == "" || r.Weekday.Currency != r.Weekend.Currency {
		return ErrInvalidRates
	}
	return nil
}

// Quote is the derived price for a stay. All amounts are integer minor
// units; Total = Base - Discount.
type Quote struct {
	Nights   int
	Base     money.Money
	Discount money.Money
	Total    money.Money
}

// Engine computes quotes. Discounts and Holidays are configuration the
// engine consumes, not something it owns.
type Engine struct {
	Discounts DiscountPolicy
	Holidays  HolidaySet
}

// Quote prices the nights in [start, end). Each night is billed at the
// rate of the weekday its date falls on; the end date is the checkout
// morning and is never billed.
func (e Engine) Quote(rates Rates, start, end civil.Date) (Quote, error) {
	if err := rates.validate(); err != nil {
		return Quote{}, err
	}
	nights := start.DaysUntil(end)
	if nights <= 0 {
		return Quote{}, ErrInvalidRange
	}

	base := money.Zero(rates.Weekday.Currency)
	for night := start; night.Before(end); night = night.AddDays(1) {
		rate := rates.Weekday
		if e.weekendRate(night) {
			rate = rates.Weekend
		}
		sum, err := base.Add(rate)
		if err != nil {
			return Quote{}, err
		}
		base = sum
	}

	discount := e.Discounts.Discount(nights, base)
	total, err := base.Sub(discount)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Nights: nights, Base: base, Discount: discount, Total: total}, nil
}

// weekendRate reports whether the night starting on d bills at the
// weekend rate: Friday and Saturday nights, and every holiday night.
func (e Engine) weekendRate(d civil.Date) bool {
	if e.Holidays.Contains(d) {
		return true
	}
	wd := d.Weekday()
	return wd == time.Friday || wd == time.Saturday
}
