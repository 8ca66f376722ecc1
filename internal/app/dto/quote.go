package dto

import "domoreserva/internal/domain/pricing"

// Quote is the price breakdown shown once a range is complete.
type Quote struct {
	Nights    int      `json:"nights"`
	BasePrice MoneyDTO `json:"base_price"`
	Discount  MoneyDTO `json:"discount"`
	Total     MoneyDTO `json:"total"`
}

func MapQuote(q pricing.Quote) Quote {
	return Quote{
		Nights:    q.Nights,
		BasePrice: MapMoney(q.Base),
		Discount:  MapMoney(q.Discount),
		Total:     MapMoney(q.Total),
	}
}
