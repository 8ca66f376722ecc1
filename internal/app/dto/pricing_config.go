package dto

import "domoreserva/internal/domain/pricing"

type HolidayDTO struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

type HolidayCollection struct {
	Items []HolidayDTO `json:"items"`
}

func MapHoliday(h pricing.Holiday) HolidayDTO {
	return HolidayDTO{ID: h.ID, Date: h.Date.String(), Name: h.Name}
}

type DiscountTierDTO struct {
	MinNights int `json:"min_nights"`
	Percent   int `json:"percent"`
}

type DiscountTable struct {
	Tiers []DiscountTierDTO `json:"tiers"`
}

func MapDiscountTable(p pricing.DiscountPolicy) DiscountTable {
	table := DiscountTable{}
	for _, t := range p.Tiers() {
		table.Tiers = append(table.Tiers, DiscountTierDTO{MinNights: t.MinNights, Percent: t.Percent})
	}
	return table
}
