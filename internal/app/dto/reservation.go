package dto

import (
	"time"

	"domoreserva/internal/domain/reservation"
)

// ReservationSummary is the admin view of one reservation.
type ReservationSummary struct {
	ID        string    `json:"id"`
	UnitID    string    `json:"unit_id"`
	UnitName  string    `json:"unit_name,omitempty"`
	GuestName string    `json:"guest_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	Nights    int       `json:"nights"`
	Total     MoneyDTO  `json:"total"`
	Discount  MoneyDTO  `json:"discount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ReservationCollection struct {
	Items []ReservationSummary `json:"items"`
}

func MapReservationSummary(r *reservation.Reservation, unitName string) ReservationSummary {
	return ReservationSummary{
		ID:        string(r.ID),
		UnitID:    string(r.UnitID),
		UnitName:  unitName,
		GuestName: r.Guest.Name,
		Phone:     r.Guest.Phone,
		Email:     r.Guest.Email,
		CheckIn:   r.Stay.CheckIn.String(),
		CheckOut:  r.Stay.CheckOut.String(),
		Nights:    r.Stay.Nights(),
		Total:     MapMoney(r.Quote.Total),
		Discount:  MapMoney(r.Quote.Discount),
		Status:    string(r.State),
		CreatedAt: r.CreatedAt,
	}
}
