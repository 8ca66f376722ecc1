package units

import (
	"context"
	"errors"
	"strings"

	"domoreserva/internal/domain/shared/money"
)

var (
	ErrUnitNotFound   = errors.New("units: not found")
	ErrNameRequired   = errors.New("units: name is required")
	ErrInvalidCap     = errors.New("units: capacity must be positive")
	ErrInvalidRates   = errors.New("units: nightly rates must be positive")
	ErrRateCurrencies = errors.New("units: weekday and weekend rates must share a currency")
)

type UnitID string

// Unit is a rentable domo. Reference data: loaded once, mutated only
// through the admin surface.
type Unit struct {
	ID          UnitID
	Name        string
	Description string
	Capacity    int
	WeekdayRate money.Money
	WeekendRate money.Money
	PhotoURL    string
}

type CreateParams struct {
	ID          UnitID
	Name        string
	Description string
	Capacity    int
	WeekdayRate money.Money
	WeekendRate money.Money
	PhotoURL    string
}

// New validates and builds a Unit.
func New(params CreateParams) (*Unit, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if params.Capacity <= 0 {
		return nil, ErrInvalidCap
	}
	if err := validateRates(params.WeekdayRate, params.WeekendRate); err != nil {
		return nil, err
	}
	return &Unit{
		ID:          params.ID,
		Name:        params.Name,
		Description: params.Description,
		Capacity:    params.Capacity,
		WeekdayRate: params.WeekdayRate,
		WeekendRate: params.WeekendRate,
		PhotoURL:    params.PhotoURL,
	}, nil
}

// UpdateRates replaces the nightly rate pair.
func (u *Unit) UpdateRates(weekday, weekend money.Money) error {
	if err := validateRates(weekday, weekend); err != nil {
		return err
	}
	u.WeekdayRate = weekday
	u.WeekendRate = weekend
	return nil
}

// UpdateDescription replaces the card description.
func (u *Unit) UpdateDescription(description string) {
	u.Description = description
}

// SetPhotoURL points the card at a new photo.
func (u *Unit) SetPhotoURL(url string) {
	u.PhotoURL = url
}

func validateRates(weekday, weekend money.Money) error {
	if weekday.Amount <= 0 || weekend.Amount <= 0 {
		return ErrInvalidRates
	}
	if weekday.Currency != weekend.Currency {
		return ErrRateCurrencies
	}
	return nil
}

// Repository gives access to the unit catalog.
type Repository interface {
	ByID(ctx context.Context, id UnitID) (*Unit, error)
	List(ctx context.Context) ([]*Unit, error)
	Save(ctx context.Context, unit *Unit) error
}
