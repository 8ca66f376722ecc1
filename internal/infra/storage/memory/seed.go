package memory

import (
	"context"
	"fmt"

	domainpricing "domoreserva/internal/domain/pricing"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/domain/shared/money"
	domainunits "domoreserva/internal/domain/units"
)

// Seed loads the stock catalog and holiday calendar so a fresh memory
// store serves a working widget out of the box.
func Seed(ctx context.Context, units *UnitRepository, holidays *HolidayRepository, currency string) error {
	if err := seedUnits(ctx, units, currency); err != nil {
		return err
	}
	return seedHolidays(ctx, holidays)
}

func seedUnits(ctx context.Context, repo *UnitRepository, currency string) error {
	type fixture struct {
		id, name, description string
	}
	fixtures := []fixture{
		{"aguaribay", "Aguaribay", "Domo para dos personas con vista a la arboleda."},
		{"espinillo", "Espinillo", "Domo para dos personas junto al sendero del arroyo."},
		{"eucalipto", "Eucalipto", "Domo para dos personas al borde del monte de eucaliptos."},
	}
	weekday, err := money.New(75000, currency)
	if err != nil {
		return err
	}
	weekend, err := money.New(110000, currency)
	if err != nil {
		return err
	}
	for _, f := range fixtures {
		unit, err := domainunits.New(domainunits.CreateParams{
			ID:          domainunits.UnitID(f.id),
			Name:        f.name,
			Description: f.description,
			Capacity:    2,
			WeekdayRate: weekday,
			WeekendRate: weekend,
		})
		if err != nil {
			return fmt.Errorf("seed unit %s: %w", f.id, err)
		}
		if err := repo.Save(ctx, unit); err != nil {
			return err
		}
	}
	return nil
}

func seedHolidays(ctx context.Context, repo *HolidayRepository) error {
	// Argentine national holidays, 2026.
	entries := []struct{ date, name string }{
		{"2026-01-01", "Año Nuevo"},
		{"2026-02-16", "Carnaval"},
		{"2026-02-17", "Carnaval"},
		{"2026-03-24", "Día de la Memoria"},
		{"2026-04-02", "Día del Veterano y de los Caídos en Malvinas"},
		{"2026-04-03", "Viernes Santo"},
		{"2026-05-01", "Día del Trabajador"},
		{"2026-05-25", "Revolución de Mayo"},
		{"2026-06-20", "Paso a la Inmortalidad del Gral. Belgrano"},
		{"2026-07-09", "Día de la Independencia"},
		{"2026-12-08", "Inmaculada Concepción"},
		{"2026-12-25", "Navidad"},
	}
	for _, e := range entries {
		date, err := civil.Parse(e.date)
		if err != nil {
			return fmt.Errorf("seed holiday %s: %w", e.date, err)
		}
		holiday := domainpricing.Holiday{
			ID:   "seed-" + e.date,
			Date: date,
			Name: e.name,
		}
		if err := repo.Add(ctx, holiday); err != nil {
			return err
		}
	}
	return nil
}
