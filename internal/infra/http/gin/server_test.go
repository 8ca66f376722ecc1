package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domoreserva/internal/app/commands"
	availabilityapp "domoreserva/internal/app/handlers/availability"
	pricingapp "domoreserva/internal/app/handlers/pricing"
	reservationapp "domoreserva/internal/app/handlers/reservation"
	unitsapp "domoreserva/internal/app/handlers/units"
	"domoreserva/internal/app/middleware"
	"domoreserva/internal/app/queries"
	"domoreserva/internal/infra/config"
	"domoreserva/internal/infra/obs"
	"domoreserva/internal/infra/security"
	"domoreserva/internal/infra/storage/memory"
)

const testAdminPassword = "hunter22"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	units := memory.NewUnitRepository()
	holidays := memory.NewHolidayRepository()
	require.NoError(t, memory.Seed(context.Background(), units, holidays, "ARS"))
	reservations := memory.NewReservationRepository()
	discounts := memory.NewDiscountRepository()

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, unitsapp.ListUnitsQuery{}.Key(), &unitsapp.ListUnitsHandler{Units: units})
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{Units: units, Reservations: reservations})
	queries.RegisterHandler(queryBus, pricingapp.QuotePriceQuery{}.Key(), &pricingapp.QuotePriceHandler{Units: units, Holidays: holidays, Discounts: discounts})
	queries.RegisterHandler(queryBus, reservationapp.ListReservationsQuery{}.Key(), &reservationapp.ListReservationsHandler{Reservations: reservations, Units: units})
	queries.RegisterHandler(queryBus, pricingapp.ListHolidaysQuery{}.Key(), &pricingapp.ListHolidaysHandler{Holidays: holidays})
	queries.RegisterHandler(queryBus, pricingapp.GetDiscountsQuery{}.Key(), &pricingapp.GetDiscountsHandler{Discounts: discounts})

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, reservationapp.CreateReservationCommand{}.Key(), &reservationapp.CreateReservationHandler{
		Units:        units,
		Reservations: reservations,
		Holidays:     holidays,
		Discounts:    discounts,
	})
	commands.RegisterHandler(commandBus, reservationapp.CancelReservationCommand{}.Key(), &reservationapp.CancelReservationHandler{Reservations: reservations})
	commands.RegisterHandler(commandBus, unitsapp.UpdateUnitCommand{}.Key(), &unitsapp.UpdateUnitHandler{Units: units})
	commands.RegisterHandler(commandBus, pricingapp.AddHolidayCommand{}.Key(), &pricingapp.AddHolidayHandler{Holidays: holidays})
	commands.RegisterHandler(commandBus, pricingapp.RemoveHolidayCommand{}.Key(), &pricingapp.RemoveHolidayHandler{Holidays: holidays})
	commands.RegisterHandler(commandBus, pricingapp.UpdateDiscountsCommand{}.Key(), &pricingapp.UpdateDiscountsHandler{Discounts: discounts})

	wrappedCommands := middleware.ChainCommands(commandBus,
		middleware.Idempotency(memory.NewIdempotencyStore(0), nil),
	)

	credential, err := security.NewAdminCredential(testAdminPassword, 4)
	require.NoError(t, err)

	metrics := obs.NewMetricsOn(prometheus.NewRegistry())
	handlers := Handlers{
		Units:        UnitHandler{Queries: queryBus},
		Availability: AvailabilityHandler{Queries: queryBus},
		Quote:        QuoteHandler{Queries: queryBus, Metrics: metrics},
		Reservation:  ReservationHandler{Commands: wrappedCommands, Metrics: metrics},
		Metrics:      metrics,
		Admin: AdminHandler{
			Commands:   wrappedCommands,
			Queries:    queryBus,
			Credential: credential,
			Sessions:   security.NewSessionStore(0),
		},
	}

	cfg := config.Config{Env: "test", HTTPAddr: ":0"}
	server := NewServer(cfg, obs.Middleware{}, obs.HealthHandlers{}, handlers)
	return server.Handler
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealthEndpoints(t *testing.T) {
	handler := newTestServer(t)
	assert.Equal(t, http.StatusOK, doJSON(t, handler, http.MethodGet, "/livez", nil, nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, handler, http.MethodGet, "/readyz", nil, nil).Code)
}

func TestListUnits(t *testing.T) {
	handler := newTestServer(t)
	rec := doJSON(t, handler, http.MethodGet, "/api/v1/units", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Items []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			WeekdayRate struct {
				Amount   int64  `json:"amount"`
				Currency string `json:"currency"`
			} `json:"weekday_rate"`
		} `json:"items"`
	}
	decode(t, rec, &out)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "aguaribay", out.Items[0].ID)
	assert.Equal(t, int64(75000), out.Items[0].WeekdayRate.Amount)
	assert.Equal(t, "ARS", out.Items[0].WeekdayRate.Currency)
}

func TestCalendarEndpoint(t *testing.T) {
	handler := newTestServer(t)
	rec := doJSON(t, handler, http.MethodGet, "/api/v1/units/aguaribay/calendar?from=2030-06-01&to=2030-06-10", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		UnitID string `json:"unit_id"`
		Days   []struct {
			Date   string `json:"date"`
			Status string `json:"status"`
		} `json:"days"`
	}
	decode(t, rec, &out)
	assert.Equal(t, "aguaribay", out.UnitID)
	assert.Len(t, out.Days, 10)

	assert.Equal(t, http.StatusNotFound, doJSON(t, handler, http.MethodGet, "/api/v1/units/nope/calendar", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, handler, http.MethodGet, "/api/v1/units/aguaribay/calendar?from=garbage", nil, nil).Code)
}

func TestQuoteEndpoint(t *testing.T) {
	handler := newTestServer(t)
	body := map[string]any{
		"unit_id":   "aguaribay",
		"check_in":  "2030-06-03",
		"check_out": "2030-06-05",
	}
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/quotes", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Nights int `json:"nights"`
		Total  struct {
			Amount int64 `json:"amount"`
		} `json:"total"`
	}
	decode(t, rec, &out)
	assert.Equal(t, 2, out.Nights)
	// 2 weekday nights at 75000 minus the 5% two-night discount.
	assert.Equal(t, int64(142500), out.Total.Amount)

	body["check_out"] = "2030-06-03"
	assert.Equal(t, http.StatusBadRequest, doJSON(t, handler, http.MethodPost, "/api/v1/quotes", body, nil).Code)
}

func reservationBody(unit, in, out string) map[string]any {
	return map[string]any{
		"unit_id":   unit,
		"check_in":  in,
		"check_out": out,
		"name":      "Ana García",
		"phone":     "+5493511234567",
		"email":     "ana@example.com",
	}
}

func TestReservationLifecycle(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", reservationBody("aguaribay", "2030-06-03", "2030-06-06"), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ReservationID string `json:"reservation_id"`
	}
	decode(t, rec, &created)
	require.NotEmpty(t, created.ReservationID)

	t.Run("overlap rejected with conflict nights", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", reservationBody("aguaribay", "2030-06-04", "2030-06-08"), nil)
		require.Equal(t, http.StatusConflict, rec.Code)
		var out struct {
			ConflictNights []string `json:"conflict_nights"`
		}
		decode(t, rec, &out)
		assert.Equal(t, []string{"2030-06-04", "2030-06-05"}, out.ConflictNights)
	})

	t.Run("back to back accepted", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", reservationBody("aguaribay", "2030-06-06", "2030-06-08"), nil)
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("missing phone rejected", func(t *testing.T) {
		body := reservationBody("espinillo", "2030-06-03", "2030-06-06")
		delete(body, "phone")
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReservationIdempotencyKeyReplays(t *testing.T) {
	handler := newTestServer(t)
	headers := map[string]string{"Idempotency-Key": "widget-submit-1"}
	body := reservationBody("eucalipto", "2030-06-10", "2030-06-12")

	first := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", body, headers)
	require.Equal(t, http.StatusCreated, first.Code)
	second := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", body, headers)
	require.Equal(t, http.StatusCreated, second.Code)

	var a, b struct {
		ReservationID string `json:"reservation_id"`
	}
	decode(t, first, &a)
	decode(t, second, &b)
	assert.Equal(t, a.ReservationID, b.ReservationID, "retry must not create a second reservation")
}

func TestMetricsReportOutcomes(t *testing.T) {
	handler := newTestServer(t)

	quote := map[string]any{"unit_id": "aguaribay", "check_in": "2030-06-03", "check_out": "2030-06-05"}
	require.Equal(t, http.StatusOK, doJSON(t, handler, http.MethodPost, "/api/v1/quotes", quote, nil).Code)
	quote["check_out"] = "2030-06-03"
	require.Equal(t, http.StatusBadRequest, doJSON(t, handler, http.MethodPost, "/api/v1/quotes", quote, nil).Code)

	require.Equal(t, http.StatusCreated, doJSON(t, handler, http.MethodPost, "/api/v1/reservations", reservationBody("aguaribay", "2030-06-03", "2030-06-06"), nil).Code)
	require.Equal(t, http.StatusConflict, doJSON(t, handler, http.MethodPost, "/api/v1/reservations", reservationBody("aguaribay", "2030-06-04", "2030-06-07"), nil).Code)

	scrape := doJSON(t, handler, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, scrape.Code)
	body := scrape.Body.String()
	assert.Contains(t, body, `domoreserva_quotes_total{outcome="ok"} 1`)
	assert.Contains(t, body, `domoreserva_quotes_total{outcome="rejected"} 1`)
	assert.Contains(t, body, `domoreserva_reservations_total{outcome="confirmed"} 1`)
	assert.Contains(t, body, `domoreserva_reservations_total{outcome="conflict"} 1`)
	assert.Contains(t, body, "domoreserva_http_request_duration_seconds")
}

func adminLogin(t *testing.T, handler http.Handler) map[string]string {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/admin/login", map[string]string{"password": testAdminPassword}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Token string `json:"token"`
	}
	decode(t, rec, &out)
	return map[string]string{"Authorization": "Bearer " + out.Token}
}

func TestAdminAuth(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/admin/login", map[string]string{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, doJSON(t, handler, http.MethodGet, "/api/v1/admin/reservations", nil, nil).Code)

	auth := adminLogin(t, handler)
	assert.Equal(t, http.StatusOK, doJSON(t, handler, http.MethodGet, "/api/v1/admin/reservations", nil, auth).Code)

	assert.Equal(t, http.StatusNoContent, doJSON(t, handler, http.MethodPost, "/api/v1/admin/logout", nil, auth).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, handler, http.MethodGet, "/api/v1/admin/reservations", nil, auth).Code)
}

func TestAdminCancelFreesNights(t *testing.T) {
	handler := newTestServer(t)
	auth := adminLogin(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", reservationBody("aguaribay", "2030-06-03", "2030-06-06"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ReservationID string `json:"reservation_id"`
	}
	decode(t, rec, &created)

	path := fmt.Sprintf("/api/v1/admin/reservations/%s", created.ReservationID)
	assert.Equal(t, http.StatusOK, doJSON(t, handler, http.MethodDelete, path, nil, auth).Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/reservations", reservationBody("aguaribay", "2030-06-03", "2030-06-06"), nil)
	assert.Equal(t, http.StatusCreated, rec.Code, "cancelled nights are bookable again")
}

func TestAdminHolidaysAndDiscounts(t *testing.T) {
	handler := newTestServer(t)
	auth := adminLogin(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/admin/holidays", map[string]string{"date": "2030-08-17", "name": "San Martín"}, auth)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	dup := doJSON(t, handler, http.MethodPost, "/api/v1/admin/holidays", map[string]string{"date": "2030-08-17", "name": "duplicate"}, auth)
	assert.Equal(t, http.StatusConflict, dup.Code)

	rec = doJSON(t, handler, http.MethodPut, "/api/v1/admin/discounts", map[string]any{
		"tiers": []map[string]int{{"min_nights": 4, "percent": 12}},
	}, auth)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	bad := doJSON(t, handler, http.MethodPut, "/api/v1/admin/discounts", map[string]any{
		"tiers": []map[string]int{{"min_nights": 0, "percent": 12}},
	}, auth)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestAdminUpdateUnitRates(t *testing.T) {
	handler := newTestServer(t)
	auth := adminLogin(t, handler)

	rec := doJSON(t, handler, http.MethodPut, "/api/v1/admin/units/aguaribay", map[string]any{
		"weekday_rate": map[string]any{"amount": 80000, "currency": "ARS"},
		"weekend_rate": map[string]any{"amount": 120000, "currency": "ARS"},
	}, auth)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	quote := doJSON(t, handler, http.MethodPost, "/api/v1/quotes", map[string]any{
		"unit_id":   "aguaribay",
		"check_in":  "2030-06-03",
		"check_out": "2030-06-04",
	}, nil)
	require.Equal(t, http.StatusOK, quote.Code)
	var out struct {
		Total struct {
			Amount int64 `json:"amount"`
		} `json:"total"`
	}
	decode(t, quote, &out)
	assert.Equal(t, int64(80000), out.Total.Amount)

	t.Run("bad currency rejected", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPut, "/api/v1/admin/units/aguaribay", map[string]any{
			"weekday_rate": map[string]any{"amount": 80000, "currency": "PESOS"},
		}, auth)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})
}

func TestIdempotentRetryAfterConflictClears(t *testing.T) {
	handler := newTestServer(t)
	auth := adminLogin(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", reservationBody("aguaribay", "2030-07-01", "2030-07-03"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var blocking struct {
		ReservationID string `json:"reservation_id"`
	}
	decode(t, rec, &blocking)

	headers := map[string]string{"Idempotency-Key": "widget-retry-1"}
	body := reservationBody("aguaribay", "2030-07-02", "2030-07-04")
	require.Equal(t, http.StatusConflict, doJSON(t, handler, http.MethodPost, "/api/v1/reservations", body, headers).Code)

	path := fmt.Sprintf("/api/v1/admin/reservations/%s", blocking.ReservationID)
	require.Equal(t, http.StatusOK, doJSON(t, handler, http.MethodDelete, path, nil, auth).Code)

	retry := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", body, headers)
	assert.Equal(t, http.StatusCreated, retry.Code, "a failed attempt must not pin its key to the failure")
}
