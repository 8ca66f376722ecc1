package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domoreserva/internal/domain/shared/civil"
)

func date(s string) civil.Date { return civil.MustParse(s) }

func TestBlockMarksNightsAndBoundaries(t *testing.T) {
	cal := NewCalendar("aguaribay")
	require.NoError(t, cal.Block(date("2026-06-04"), date("2026-06-06")))

	assert.Equal(t, []civil.Date{date("2026-06-04"), date("2026-06-05")}, cal.OccupiedNights())
	assert.Equal(t, []civil.Date{date("2026-06-04")}, cal.CheckinDates())
	assert.Equal(t, []civil.Date{date("2026-06-06")}, cal.CheckoutDates())
}

func TestBlockRejectsInvalidRange(t *testing.T) {
	cal := NewCalendar("aguaribay")
	assert.ErrorIs(t, cal.Block(date("2026-06-04"), date("2026-06-04")), ErrInvalidRange)
	assert.ErrorIs(t, cal.Block(date("2026-06-06"), date("2026-06-04")), ErrInvalidRange)
}

func TestClassify(t *testing.T) {
	today := date("2026-06-01")
	cal := NewCalendar("aguaribay")
	require.NoError(t, cal.Block(date("2026-06-04"), date("2026-06-06")))
	require.NoError(t, cal.Block(date("2026-06-06"), date("2026-06-08")))

	tests := []struct {
		name string
		d    string
		want DayStatus
	}{
		{"before today", "2026-05-31", StatusPast},
		{"untouched", "2026-06-03", StatusFree},
		{"first stay checkin", "2026-06-04", StatusCheckin},
		{"occupied middle night", "2026-06-05", StatusOccupied},
		{"shared boundary", "2026-06-06", StatusCheckinCheckout},
		{"final checkout", "2026-06-08", StatusCheckout},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cal.Classify(date(tc.d), today))
		})
	}
}

func TestClassifyPastWinsOverBoundary(t *testing.T) {
	cal := NewCalendar("aguaribay")
	require.NoError(t, cal.Block(date("2026-06-04"), date("2026-06-06")))
	assert.Equal(t, StatusPast, cal.Classify(date("2026-06-04"), date("2026-06-10")))
}

func TestClassifyIsStable(t *testing.T) {
	today := date("2026-06-01")
	cal := NewCalendar("aguaribay")
	require.NoError(t, cal.Block(date("2026-06-04"), date("2026-06-06")))

	first := cal.Classify(date("2026-06-05"), today)
	assert.Equal(t, first, cal.Classify(date("2026-06-05"), today))
}

func TestSelectable(t *testing.T) {
	assert.False(t, StatusPast.Selectable())
	for _, s := range []DayStatus{StatusFree, StatusOccupied, StatusCheckin, StatusCheckout, StatusCheckinCheckout} {
		assert.True(t, s.Selectable(), s.String())
	}
}

func TestConflicts(t *testing.T) {
	cal := NewCalendar("aguaribay")
	require.NoError(t, cal.Block(date("2026-06-04"), date("2026-06-06")))

	t.Run("clear range", func(t *testing.T) {
		info, err := cal.Conflicts(date("2026-06-01"), date("2026-06-04"))
		require.NoError(t, err)
		assert.False(t, info.HasConflict())
	})

	t.Run("overlapping night reported", func(t *testing.T) {
		info, err := cal.Conflicts(date("2026-06-03"), date("2026-06-05"))
		require.NoError(t, err)
		assert.Equal(t, []civil.Date{date("2026-06-04")}, info.Dates)
	})

	t.Run("starting on a checkout day is allowed", func(t *testing.T) {
		info, err := cal.Conflicts(date("2026-06-06"), date("2026-06-09"))
		require.NoError(t, err)
		assert.False(t, info.HasConflict())
	})

	t.Run("ending on a checkin day is allowed", func(t *testing.T) {
		info, err := cal.Conflicts(date("2026-06-02"), date("2026-06-04"))
		require.NoError(t, err)
		assert.False(t, info.HasConflict())
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := cal.Conflicts(date("2026-06-05"), date("2026-06-05"))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}
