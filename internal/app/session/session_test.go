package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"domoreserva/internal/domain/pricing"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/domain/shared/money"
)

func date(s string) civil.Date { return civil.MustParse(s) }

func testQuote(total int64) pricing.Quote {
	return pricing.Quote{
		Nights: 2,
		Base:   money.Must(total, "ARS"),
		Total:  money.Must(total, "ARS"),
	}
}

func TestOpenResetsSelectionAndQuote(t *testing.T) {
	s := New()
	s.Open("aguaribay")
	_, rev := s.Click(date("2026-06-03"))
	_, rev = s.Click(date("2026-06-05"))
	assert.True(t, s.ApplyQuote(rev, testQuote(200)))

	s.Open("espinillo")
	assert.Equal(t, "espinillo", string(s.UnitID()))
	assert.True(t, s.Selection().IsEmpty())
	_, ok := s.Quote()
	assert.False(t, ok)
}

func TestStaleQuoteReplyIsDiscarded(t *testing.T) {
	s := New()
	s.Open("aguaribay")
	s.Click(date("2026-06-03"))
	_, firstRev := s.Click(date("2026-06-05"))

	// The guest keeps clicking while the first quote request is in
	// flight; the reply for the old selection must not land.
	s.Click(date("2026-06-10"))
	_, secondRev := s.Click(date("2026-06-12"))

	assert.False(t, s.ApplyQuote(firstRev, testQuote(200)))
	_, ok := s.Quote()
	assert.False(t, ok)

	assert.True(t, s.ApplyQuote(secondRev, testQuote(400)))
	quote, ok := s.Quote()
	assert.True(t, ok)
	assert.Equal(t, int64(400), quote.Total.Amount)
}

func TestQuoteNeverAppliesToIncompleteSelection(t *testing.T) {
	s := New()
	s.Open("aguaribay")
	_, rev := s.Click(date("2026-06-03"))
	assert.False(t, s.ApplyQuote(rev, testQuote(100)))
}

func TestClickInvalidatesCachedQuote(t *testing.T) {
	s := New()
	s.Open("aguaribay")
	s.Click(date("2026-06-03"))
	_, rev := s.Click(date("2026-06-05"))
	assert.True(t, s.ApplyQuote(rev, testQuote(200)))

	s.Click(date("2026-06-08"))
	_, ok := s.Quote()
	assert.False(t, ok)
}

func TestDegradedFlag(t *testing.T) {
	s := New()
	s.Open("aguaribay")
	assert.False(t, s.Degraded())
	s.MarkDegraded()
	assert.True(t, s.Degraded())
	s.Open("aguaribay")
	assert.False(t, s.Degraded(), "reopening clears the degraded marker")
}
