package pricing

import (
	"context"
	"errors"
	"sort"

	"domoreserva/internal/domain/shared/money"
)

var ErrInvalidTier = errors.New("pricing: discount tier must have nights >= 1 and percent in [0,100]")

// DiscountTier grants Percent off the base price to stays of at least
// MinNights nights.
type DiscountTier struct {
	MinNights int
	Percent   int
}

// DiscountPolicy is a threshold table: the highest tier the stay
// reaches wins. The zero value grants no discount.
type DiscountPolicy struct {
	tiers []DiscountTier
}

// NewDiscountPolicy validates the tiers and keeps them sorted by
// threshold.
func NewDiscountPolicy(tiers ...DiscountTier) (DiscountPolicy, error) {
	out := make([]DiscountTier, 0, len(tiers))
	for _, t := range tiers {
		if t.MinNights < 1 || t.Percent < 0 || t.Percent > 100 {
			return DiscountPolicy{}, ErrInvalidTier
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MinNights < out[j].MinNights })
	return DiscountPolicy{tiers: out}, nil
}

// DefaultDiscountPolicy is the stock table: 5% from 2 nights, 10% from
// 3, 15% from 5 and 20% from a week.
func DefaultDiscountPolicy() DiscountPolicy {
	p, _ := NewDiscountPolicy(
		DiscountTier{MinNights: 2, Percent: 5},
		DiscountTier{MinNights: 3, Percent: 10},
		DiscountTier{MinNights: 5, Percent: 15},
		DiscountTier{MinNights: 7, Percent: 20},
	)
	return p
}

// Discount returns the amount off for a stay of the given length.
// Always within [0, base].
func (p DiscountPolicy) Discount(nights int, base money.Money) money.Money {
	pct := 0
	for _, t := range p.tiers {
		if nights >= t.MinNights {
			pct = t.Percent
		}
	}
	if pct == 0 || base.Amount <= 0 {
		return money.Zero(base.Currency)
	}
	d := base.Percent(int64(pct))
	if d.Amount > base.Amount {
		return base
	}
	return d
}

// Tiers returns a copy of the table in ascending threshold order.
func (p DiscountPolicy) Tiers() []DiscountTier {
	return append([]DiscountTier(nil), p.tiers...)
}

// DiscountRepository persists the admin-editable discount table.
type DiscountRepository interface {
	Policy(ctx context.Context) (DiscountPolicy, error)
	SetPolicy(ctx context.Context, policy DiscountPolicy) error
}
