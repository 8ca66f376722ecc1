package pricing

import (
	"context"

	"domoreserva/internal/app/commands"
	"domoreserva/internal/app/dto"
	"domoreserva/internal/app/queries"
	domainpricing "domoreserva/internal/domain/pricing"
)

const (
	getDiscountsKey    = "pricing.discounts.get"
	updateDiscountsKey = "pricing.discounts.update"
)

type GetDiscountsQuery struct{}

func (GetDiscountsQuery) Key() string { return getDiscountsKey }

type GetDiscountsHandler struct {
	Discounts domainpricing.DiscountRepository
}

func (h *GetDiscountsHandler) Handle(ctx context.Context, _ GetDiscountsQuery) (dto.DiscountTable, error) {
	policy, err := h.Discounts.Policy(ctx)
	if err != nil {
		return dto.DiscountTable{}, err
	}
	return dto.MapDiscountTable(policy), nil
}

type UpdateDiscountsCommand struct {
	Tiers []dto.DiscountTierDTO
}

func (UpdateDiscountsCommand) Key() string { return updateDiscountsKey }

type UpdateDiscountsResult struct {
	Table dto.DiscountTable `json:"table"`
}

type UpdateDiscountsHandler struct {
	Discounts domainpricing.DiscountRepository
}

func (h *UpdateDiscountsHandler) Handle(ctx context.Context, cmd UpdateDiscountsCommand) (*UpdateDiscountsResult, error) {
	tiers := make([]domainpricing.DiscountTier, 0, len(cmd.Tiers))
	for _, t := range cmd.Tiers {
		tiers = append(tiers, domainpricing.DiscountTier{MinNights: t.MinNights, Percent: t.Percent})
	}
	policy, err := domainpricing.NewDiscountPolicy(tiers...)
	if err != nil {
		return nil, err
	}
	if err := h.Discounts.SetPolicy(ctx, policy); err != nil {
		return nil, err
	}
	return &UpdateDiscountsResult{Table: dto.MapDiscountTable(policy)}, nil
}

var (
	_ queries.Handler[GetDiscountsQuery, dto.DiscountTable]            = (*GetDiscountsHandler)(nil)
	_ commands.Handler[UpdateDiscountsCommand, *UpdateDiscountsResult] = (*UpdateDiscountsHandler)(nil)
)
