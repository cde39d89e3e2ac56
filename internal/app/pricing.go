package app

import (
	"github.com/metinatakli/seat-inventory/internal/pricing"
	"github.com/shopspring/decimal"
)

// newPricingEngine builds the engine from the configured policy and the
// discount rules whose percent is set.
func newPricingEngine(cfg PricingConfig) (*pricing.Engine, error) {
	policy, err := pricing.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	var rules []pricing.Rule

	if cfg.GroupDiscountPercent > 0 {
		rules = append(rules, pricing.PercentageOff{
			Percent:  decimal.NewFromFloat(cfg.GroupDiscountPercent),
			MinSeats: cfg.GroupMinSeats,
		})
	}

	if cfg.NthTicket > 0 && cfg.NthTicketPercent > 0 {
		rules = append(rules, pricing.NthTicket{
			N:       cfg.NthTicket,
			Percent: decimal.NewFromFloat(cfg.NthTicketPercent),
		})
	}

	if cfg.MatineePercent > 0 {
		rules = append(rules, pricing.TimeWindow{
			From:    cfg.MatineeFrom,
			To:      cfg.MatineeTo,
			Percent: decimal.NewFromFloat(cfg.MatineePercent),
		})
	}

	return pricing.NewEngine(policy, rules...), nil
}
