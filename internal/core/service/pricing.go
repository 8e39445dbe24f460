package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
	"github.com/parcelhub/dpd-gateway/internal/core/ports"
)

// RateCalculator implements ports.RateService over the carrier's configured
// pricing mode. Rule-based pricing is a piecewise table: rules are tested in
// stored order against a fixed variable set and the first match wins.
type RateCalculator struct {
	cfgRepo ports.CarrierConfigRepository
	log     zerolog.Logger
}

func NewRateCalculator(cfgRepo ports.CarrierConfigRepository, log zerolog.Logger) *RateCalculator {
	return &RateCalculator{cfgRepo: cfgRepo, log: log}
}

func (r *RateCalculator) RateShipment(ctx context.Context, in ports.RateInput) (*ports.RateResult, error) {
	cfg, err := r.cfgRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	switch cfg.PricingMode {
	case domain.PricingFixed:
		return &ports.RateResult{Price: cfg.FixedPrice}, nil
	case domain.PricingProduct:
		return &ports.RateResult{Price: cfg.ProductPrice}, nil
	}

	price, err := evaluateRules(cfg, in)
	if err != nil {
		r.log.Info().Err(err).Float64("weight", in.WeightKg).Float64("quantity", in.Quantity).
			Msg("no pricing rule matched")
		return nil, err
	}
	f, _ := price.Float64()
	return &ports.RateResult{Price: f}, nil
}

// evaluateRules walks the rule table in stored order. The variable scope is
// fixed: total price, weight, volume, weight*volume, and quantity: nothing
// else is in reach of a rule predicate.
func evaluateRules(cfg *domain.CarrierConfig, in ports.RateInput) (decimal.Decimal, error) {
	vars := map[domain.RuleVariable]float64{
		domain.VarPrice:    in.Total,
		domain.VarWeight:   in.WeightKg,
		domain.VarVolume:   in.Volume,
		domain.VarWV:       in.WeightKg * in.Volume,
		domain.VarQuantity: in.Quantity,
	}

	for _, rule := range cfg.PriceRules {
		if !ruleMatches(rule, vars) {
			continue
		}

		base := decimal.NewFromFloat(rule.BasePrice)
		if rule.PriceType != domain.PriceFixed {
			base = decimal.NewFromFloat(cfg.ProductPrice)
		}
		rate := decimal.NewFromFloat(rule.Rate)

		if rule.Factor != domain.FactorPerQuantity {
			factor := decimal.NewFromFloat(vars[domain.RuleVariable(rule.Factor)])
			return base.Add(rate.Mul(factor)), nil
		}

		// price = (base + rate) * ceil(quantity / N)
		per := decimal.NewFromFloat(rule.QuantityPer)
		if per.IsZero() {
			return decimal.Zero, domain.ErrNoMatchingRule
		}
		blocks := decimal.NewFromFloat(vars[domain.VarQuantity]).Div(per).Ceil()
		return base.Add(rate).Mul(blocks), nil
	}

	return decimal.Zero, domain.ErrNoMatchingRule
}

func ruleMatches(rule domain.PricingRule, vars map[domain.RuleVariable]float64) bool {
	value, ok := vars[rule.Variable]
	if !ok {
		return false
	}
	switch rule.Operator {
	case domain.OpEq:
		return value == rule.MaxValue
	case domain.OpLe:
		return value <= rule.MaxValue
	case domain.OpLt:
		return value < rule.MaxValue
	case domain.OpGe:
		return value >= rule.MaxValue
	case domain.OpGt:
		return value > rule.MaxValue
	}
	return false
}
