package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
	"github.com/parcelhub/dpd-gateway/internal/core/ports"
)

func rateService(cfg *domain.CarrierConfig) *RateCalculator {
	return NewRateCalculator(&stubConfigRepo{cfg: cfg}, zerolog.Nop())
}

func TestRateShipment_FixedMode(t *testing.T) {
	cfg := testConfig(time.Now())
	cfg.PricingMode = domain.PricingFixed
	cfg.FixedPrice = 7.5

	res, err := rateService(cfg).RateShipment(context.Background(), ports.RateInput{WeightKg: 99})
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if res.Price != 7.5 {
		t.Fatalf("expected fixed price 7.5, got %v", res.Price)
	}
}

func TestRateShipment_ProductMode(t *testing.T) {
	cfg := testConfig(time.Now())
	cfg.PricingMode = domain.PricingProduct
	cfg.ProductPrice = 12.0

	res, err := rateService(cfg).RateShipment(context.Background(), ports.RateInput{})
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if res.Price != 12.0 {
		t.Fatalf("expected product price 12.0, got %v", res.Price)
	}
}

func TestRateShipment_FirstMatchingRuleWins(t *testing.T) {
	cfg := testConfig(time.Now())
	cfg.PricingMode = domain.PricingRules
	cfg.PriceRules = []domain.PricingRule{
		{Variable: domain.VarWeight, Operator: domain.OpLe, MaxValue: 5,
			BasePrice: 10, Rate: 2, Factor: domain.FactorWeight, PriceType: domain.PriceFixed},
		{Variable: domain.VarWeight, Operator: domain.OpLe, MaxValue: 100,
			BasePrice: 99, Rate: 0, PriceType: domain.PriceFixed},
	}

	// weight 3 matches the first rule: 10 + 2*3 = 16.
	res, err := rateService(cfg).RateShipment(context.Background(), ports.RateInput{WeightKg: 3})
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if res.Price != 16 {
		t.Fatalf("expected 16, got %v", res.Price)
	}

	// weight 50 falls through to the second rule.
	res, err = rateService(cfg).RateShipment(context.Background(), ports.RateInput{WeightKg: 50})
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if res.Price != 99 {
		t.Fatalf("expected 99, got %v", res.Price)
	}
}

func TestRateShipment_PerQuantityBlocks(t *testing.T) {
	cfg := testConfig(time.Now())
	cfg.PricingMode = domain.PricingRules
	cfg.PriceRules = []domain.PricingRule{
		{Variable: domain.VarQuantity, Operator: domain.OpGt, MaxValue: 0,
			BasePrice: 4, Rate: 1, Factor: domain.FactorPerQuantity, QuantityPer: 10,
			PriceType: domain.PriceFixed},
	}

	// 25 items in blocks of 10: (4 + 1) * ceil(25/10) = 15.
	res, err := rateService(cfg).RateShipment(context.Background(), ports.RateInput{Quantity: 25})
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if res.Price != 15 {
		t.Fatalf("expected 15, got %v", res.Price)
	}
}

func TestRateShipment_PerQuantityWithoutDivisor(t *testing.T) {
	cfg := testConfig(time.Now())
	cfg.PricingMode = domain.PricingRules
	cfg.PriceRules = []domain.PricingRule{
		{Variable: domain.VarQuantity, Operator: domain.OpGt, MaxValue: 0,
			BasePrice: 4, Rate: 1, Factor: domain.FactorPerQuantity, PriceType: domain.PriceFixed},
	}

	_, err := rateService(cfg).RateShipment(context.Background(), ports.RateInput{Quantity: 5})
	if !errors.Is(err, domain.ErrNoMatchingRule) {
		t.Fatalf("expected ErrNoMatchingRule for zero divisor, got %v", err)
	}
}

func TestRateShipment_CustomerPriceBase(t *testing.T) {
	cfg := testConfig(time.Now())
	cfg.PricingMode = domain.PricingRules
	cfg.ProductPrice = 20
	cfg.PriceRules = []domain.PricingRule{
		{Variable: domain.VarPrice, Operator: domain.OpGe, MaxValue: 0,
			BasePrice: 5, Rate: 0.5, Factor: domain.FactorQuantity, PriceType: domain.PriceCustomer},
	}

	// customer_price base replaces the rule's own base: 20 + 0.5*4 = 22.
	res, err := rateService(cfg).RateShipment(context.Background(), ports.RateInput{Total: 100, Quantity: 4})
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if res.Price != 22 {
		t.Fatalf("expected 22, got %v", res.Price)
	}
}

func TestRateShipment_NoRuleMatches(t *testing.T) {
	cfg := testConfig(time.Now())
	cfg.PricingMode = domain.PricingRules
	cfg.PriceRules = []domain.PricingRule{
		{Variable: domain.VarWeight, Operator: domain.OpLt, MaxValue: 1,
			BasePrice: 10, PriceType: domain.PriceFixed},
	}

	_, err := rateService(cfg).RateShipment(context.Background(), ports.RateInput{WeightKg: 2})
	if !errors.Is(err, domain.ErrNoMatchingRule) {
		t.Fatalf("expected ErrNoMatchingRule, got %v", err)
	}
}
