package domain

import "testing"

func TestPricingRuleName_Fixed(t *testing.T) {
	r := PricingRule{
		Variable:  VarWeight,
		Operator:  OpLe,
		MaxValue:  5,
		BasePrice: 10,
		Rate:      2,
		Factor:    FactorWeight,
		PriceType: PriceFixed,
	}

	got := r.Name()
	want := "if weight <= 5 then 10 + (2 times weight) Extra"
	if got != want {
		t.Fatalf("Name() = %q, want %q", got, want)
	}
}

func TestPricingRuleName_PerQuantityCustomerPrice(t *testing.T) {
	r := PricingRule{
		Variable:    VarQuantity,
		Operator:    OpGt,
		MaxValue:    0,
		Rate:        1,
		Factor:      FactorPerQuantity,
		QuantityPer: 10,
		PriceType:   PriceCustomer,
	}

	got := r.Name()
	want := "if quantity > 0 then (Customer price + 1 times Per quantity of 10) Extra"
	if got != want {
		t.Fatalf("Name() = %q, want %q", got, want)
	}
}
