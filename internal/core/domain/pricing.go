package domain

import (
	"errors"
	"fmt"
)

var ErrNoMatchingRule = errors.New("shipment does not fulfill any pricing rule criteria")

// RuleVariable is the quantity a pricing rule predicate is tested against.
type RuleVariable string

const (
	VarPrice    RuleVariable = "price"
	VarWeight   RuleVariable = "weight"
	VarVolume   RuleVariable = "volume"
	VarWV       RuleVariable = "wv" // weight * volume
	VarQuantity RuleVariable = "quantity"
)

// RuleOperator compares a variable with the rule's max value.
type RuleOperator string

const (
	OpEq RuleOperator = "=="
	OpLe RuleOperator = "<="
	OpLt RuleOperator = "<"
	OpGe RuleOperator = ">="
	OpGt RuleOperator = ">"
)

// RuleFactor selects the multiplier applied to the rule's rate. PerQuantity
// switches the whole formula to (base + rate) * ceil(quantity / N).
type RuleFactor string

const (
	FactorPrice       RuleFactor = "price"
	FactorWeight      RuleFactor = "weight"
	FactorVolume      RuleFactor = "volume"
	FactorWV          RuleFactor = "wv"
	FactorQuantity    RuleFactor = "quantity"
	FactorPerQuantity RuleFactor = "per_quantity"
)

// PriceType selects the base price source: the rule's own base price, or the
// customer price attached to the carrier's delivery product.
type PriceType string

const (
	PriceFixed    PriceType = "fixed"
	PriceCustomer PriceType = "customer_price"
)

var priceTypeLabels = map[PriceType]string{
	PriceFixed:    "Fixed price",
	PriceCustomer: "Customer price",
}

// PricingRule is one piecewise segment of the carrier's price table.
// Rules are evaluated in stored order; the first matching predicate wins.
type PricingRule struct {
	Variable    RuleVariable `json:"variable" bson:"variable"`
	Operator    RuleOperator `json:"operator" bson:"operator"`
	MaxValue    float64      `json:"max_value" bson:"max_value"`
	BasePrice   float64      `json:"base_price" bson:"base_price"`
	Rate        float64      `json:"rate" bson:"rate"`
	Factor      RuleFactor   `json:"factor" bson:"factor"`
	QuantityPer float64      `json:"quantity_per,omitempty" bson:"quantity_per,omitempty"`
	PriceType   PriceType    `json:"price_type" bson:"price_type"`
}

// Name derives the display-only description of a rule from its own
// parameters, e.g. "if weight <= 5 then 10 + (2 times weight) Extra".
func (r PricingRule) Name() string {
	name := fmt.Sprintf("if %s %s %v then", r.Variable, r.Operator, r.MaxValue)

	base := fmt.Sprintf("%v", r.BasePrice)
	if r.PriceType != PriceFixed {
		base = priceTypeLabels[r.PriceType]
	}
	open := ""
	if r.Factor == FactorPerQuantity {
		open = "("
	}
	name = fmt.Sprintf("%s %s%s + ", name, open, base)

	if r.Factor != "" {
		factor := string(r.Factor)
		begin, end := "(", ")"
		if r.Factor == FactorPerQuantity {
			factor = fmt.Sprintf("Per quantity of %v)", r.QuantityPer)
			begin, end = "", ""
		}
		name = fmt.Sprintf("%s%s%v times %s%s Extra", name, begin, r.Rate, factor, end)
	}
	return name
}
