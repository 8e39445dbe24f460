package domain

import (
	"errors"
	"time"
)

// How long an authentication token stays usable. DPD accepts at most two
// logins per 24 hours, so the client self-throttles below this window.
const SessionTTL = 24 * time.Hour

var ErrCarrierNotConfigured = errors.New("carrier is not configured")
var ErrLoginFailed = errors.New("carrier login failed")
var ErrAuthRateLimited = errors.New("carrier login quota exhausted")

// LabelSize is the paper format of the shipping label PDF.
type LabelSize string

const (
	LabelA4 LabelSize = "A4"
	LabelA6 LabelSize = "A6"
)

// ShippingProduct is the DPD product booked for outbound parcels.
type ShippingProduct string

const (
	ProductClassic      ShippingProduct = "CL"
	ProductExpress10    ShippingProduct = "E10"
	ProductExpress12    ShippingProduct = "E12"
	ProductExpress18    ShippingProduct = "E18"
	ProductShopDelivery ShippingProduct = "Shop_Delivery"
)

// PricingMode selects how RateShipment computes a quote.
type PricingMode string

const (
	PricingFixed   PricingMode = "fixed"
	PricingProduct PricingMode = "base_product"
	PricingRules   PricingMode = "base_on_rule"
)

// Session holds the carrier-issued credentials obtained from getAuth.
// All four fields are written together by a successful login.
type Session struct {
	Token       string    `json:"-" bson:"token"`
	CustomerUID string    `json:"customer_uid" bson:"customer_uid"`
	Depot       string    `json:"depot" bson:"depot"`
	LoginAt     time.Time `json:"login_at" bson:"login_at"`
}

// Valid reports whether the session still falls inside the throttle window.
func (s Session) Valid(now time.Time) bool {
	return !s.LoginAt.IsZero() && s.LoginAt.Add(SessionTTL).After(now)
}

// CarrierConfig is the operator-maintained DPD account configuration plus
// the mutable session state owned by the login operation.
type CarrierConfig struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	DelisID  string `json:"delis_id" bson:"delis_id"`
	Password string `json:"-" bson:"password"`
	Language string `json:"language" bson:"language"`
	Staging  bool   `json:"staging" bson:"staging"`

	LabelSize LabelSize       `json:"label_size" bson:"label_size"`
	Product   ShippingProduct `json:"product" bson:"product"`

	PricingMode  PricingMode   `json:"pricing_mode" bson:"pricing_mode"`
	FixedPrice   float64       `json:"fixed_price" bson:"fixed_price"`
	ProductPrice float64       `json:"product_price" bson:"product_price"`
	PriceRules   []PricingRule `json:"price_rules" bson:"price_rules"`

	Sender Address `json:"sender" bson:"sender"`

	Session Session `json:"session" bson:"session"`

	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
