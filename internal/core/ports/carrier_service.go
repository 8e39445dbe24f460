package ports

import (
	"context"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
)

// LoginService manages the carrier session.
type LoginService interface {
	// Login ensures a usable session and returns the carrier configuration
	// carrying it. Unless force is set, a session younger than the throttle
	// window is reused without contacting the carrier.
	Login(ctx context.Context, force bool) (*domain.CarrierConfig, error)
}

// ShippingResult is one entry of a SendShipping batch, order preserved.
type ShippingResult struct {
	TrackingNumber string  `json:"tracking_number"`
	ExactPrice     float64 `json:"exact_price"`
}

// ShippingService submits shipments to the carrier.
type ShippingService interface {
	// SendShipping submits the referenced shipments in order. The first
	// carrier fault aborts the batch; unprocessed shipments are not attempted.
	SendShipping(ctx context.Context, refs []string) ([]ShippingResult, error)
	// TrackingLink returns the public tracking URL, or "" when the shipment
	// has not been submitted yet.
	TrackingLink(ctx context.Context, ref string) (string, error)
	// CancelShipment always fails: the carrier does not support cancellation.
	CancelShipment(ctx context.Context, ref string) error
}

// TrackingService polls the carrier and reconciles shipment state.
type TrackingService interface {
	RefreshTracking(ctx context.Context, ref string) error
}

// RateInput carries the quote-time variables of a shipment.
type RateInput struct {
	Total    float64
	WeightKg float64
	Volume   float64
	Quantity float64
}

// RateResult is the outcome of a rate call.
type RateResult struct {
	Price float64 `json:"price"`
}

// RateService quotes shipping prices from the configured pricing mode.
type RateService interface {
	RateShipment(ctx context.Context, in RateInput) (*RateResult, error)
}

// ParcelShopInfo is one parcel shop returned by the shop finder.
type ParcelShopInfo struct {
	ID       string `json:"id"`
	Company  string `json:"company"`
	Street   string `json:"street"`
	HouseNo  string `json:"house_no,omitempty"`
	ZipCode  string `json:"zip_code"`
	City     string `json:"city"`
	Country  string `json:"country,omitempty"`
	Distance string `json:"distance,omitempty"`
}

// ShopFinderService looks up carrier parcel shops near a point.
type ShopFinderService interface {
	FindParcelShops(ctx context.Context, lat, lng float64, limit int) ([]ParcelShopInfo, error)
}
