package service

import (
	"context"
	"time"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
	"github.com/parcelhub/dpd-gateway/internal/integrations/dpd"
)

// CarrierGateway abstracts the four DPD SOAP operations so the business
// services never touch endpoint tables or envelope field names directly.
type CarrierGateway interface {
	GetAuth(ctx context.Context, creds dpd.Credentials) (dpd.AuthResult, error)
	StoreOrders(ctx context.Context, auth dpd.Auth, opts dpd.PrintOptions, order dpd.Order) (dpd.StoreOrdersResult, error)
	GetTrackingData(ctx context.Context, auth dpd.Auth, parcelLabelNumber string) ([]dpd.StatusInfo, error)
	FindParcelShops(ctx context.Context, auth dpd.Auth, lat, lng float64, limit int) ([]dpd.ParcelShop, error)
}

// AuthGuard abstracts the distributed login-quota counter (Redis).
type AuthGuard interface {
	// Allow consumes one login attempt for key and reports whether the
	// carrier-side quota still permits it.
	Allow(ctx context.Context, key string) (bool, error)
}

// TransitionPublisher abstracts the broker that downstream consumers follow
// for coarse delivery-state transitions (Kafka).
type TransitionPublisher interface {
	PublishStateChange(ctx context.Context, ref string, state domain.DeliveryState, at time.Time) error
}

// carrierAuth builds the SOAP authentication header from the stored session.
// The staging flag travels with it so every call lands on the environment
// the stored configuration names.
func carrierAuth(cfg *domain.CarrierConfig) dpd.Auth {
	return dpd.Auth{
		DelisID:         cfg.DelisID,
		Token:           cfg.Session.Token,
		MessageLanguage: cfg.Language,
		Staging:         cfg.Staging,
	}
}
