package ports

import (
	"context"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
)

// CarrierConfigRepository persists the single operator-maintained carrier
// configuration record.
type CarrierConfigRepository interface {
	// Get returns the carrier configuration, or domain.ErrCarrierNotConfigured.
	Get(ctx context.Context) (*domain.CarrierConfig, error)
	// Save upserts the configuration record.
	Save(ctx context.Context, cfg *domain.CarrierConfig) error
	// SaveSession writes the token, customer UID, depot and login timestamp
	// as one atomic set. Only the login operation calls this.
	SaveSession(ctx context.Context, id string, session domain.Session) error
}
