package ports

import (
	"context"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
)

// TrackingUpdate is the merged result of one tracking poll, written to the
// shipment record in a single operation.
type TrackingUpdate struct {
	Events []domain.DeliveryEvent
	State  domain.DeliveryState
	// Note is non-nil only when the coarse state changed on this poll.
	Note *domain.StatusNote
}

// ShipmentRepository defines persistence operations for shipments.
type ShipmentRepository interface {
	Create(ctx context.Context, s *domain.Shipment) error
	FindByReference(ctx context.Context, ref string) (*domain.Shipment, error)
	// SetParcels replaces the package count and parcel list of a shipment.
	SetParcels(ctx context.Context, ref string, count int, parcels []domain.Parcel) error
	// SaveLabel stores the submission result: tracking reference, label file
	// name, and the label binary. Written once per shipment.
	SaveLabel(ctx context.Context, ref, trackingRef, labelName string, labelPDF []byte) error
	// ApplyTrackingUpdate persists a merged tracking poll atomically.
	ApplyTrackingUpdate(ctx context.Context, ref string, update TrackingUpdate) error
	// ListPendingTracking returns references of shipments that carry a
	// tracking reference and are not yet delivered.
	ListPendingTracking(ctx context.Context) ([]string, error)
}
