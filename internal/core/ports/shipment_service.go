package ports

import (
	"context"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
)

// AddressInput holds one side of a shipment.
type AddressInput struct {
	Name        string
	Street      string
	ZipCode     string
	City        string
	Region      string
	CountryCode string
}

// CreateShipmentInput carries all data needed to register a new shipment.
// The sender block defaults to the carrier configuration's warehouse address
// when left empty.
type CreateShipmentInput struct {
	Reference    string
	Origin       string
	Sender       AddressInput
	Recipient    AddressInput
	WeightKg     float64
	PackageCount int
}

// LabelFile is a stored shipping label ready for download.
type LabelFile struct {
	Name string
	PDF  []byte
}

// ShipmentService defines the host-facing shipment operations.
type ShipmentService interface {
	CreateShipment(ctx context.Context, in CreateShipmentInput) (*domain.Shipment, error)
	GetShipment(ctx context.Context, ref string) (*domain.Shipment, error)
	// SetPackageCount updates the declared package count and regenerates the
	// parcel list.
	SetPackageCount(ctx context.Context, ref string, count int) (*domain.Shipment, error)
	GetLabel(ctx context.Context, ref string) (*LabelFile, error)
}
