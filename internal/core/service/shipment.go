package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
	"github.com/parcelhub/dpd-gateway/internal/core/ports"
)

// ShipmentManager implements ports.ShipmentService: the host-facing CRUD
// surface for shipments and their parcel lists.
type ShipmentManager struct {
	repo    ports.ShipmentRepository
	cfgRepo ports.CarrierConfigRepository
	log     zerolog.Logger
}

func NewShipmentManager(repo ports.ShipmentRepository, cfgRepo ports.CarrierConfigRepository, log zerolog.Logger) *ShipmentManager {
	return &ShipmentManager{repo: repo, cfgRepo: cfgRepo, log: log}
}

// CreateShipment registers a shipment and generates its parcel list from the
// declared package count. An empty sender block falls back to the carrier
// configuration's warehouse address.
func (m *ShipmentManager) CreateShipment(ctx context.Context, in ports.CreateShipmentInput) (*domain.Shipment, error) {
	now := time.Now().UTC()
	shipment := &domain.Shipment{
		Reference:    in.Reference,
		Origin:       in.Origin,
		Sender:       toAddress(in.Sender),
		Recipient:    toAddress(in.Recipient),
		WeightKg:     in.WeightKg,
		PackageCount: in.PackageCount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if shipment.Sender == (domain.Address{}) {
		if cfg, err := m.cfgRepo.Get(ctx); err == nil {
			shipment.Sender = cfg.Sender
		}
	}
	shipment.GenerateParcels()

	if err := m.repo.Create(ctx, shipment); err != nil {
		return nil, err
	}
	m.log.Info().Str("reference", shipment.Reference).Int("parcels", len(shipment.Parcels)).
		Msg("shipment created")
	return shipment, nil
}

func (m *ShipmentManager) GetShipment(ctx context.Context, ref string) (*domain.Shipment, error) {
	return m.repo.FindByReference(ctx, ref)
}

// SetPackageCount updates the declared package count and regenerates the
// parcel list, discarding any per-parcel weights the operator entered.
func (m *ShipmentManager) SetPackageCount(ctx context.Context, ref string, count int) (*domain.Shipment, error) {
	shipment, err := m.repo.FindByReference(ctx, ref)
	if err != nil {
		return nil, err
	}

	shipment.PackageCount = count
	shipment.GenerateParcels()

	if err := m.repo.SetParcels(ctx, ref, shipment.PackageCount, shipment.Parcels); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (m *ShipmentManager) GetLabel(ctx context.Context, ref string) (*ports.LabelFile, error) {
	shipment, err := m.repo.FindByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(shipment.LabelPDF) == 0 {
		return nil, domain.ErrNoLabelYet
	}
	return &ports.LabelFile{Name: shipment.LabelName, PDF: shipment.LabelPDF}, nil
}

func toAddress(a ports.AddressInput) domain.Address {
	return domain.Address{
		Name:        a.Name,
		Street:      a.Street,
		ZipCode:     a.ZipCode,
		City:        a.City,
		Region:      a.Region,
		CountryCode: a.CountryCode,
	}
}
