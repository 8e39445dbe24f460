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

func TestCreateShipment_GeneratesParcels(t *testing.T) {
	repo := newStubShipmentRepo()
	m := NewShipmentManager(repo, &stubConfigRepo{cfg: testConfig(time.Now())}, zerolog.Nop())

	s, err := m.CreateShipment(context.Background(), ports.CreateShipmentInput{
		Reference:    "SO400",
		Origin:       "WH",
		Recipient:    ports.AddressInput{Name: "Jan", Street: "Kerkstraat 1", ZipCode: "2000", City: "Antwerp", CountryCode: "BE"},
		WeightKg:     6.0,
		PackageCount: 2,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(s.Parcels) != 2 {
		t.Fatalf("expected 2 parcels, got %d", len(s.Parcels))
	}
	if s.Parcels[0].Name != "WH-SO400-1" || s.Parcels[1].Name != "WH-SO400-2" {
		t.Fatalf("unexpected parcel names: %+v", s.Parcels)
	}
	// Empty sender falls back to the configured warehouse address.
	if s.Sender.Name != "Warehouse" {
		t.Fatalf("expected configured sender, got %+v", s.Sender)
	}
	if _, ok := repo.byRef["SO400"]; !ok {
		t.Fatalf("shipment was not persisted")
	}
}

func TestCreateShipment_DuplicateReference(t *testing.T) {
	repo := newStubShipmentRepo()
	repo.add(&domain.Shipment{Reference: "SO401"})
	m := NewShipmentManager(repo, &stubConfigRepo{}, zerolog.Nop())

	_, err := m.CreateShipment(context.Background(), ports.CreateShipmentInput{Reference: "SO401"})
	if !errors.Is(err, domain.ErrShipmentExists) {
		t.Fatalf("expected ErrShipmentExists, got %v", err)
	}
}

func TestSetPackageCount_RegeneratesParcels(t *testing.T) {
	repo := newStubShipmentRepo()
	s := &domain.Shipment{Reference: "SO402", Origin: "WH", WeightKg: 3.0, PackageCount: 1}
	s.GenerateParcels()
	repo.add(s)

	m := NewShipmentManager(repo, &stubConfigRepo{}, zerolog.Nop())
	got, err := m.SetPackageCount(context.Background(), "SO402", 3)
	if err != nil {
		t.Fatalf("set package count failed: %v", err)
	}
	if got.PackageCount != 3 || len(got.Parcels) != 3 {
		t.Fatalf("unexpected parcel list: %+v", got.Parcels)
	}
	// Regeneration resets per-parcel weights for multi-parcel shipments.
	for _, p := range got.Parcels {
		if p.WeightKg != 0 {
			t.Fatalf("expected zero weights after regeneration, got %+v", got.Parcels)
		}
	}
}

func TestGetLabel(t *testing.T) {
	repo := newStubShipmentRepo()
	repo.add(&domain.Shipment{Reference: "SO403", LabelName: "SO403.pdf", LabelPDF: []byte("%PDF")})
	repo.add(&domain.Shipment{Reference: "SO404"})

	m := NewShipmentManager(repo, &stubConfigRepo{}, zerolog.Nop())

	label, err := m.GetLabel(context.Background(), "SO403")
	if err != nil {
		t.Fatalf("get label failed: %v", err)
	}
	if label.Name != "SO403.pdf" || string(label.PDF) != "%PDF" {
		t.Fatalf("unexpected label: %+v", label)
	}

	if _, err := m.GetLabel(context.Background(), "SO404"); !errors.Is(err, domain.ErrNoLabelYet) {
		t.Fatalf("expected ErrNoLabelYet, got %v", err)
	}
}
