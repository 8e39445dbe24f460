package domain

import "testing"

func TestGenerateParcels_SingleInheritsWeight(t *testing.T) {
	s := &Shipment{Reference: "SO001", Origin: "WH", WeightKg: 4.5, PackageCount: 1}
	s.GenerateParcels()

	if len(s.Parcels) != 1 {
		t.Fatalf("expected 1 parcel, got %d", len(s.Parcels))
	}
	if s.Parcels[0].Name != "WH-SO001-1" {
		t.Fatalf("unexpected parcel name: %s", s.Parcels[0].Name)
	}
	if s.Parcels[0].WeightKg != 4.5 {
		t.Fatalf("single parcel should inherit shipment weight, got %v", s.Parcels[0].WeightKg)
	}
}

func TestGenerateParcels_MultiStartsAtZero(t *testing.T) {
	s := &Shipment{Reference: "SO002", Origin: "WH", WeightKg: 9.0, PackageCount: 3}
	s.GenerateParcels()

	if len(s.Parcels) != 3 {
		t.Fatalf("expected 3 parcels, got %d", len(s.Parcels))
	}
	for i, p := range s.Parcels {
		if p.WeightKg != 0 {
			t.Fatalf("parcel %d: expected zero weight, got %v", i, p.WeightKg)
		}
	}
	if s.Parcels[2].Name != "WH-SO002-3" {
		t.Fatalf("unexpected parcel name: %s", s.Parcels[2].Name)
	}
}

func TestGenerateParcels_ZeroCountFallsBackToOne(t *testing.T) {
	s := &Shipment{Reference: "SO003", Origin: "WH", WeightKg: 1.2}
	s.GenerateParcels()

	if len(s.Parcels) != 1 {
		t.Fatalf("expected 1 parcel, got %d", len(s.Parcels))
	}
	if s.Parcels[0].WeightKg != 1.2 {
		t.Fatalf("expected inherited weight, got %v", s.Parcels[0].WeightKg)
	}
}

func TestDeliveryState_Label(t *testing.T) {
	if got := StateAtDeliveryDepot.Label(); got != "At the delivery depot" {
		t.Fatalf("unexpected label: %s", got)
	}
	// Unknown codes pass through verbatim.
	if got := DeliveryState("SOMETHING_NEW").Label(); got != "SOMETHING_NEW" {
		t.Fatalf("unknown state should be returned verbatim, got %s", got)
	}
}

func TestEventIndex(t *testing.T) {
	s := &Shipment{Events: []DeliveryEvent{
		{State: StateAccepted},
		{State: StateOnTheRoad},
	}}
	if idx := s.EventIndex(StateOnTheRoad); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if idx := s.EventIndex(StateDelivered); idx != -1 {
		t.Fatalf("expected -1 for unseen state, got %d", idx)
	}
}
