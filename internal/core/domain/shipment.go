package domain

import (
	"errors"
	"fmt"
	"time"
)

// DeliveryState is the coarse per-shipment state reported by the carrier.
type DeliveryState string

const (
	StateAccepted        DeliveryState = "ACCEPTED"
	StateAtSendingDepot  DeliveryState = "AT_SENDING_DEPOT"
	StateOnTheRoad       DeliveryState = "ON_THE_ROAD"
	StateAtDeliveryDepot DeliveryState = "AT_DELIVERY_DEPOT"
	StateDelivered       DeliveryState = "DELIVERED"
)

// stateLabels maps carrier state codes to human-readable labels.
var stateLabels = map[DeliveryState]string{
	StateAccepted:        "Accepted",
	StateAtSendingDepot:  "At sending depot",
	StateOnTheRoad:       "On the road",
	StateAtDeliveryDepot: "At the delivery depot",
	StateDelivered:       "Delivered",
}

// Label returns the display label for a delivery state. Unknown codes are
// returned verbatim: the carrier owns the vocabulary, not us.
func (s DeliveryState) Label() string {
	if l, ok := stateLabels[s]; ok {
		return l
	}
	return string(s)
}

var ErrShipmentNotFound = errors.New("shipment not found")
var ErrShipmentExists = errors.New("shipment already exists")
var ErrNoTrackingRef = errors.New("shipment has no carrier tracking reference")
var ErrNoLabelYet = errors.New("no label stored for shipment")
var ErrCancelUnsupported = errors.New("shipment can not be cancelled anymore")

// Address is one side of a shipment (sender warehouse or recipient).
type Address struct {
	Name        string `json:"name" bson:"name"`
	Street      string `json:"street" bson:"street"`
	ZipCode     string `json:"zip_code" bson:"zip_code"`
	City        string `json:"city" bson:"city"`
	Region      string `json:"region,omitempty" bson:"region,omitempty"`
	CountryCode string `json:"country_code" bson:"country_code"`
}

// Parcel is one physical package within a shipment. Parcels are regenerated
// whenever the shipment's declared package count changes.
type Parcel struct {
	Name     string  `json:"name" bson:"name"`
	WeightKg float64 `json:"weight_kg" bson:"weight_kg"`
}

// DeliveryEvent is one carrier-reported status observation. A shipment keeps
// at most one event per state code; later polls update the stored event in
// place instead of appending duplicates.
type DeliveryEvent struct {
	State     DeliveryState `json:"state" bson:"state"`
	Reached   bool          `json:"reached" bson:"reached"`
	Current   bool          `json:"current" bson:"current"`
	Location  string        `json:"location,omitempty" bson:"location,omitempty"`
	Date      string        `json:"date,omitempty" bson:"date,omitempty"`
	ExtraInfo string        `json:"extra_info,omitempty" bson:"extra_info,omitempty"`
}

// StatusNote records a single coarse-state transition on a shipment.
type StatusNote struct {
	State     DeliveryState `json:"state" bson:"state"`
	Message   string        `json:"message" bson:"message"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
}

// Shipment is the outbound delivery record tracked through the carrier.
type Shipment struct {
	ID           string   `json:"id" bson:"_id,omitempty"`
	Reference    string   `json:"reference" bson:"reference"`
	Origin       string   `json:"origin,omitempty" bson:"origin,omitempty"`
	Sender       Address  `json:"sender" bson:"sender"`
	Recipient    Address  `json:"recipient" bson:"recipient"`
	WeightKg     float64  `json:"weight_kg" bson:"weight_kg"`
	PackageCount int      `json:"package_count" bson:"package_count"`
	Parcels      []Parcel `json:"parcels" bson:"parcels"`

	// Set once after a successful storeOrders call.
	TrackingRef string `json:"tracking_ref,omitempty" bson:"tracking_ref,omitempty"`
	LabelName   string `json:"label_name,omitempty" bson:"label_name,omitempty"`
	LabelPDF    []byte `json:"-" bson:"label_pdf,omitempty"`

	// Grow monotonically as tracking polls arrive.
	DeliveryState DeliveryState   `json:"delivery_state,omitempty" bson:"delivery_state,omitempty"`
	Events        []DeliveryEvent `json:"events" bson:"events"`
	StatusNotes   []StatusNote    `json:"status_notes" bson:"status_notes"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// GenerateParcels rebuilds the parcel list for the current package count.
// A single-parcel shipment inherits the shipment weight; multi-parcel
// shipments start at zero and the operator fills per-parcel weights in.
func (s *Shipment) GenerateParcels() {
	count := s.PackageCount
	if count < 1 {
		count = 1
	}
	weight := 0.0
	if count == 1 {
		weight = s.WeightKg
	}
	parcels := make([]Parcel, 0, count)
	for i := 1; i <= count; i++ {
		parcels = append(parcels, Parcel{
			Name:     fmt.Sprintf("%s-%s-%d", s.Origin, s.Reference, i),
			WeightKg: weight,
		})
	}
	s.Parcels = parcels
}

// EventIndex returns the position of the stored event for a state code, or -1.
func (s *Shipment) EventIndex(state DeliveryState) int {
	for i := range s.Events {
		if s.Events[i].State == state {
			return i
		}
	}
	return -1
}
