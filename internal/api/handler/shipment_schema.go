package handler

import (
	"time"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
	"github.com/parcelhub/dpd-gateway/internal/core/ports"
)

// --- Request types ---

type addressRequest struct {
	Name        string `json:"name"`
	Street      string `json:"street"`
	ZipCode     string `json:"zip_code"`
	City        string `json:"city"`
	Region      string `json:"region"`
	CountryCode string `json:"country_code"`
}

type createShipmentRequest struct {
	Reference    string         `json:"reference" validate:"required"`
	Origin       string         `json:"origin" validate:"required"`
	Sender       addressRequest `json:"sender"`
	Recipient    addressRequest `json:"recipient" validate:"required"`
	WeightKg     float64        `json:"weight_kg" validate:"gte=0"`
	PackageCount int            `json:"package_count" validate:"gte=0"`
}

type setPackagesRequest struct {
	PackageCount int `json:"package_count" validate:"required,gte=1"`
}

type submitShipmentsRequest struct {
	References []string `json:"references" validate:"required,min=1"`
}

type rateRequest struct {
	Total    float64 `json:"total" validate:"gte=0"`
	WeightKg float64 `json:"weight_kg" validate:"gte=0"`
	Volume   float64 `json:"volume" validate:"gte=0"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

// --- Response types ---

type addressResponse struct {
	Name        string `json:"name"`
	Street      string `json:"street"`
	ZipCode     string `json:"zip_code"`
	City        string `json:"city"`
	Region      string `json:"region,omitempty"`
	CountryCode string `json:"country_code"`
}

type parcelResponse struct {
	Name     string  `json:"name"`
	WeightKg float64 `json:"weight_kg"`
}

type deliveryEventResponse struct {
	State    string `json:"state"`
	Reached  bool   `json:"reached"`
	Current  bool   `json:"current"`
	Location string `json:"location,omitempty"`
	Date     string `json:"date,omitempty"`
	Info     string `json:"info,omitempty"`
}

type statusNoteResponse struct {
	State     string    `json:"state"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type shipmentResponse struct {
	Reference    string                  `json:"reference"`
	Origin       string                  `json:"origin"`
	Sender       addressResponse         `json:"sender"`
	Recipient    addressResponse         `json:"recipient"`
	WeightKg     float64                 `json:"weight_kg"`
	PackageCount int                     `json:"package_count"`
	Parcels      []parcelResponse        `json:"parcels"`
	TrackingRef  string                  `json:"tracking_ref,omitempty"`
	LabelName    string                  `json:"label_name,omitempty"`
	State        string                  `json:"delivery_state,omitempty"`
	Events       []deliveryEventResponse `json:"events,omitempty"`
	StatusNotes  []statusNoteResponse    `json:"status_notes,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

type trackingLinkResponse struct {
	Reference string `json:"reference"`
	URL       string `json:"url"`
}

// --- Mappers ---

func toAddressInput(a addressRequest) ports.AddressInput {
	return ports.AddressInput{
		Name:        a.Name,
		Street:      a.Street,
		ZipCode:     a.ZipCode,
		City:        a.City,
		Region:      a.Region,
		CountryCode: a.CountryCode,
	}
}

func toAddressResponse(a domain.Address) addressResponse {
	return addressResponse{
		Name:        a.Name,
		Street:      a.Street,
		ZipCode:     a.ZipCode,
		City:        a.City,
		Region:      a.Region,
		CountryCode: a.CountryCode,
	}
}

func toShipmentResponse(s *domain.Shipment) shipmentResponse {
	resp := shipmentResponse{
		Reference:    s.Reference,
		Origin:       s.Origin,
		Sender:       toAddressResponse(s.Sender),
		Recipient:    toAddressResponse(s.Recipient),
		WeightKg:     s.WeightKg,
		PackageCount: s.PackageCount,
		Parcels:      make([]parcelResponse, 0, len(s.Parcels)),
		TrackingRef:  s.TrackingRef,
		LabelName:    s.LabelName,
		State:        string(s.DeliveryState),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	for _, p := range s.Parcels {
		resp.Parcels = append(resp.Parcels, parcelResponse{Name: p.Name, WeightKg: p.WeightKg})
	}
	for _, ev := range s.Events {
		resp.Events = append(resp.Events, deliveryEventResponse{
			State:    string(ev.State),
			Reached:  ev.Reached,
			Current:  ev.Current,
			Location: ev.Location,
			Date:     ev.Date,
			Info:     ev.ExtraInfo,
		})
	}
	for _, n := range s.StatusNotes {
		resp.StatusNotes = append(resp.StatusNotes, statusNoteResponse{
			State:     string(n.State),
			Message:   n.Message,
			Timestamp: n.Timestamp,
		})
	}
	return resp
}
