package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/parcelhub/dpd-gateway/internal/api/metrics"
	"github.com/parcelhub/dpd-gateway/internal/core/domain"
	"github.com/parcelhub/dpd-gateway/internal/core/ports"
	"github.com/parcelhub/dpd-gateway/internal/integrations/dpd"
)

// ShippingService submits shipments to the carrier and owns the thin
// tracking-link and cancellation surface.
type ShippingService struct {
	login     ports.LoginService
	shipments ports.ShipmentRepository
	gateway   CarrierGateway
	log       zerolog.Logger
}

func NewShippingService(login ports.LoginService, shipments ports.ShipmentRepository, gateway CarrierGateway, log zerolog.Logger) *ShippingService {
	return &ShippingService{
		login:     login,
		shipments: shipments,
		gateway:   gateway,
		log:       log,
	}
}

// SendShipping submits the referenced shipments in order and returns one
// result per shipment. The batch has no partial-failure containment: the
// first carrier fault aborts, and remaining shipments are not attempted.
func (s *ShippingService) SendShipping(ctx context.Context, refs []string) ([]ports.ShippingResult, error) {
	cfg, err := s.login.Login(ctx, false)
	if err != nil {
		return nil, err
	}

	results := make([]ports.ShippingResult, 0, len(refs))
	for _, ref := range refs {
		shipment, err := s.shipments.FindByReference(ctx, ref)
		if err != nil {
			return nil, err
		}

		res, err := s.gateway.StoreOrders(ctx, carrierAuth(cfg), printOptions(cfg), buildOrder(cfg, shipment))
		if err != nil {
			metrics.CarrierRequestsTotal.WithLabelValues(dpd.OpStoreOrders, "error").Inc()
			return nil, err
		}
		metrics.CarrierRequestsTotal.WithLabelValues(dpd.OpStoreOrders, "ok").Inc()

		labelName := shipment.Reference + ".pdf"
		if err := s.shipments.SaveLabel(ctx, ref, res.ParcelLabelNumber, labelName, decodeLabel(res.LabelPDF)); err != nil {
			return nil, fmt.Errorf("store label for %s: %w", ref, err)
		}
		metrics.LabelsStoredTotal.Inc()

		s.log.Info().Str("reference", ref).Str("tracking_number", res.ParcelLabelNumber).
			Msg("shipment submitted to carrier")

		// DPD does not quote a price on submission; rating is a separate call.
		results = append(results, ports.ShippingResult{TrackingNumber: res.ParcelLabelNumber})
	}
	return results, nil
}

// TrackingLink returns the public parcel status URL, or "" for a shipment
// that has not been submitted yet.
func (s *ShippingService) TrackingLink(ctx context.Context, ref string) (string, error) {
	shipment, err := s.shipments.FindByReference(ctx, ref)
	if err != nil {
		return "", err
	}
	if shipment.TrackingRef == "" {
		return "", nil
	}
	return fmt.Sprintf(dpd.TrackingLinkURL, shipment.TrackingRef), nil
}

// CancelShipment is unconditionally rejected: the carrier offers no
// cancellation operation.
func (s *ShippingService) CancelShipment(ctx context.Context, ref string) error {
	if _, err := s.shipments.FindByReference(ctx, ref); err != nil {
		return err
	}
	return domain.ErrCancelUnsupported
}

// buildOrder maps a shipment onto the carrier's order schema. The sending
// depot comes from the session and the product from the configuration.
func buildOrder(cfg *domain.CarrierConfig, shipment *domain.Shipment) dpd.Order {
	sender := shipment.Sender
	if sender == (domain.Address{}) {
		sender = cfg.Sender
	}

	parcels := make([]dpd.OrderParcel, 0, len(shipment.Parcels))
	for _, p := range shipment.Parcels {
		parcels = append(parcels, dpd.OrderParcel{
			CustomerReference: p.Name,
			Weight:            dpd.Weight(p.WeightKg),
		})
	}

	return dpd.Order{
		SendingDepot: cfg.Session.Depot,
		Product:      string(cfg.Product),
		Sender:       nameAddress(sender),
		Recipient:    nameAddress(shipment.Recipient),
		Parcels:      parcels,
		OrderType:    "consignment",
	}
}

func nameAddress(a domain.Address) dpd.NameAddress {
	return dpd.NameAddress{
		Name:        a.Name,
		Street:      a.Street,
		ZipCode:     a.ZipCode,
		City:        a.City,
		State:       a.Region,
		CountryCode: a.CountryCode,
	}
}

func printOptions(cfg *domain.CarrierConfig) dpd.PrintOptions {
	return dpd.PrintOptions{
		PrinterLanguage: "PDF",
		PaperFormat:     string(cfg.LabelSize),
	}
}

// decodeLabel decodes the base64 label blob. The raw bytes are kept when the
// carrier delivers something that is not valid base64.
func decodeLabel(blob string) []byte {
	pdf, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return []byte(blob)
	}
	return pdf
}
