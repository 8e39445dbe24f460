package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/parcelhub/dpd-gateway/internal/api/metrics"
	"github.com/parcelhub/dpd-gateway/internal/core/domain"
	"github.com/parcelhub/dpd-gateway/internal/core/ports"
	"github.com/parcelhub/dpd-gateway/internal/integrations/dpd"
)

// TrackingReconciler implements ports.TrackingService: it polls the carrier
// for a shipment's parcel life cycle and merges the reported statuses into
// the shipment's event log.
type TrackingReconciler struct {
	login     ports.LoginService
	shipments ports.ShipmentRepository
	gateway   CarrierGateway
	publisher TransitionPublisher // optional; nil disables broker messages
	log       zerolog.Logger
	now       func() time.Time
}

func NewTrackingReconciler(
	login ports.LoginService,
	shipments ports.ShipmentRepository,
	gateway CarrierGateway,
	publisher TransitionPublisher,
	log zerolog.Logger,
) *TrackingReconciler {
	return &TrackingReconciler{
		login:     login,
		shipments: shipments,
		gateway:   gateway,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// RefreshTracking polls the carrier once for the shipment and persists the
// merged result. Carrier faults propagate to the caller unchanged.
func (r *TrackingReconciler) RefreshTracking(ctx context.Context, ref string) error {
	cfg, err := r.login.Login(ctx, false)
	if err != nil {
		return err
	}

	shipment, err := r.shipments.FindByReference(ctx, ref)
	if err != nil {
		return err
	}
	if shipment.TrackingRef == "" {
		return fmt.Errorf("%w: %s", domain.ErrNoTrackingRef, ref)
	}

	r.log.Info().Str("reference", ref).Str("tracking_ref", shipment.TrackingRef).
		Msg("synchronising delivery state with carrier")

	states, err := r.gateway.GetTrackingData(ctx, carrierAuth(cfg), shipment.TrackingRef)
	if err != nil {
		metrics.CarrierRequestsTotal.WithLabelValues(dpd.OpGetTrackingData, "error").Inc()
		return err
	}
	metrics.CarrierRequestsTotal.WithLabelValues(dpd.OpGetTrackingData, "ok").Inc()

	update, merged := reconcile(shipment, states, r.now())
	if err := r.shipments.ApplyTrackingUpdate(ctx, ref, update); err != nil {
		return fmt.Errorf("apply tracking update for %s: %w", ref, err)
	}
	metrics.TrackingEventsMergedTotal.Add(float64(merged))

	if update.Note != nil {
		metrics.StateTransitionsTotal.WithLabelValues(string(update.State)).Inc()
		r.log.Info().Str("reference", ref).Str("state", string(update.State)).
			Msg(update.Note.Message)
		if r.publisher != nil {
			if err := r.publisher.PublishStateChange(ctx, ref, update.State, update.Note.Timestamp); err != nil {
				r.log.Warn().Err(err).Str("reference", ref).Msg("failed to publish state transition")
			}
		}
	}
	return nil
}

// reconcile merges a carrier status list into the shipment's event log.
//
// Merge policy:
//   - statuses not yet reached are ignored entirely;
//   - an unseen state code appends a new event;
//   - a seen state code updates the stored event in place, except that an
//     empty location or date on this poll leaves the previously stored value
//     untouched: the carrier stops reporting those once a state has passed;
//   - a status flagged current whose code differs from the stored coarse
//     state moves the coarse state and produces exactly one note.
//
// The second return value counts the statuses merged by this poll, appended
// or updated in place, for the metrics counter. Skipped statuses and events
// carried over unchanged from the stored log are not counted.
func reconcile(shipment *domain.Shipment, states []dpd.StatusInfo, now time.Time) (ports.TrackingUpdate, int) {
	events := make([]domain.DeliveryEvent, len(shipment.Events))
	copy(events, shipment.Events)

	state := shipment.DeliveryState
	var note *domain.StatusNote
	merged := 0

	for _, line := range states {
		if !line.Reached {
			continue
		}
		merged++

		code := domain.DeliveryState(line.Status)
		idx := -1
		for i := range events {
			if events[i].State == code {
				idx = i
				break
			}
		}

		if idx < 0 {
			events = append(events, domain.DeliveryEvent{
				State:     code,
				Reached:   line.Reached,
				Current:   line.Current,
				Location:  line.Location,
				Date:      line.Date,
				ExtraInfo: line.ExtraInfo,
			})
		} else {
			ev := &events[idx]
			ev.Reached = line.Reached
			ev.Current = line.Current
			ev.ExtraInfo = line.ExtraInfo
			if line.Location != "" {
				ev.Location = line.Location
			}
			if line.Date != "" {
				ev.Date = line.Date
			}
		}

		if line.Current && state != code {
			state = code
			note = &domain.StatusNote{
				State:     code,
				Message:   fmt.Sprintf("Shipment state changed to: %s", code.Label()),
				Timestamp: now,
			}
		}
	}

	return ports.TrackingUpdate{Events: events, State: state, Note: note}, merged
}
