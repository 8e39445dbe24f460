package service

import (
	"context"
	"time"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
	"github.com/parcelhub/dpd-gateway/internal/core/ports"
	"github.com/parcelhub/dpd-gateway/internal/integrations/dpd"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubConfigRepo struct {
	cfg *domain.CarrierConfig
	// last session written through SaveSession
	savedSession *domain.Session
	savedID      string
}

func (r *stubConfigRepo) Get(_ context.Context) (*domain.CarrierConfig, error) {
	if r.cfg == nil {
		return nil, domain.ErrCarrierNotConfigured
	}
	clone := *r.cfg
	return &clone, nil
}

func (r *stubConfigRepo) Save(_ context.Context, cfg *domain.CarrierConfig) error {
	clone := *cfg
	r.cfg = &clone
	return nil
}

func (r *stubConfigRepo) SaveSession(_ context.Context, id string, session domain.Session) error {
	r.savedID = id
	r.savedSession = &session
	r.cfg.Session = session
	return nil
}

type stubShipmentRepo struct {
	byRef map[string]*domain.Shipment

	labelRefs  []string // references SaveLabel was called for, in order
	lastUpdate *ports.TrackingUpdate
	pending    []string
}

func newStubShipmentRepo() *stubShipmentRepo {
	return &stubShipmentRepo{byRef: make(map[string]*domain.Shipment)}
}

func (r *stubShipmentRepo) add(s *domain.Shipment) {
	clone := *s
	r.byRef[s.Reference] = &clone
}

func (r *stubShipmentRepo) Create(_ context.Context, s *domain.Shipment) error {
	if _, ok := r.byRef[s.Reference]; ok {
		return domain.ErrShipmentExists
	}
	r.add(s)
	return nil
}

func (r *stubShipmentRepo) FindByReference(_ context.Context, ref string) (*domain.Shipment, error) {
	s, ok := r.byRef[ref]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubShipmentRepo) SetParcels(_ context.Context, ref string, count int, parcels []domain.Parcel) error {
	s, ok := r.byRef[ref]
	if !ok {
		return domain.ErrShipmentNotFound
	}
	s.PackageCount = count
	s.Parcels = parcels
	return nil
}

func (r *stubShipmentRepo) SaveLabel(_ context.Context, ref, trackingRef, labelName string, labelPDF []byte) error {
	s, ok := r.byRef[ref]
	if !ok {
		return domain.ErrShipmentNotFound
	}
	s.TrackingRef = trackingRef
	s.LabelName = labelName
	s.LabelPDF = labelPDF
	r.labelRefs = append(r.labelRefs, ref)
	return nil
}

func (r *stubShipmentRepo) ApplyTrackingUpdate(_ context.Context, ref string, update ports.TrackingUpdate) error {
	s, ok := r.byRef[ref]
	if !ok {
		return domain.ErrShipmentNotFound
	}
	s.Events = update.Events
	s.DeliveryState = update.State
	if update.Note != nil {
		s.StatusNotes = append(s.StatusNotes, *update.Note)
	}
	r.lastUpdate = &update
	return nil
}

func (r *stubShipmentRepo) ListPendingTracking(_ context.Context) ([]string, error) {
	return r.pending, nil
}

type stubGateway struct {
	getAuthFn     func(ctx context.Context, creds dpd.Credentials) (dpd.AuthResult, error)
	storeOrdersFn func(ctx context.Context, auth dpd.Auth, opts dpd.PrintOptions, order dpd.Order) (dpd.StoreOrdersResult, error)
	trackingFn    func(ctx context.Context, auth dpd.Auth, parcelLabelNumber string) ([]dpd.StatusInfo, error)
	shopsFn       func(ctx context.Context, auth dpd.Auth, lat, lng float64, limit int) ([]dpd.ParcelShop, error)

	authCalls  int
	storeCalls int
}

func (g *stubGateway) GetAuth(ctx context.Context, creds dpd.Credentials) (dpd.AuthResult, error) {
	g.authCalls++
	return g.getAuthFn(ctx, creds)
}

func (g *stubGateway) StoreOrders(ctx context.Context, auth dpd.Auth, opts dpd.PrintOptions, order dpd.Order) (dpd.StoreOrdersResult, error) {
	g.storeCalls++
	return g.storeOrdersFn(ctx, auth, opts, order)
}

func (g *stubGateway) GetTrackingData(ctx context.Context, auth dpd.Auth, parcelLabelNumber string) ([]dpd.StatusInfo, error) {
	return g.trackingFn(ctx, auth, parcelLabelNumber)
}

func (g *stubGateway) FindParcelShops(ctx context.Context, auth dpd.Auth, lat, lng float64, limit int) ([]dpd.ParcelShop, error) {
	return g.shopsFn(ctx, auth, lat, lng, limit)
}

type stubGuard struct {
	allow bool
	err   error
	keys  []string
}

func (g *stubGuard) Allow(_ context.Context, key string) (bool, error) {
	g.keys = append(g.keys, key)
	return g.allow, g.err
}

type publishedTransition struct {
	ref   string
	state domain.DeliveryState
	at    time.Time
}

type stubPublisher struct {
	published []publishedTransition
	err       error
}

func (p *stubPublisher) PublishStateChange(_ context.Context, ref string, state domain.DeliveryState, at time.Time) error {
	p.published = append(p.published, publishedTransition{ref: ref, state: state, at: at})
	return p.err
}

// stubLogin satisfies ports.LoginService with a canned configuration.
type stubLogin struct {
	cfg   *domain.CarrierConfig
	err   error
	calls int
}

func (l *stubLogin) Login(_ context.Context, _ bool) (*domain.CarrierConfig, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	clone := *l.cfg
	return &clone, nil
}

// testConfig returns a configured carrier with a fresh session.
func testConfig(loginAt time.Time) *domain.CarrierConfig {
	return &domain.CarrierConfig{
		ID:        "dpd",
		DelisID:   "delis-1",
		Password:  "secret",
		Language:  "en_US",
		Staging:   true,
		LabelSize: domain.LabelA4,
		Product:   domain.ProductClassic,
		Sender: domain.Address{
			Name:        "Warehouse",
			Street:      "Dock 4",
			ZipCode:     "1000",
			City:        "Brussels",
			CountryCode: "BE",
		},
		Session: domain.Session{
			Token:       "tok-1",
			CustomerUID: "cust-1",
			Depot:       "0530",
			LoginAt:     loginAt,
		},
	}
}
