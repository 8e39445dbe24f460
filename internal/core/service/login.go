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

// LoginManager implements ports.LoginService. It caches the carrier session
// in the configuration record and refuses to re-authenticate while the
// previous login is younger than domain.SessionTTL, because DPD accepts at
// most two logins per 24 hours. One attempt per call, no retries: the
// caller decides whether to force.
type LoginManager struct {
	cfgRepo ports.CarrierConfigRepository
	gateway CarrierGateway
	guard   AuthGuard // optional; nil disables the distributed quota check
	log     zerolog.Logger
	now     func() time.Time
}

func NewLoginManager(cfgRepo ports.CarrierConfigRepository, gateway CarrierGateway, guard AuthGuard, log zerolog.Logger) *LoginManager {
	return &LoginManager{
		cfgRepo: cfgRepo,
		gateway: gateway,
		guard:   guard,
		log:     log,
		now:     time.Now,
	}
}

// Login ensures a usable carrier session. Unless force is set, a stored
// session inside the throttle window is reused without any network call.
func (m *LoginManager) Login(ctx context.Context, force bool) (*domain.CarrierConfig, error) {
	cfg, err := m.cfgRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if !force && cfg.Session.Valid(m.now()) {
		metrics.LoginThrottleSkipsTotal.Inc()
		return cfg, nil
	}

	if m.guard != nil {
		allowed, err := m.guard.Allow(ctx, "dpd:auth:"+cfg.DelisID)
		if err != nil {
			m.log.Warn().Err(err).Msg("auth guard unavailable, attempting login anyway")
		} else if !allowed {
			return nil, domain.ErrAuthRateLimited
		}
	}

	res, err := m.gateway.GetAuth(ctx, dpd.Credentials{
		DelisID:  cfg.DelisID,
		Password: cfg.Password,
		Language: cfg.Language,
		Staging:  cfg.Staging,
	})
	if err != nil {
		metrics.CarrierRequestsTotal.WithLabelValues("getAuth", "error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrLoginFailed, err)
	}
	metrics.CarrierRequestsTotal.WithLabelValues("getAuth", "ok").Inc()

	session := domain.Session{
		Token:       res.Token,
		CustomerUID: res.CustomerUID,
		Depot:       res.Depot,
		LoginAt:     m.now(),
	}
	if err := m.cfgRepo.SaveSession(ctx, cfg.ID, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	cfg.Session = session

	m.log.Info().Str("depot", session.Depot).Str("customer_uid", session.CustomerUID).
		Msg("carrier login succeeded")
	return cfg, nil
}
