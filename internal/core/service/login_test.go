package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
	"github.com/parcelhub/dpd-gateway/internal/integrations/dpd"
)

func TestLogin_ReusesFreshSession(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfgRepo := &stubConfigRepo{cfg: testConfig(now.Add(-1 * time.Hour))}
	gateway := &stubGateway{
		getAuthFn: func(context.Context, dpd.Credentials) (dpd.AuthResult, error) {
			t.Fatal("carrier must not be contacted while the session is fresh")
			return dpd.AuthResult{}, nil
		},
	}

	m := NewLoginManager(cfgRepo, gateway, nil, zerolog.Nop())
	m.now = func() time.Time { return now }

	cfg, err := m.Login(context.Background(), false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if cfg.Session.Token != "tok-1" {
		t.Fatalf("expected cached token, got %s", cfg.Session.Token)
	}
	if gateway.authCalls != 0 {
		t.Fatalf("expected zero carrier calls, got %d", gateway.authCalls)
	}
}

func TestLogin_ExpiredSessionReauthenticates(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfgRepo := &stubConfigRepo{cfg: testConfig(now.Add(-25 * time.Hour))}
	gateway := &stubGateway{
		getAuthFn: func(_ context.Context, creds dpd.Credentials) (dpd.AuthResult, error) {
			want := dpd.Credentials{DelisID: "delis-1", Password: "secret", Language: "en_US", Staging: true}
			if creds != want {
				t.Fatalf("unexpected credentials: %+v", creds)
			}
			return dpd.AuthResult{Token: "tok-2", CustomerUID: "cust-1", Depot: "0530"}, nil
		},
	}
	guard := &stubGuard{allow: true}

	m := NewLoginManager(cfgRepo, gateway, guard, zerolog.Nop())
	m.now = func() time.Time { return now }

	cfg, err := m.Login(context.Background(), false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if cfg.Session.Token != "tok-2" {
		t.Fatalf("expected fresh token, got %s", cfg.Session.Token)
	}
	if cfgRepo.savedSession == nil || cfgRepo.savedSession.Token != "tok-2" {
		t.Fatalf("session was not persisted: %+v", cfgRepo.savedSession)
	}
	if !cfgRepo.savedSession.LoginAt.Equal(now) {
		t.Fatalf("login timestamp not set: %v", cfgRepo.savedSession.LoginAt)
	}
	if len(guard.keys) != 1 || guard.keys[0] != "dpd:auth:delis-1" {
		t.Fatalf("unexpected guard keys: %v", guard.keys)
	}
}

func TestLogin_ForceBypassesCache(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfgRepo := &stubConfigRepo{cfg: testConfig(now.Add(-1 * time.Minute))}
	gateway := &stubGateway{
		getAuthFn: func(context.Context, dpd.Credentials) (dpd.AuthResult, error) {
			return dpd.AuthResult{Token: "tok-forced", CustomerUID: "cust-1", Depot: "0530"}, nil
		},
	}

	m := NewLoginManager(cfgRepo, gateway, nil, zerolog.Nop())
	m.now = func() time.Time { return now }

	cfg, err := m.Login(context.Background(), true)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if cfg.Session.Token != "tok-forced" {
		t.Fatalf("expected forced token, got %s", cfg.Session.Token)
	}
	if gateway.authCalls != 1 {
		t.Fatalf("expected one carrier call, got %d", gateway.authCalls)
	}
}

func TestLogin_QuotaExhausted(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfgRepo := &stubConfigRepo{cfg: testConfig(now.Add(-25 * time.Hour))}
	gateway := &stubGateway{
		getAuthFn: func(context.Context, dpd.Credentials) (dpd.AuthResult, error) {
			t.Fatal("carrier must not be contacted when the quota is spent")
			return dpd.AuthResult{}, nil
		},
	}
	guard := &stubGuard{allow: false}

	m := NewLoginManager(cfgRepo, gateway, guard, zerolog.Nop())
	m.now = func() time.Time { return now }

	_, err := m.Login(context.Background(), false)
	if !errors.Is(err, domain.ErrAuthRateLimited) {
		t.Fatalf("expected ErrAuthRateLimited, got %v", err)
	}
}

func TestLogin_CarrierFailureWrapped(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfgRepo := &stubConfigRepo{cfg: testConfig(time.Time{})}
	gateway := &stubGateway{
		getAuthFn: func(context.Context, dpd.Credentials) (dpd.AuthResult, error) {
			return dpd.AuthResult{}, errors.New("connection refused")
		},
	}

	m := NewLoginManager(cfgRepo, gateway, nil, zerolog.Nop())
	m.now = func() time.Time { return now }

	_, err := m.Login(context.Background(), false)
	if !errors.Is(err, domain.ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}
	if cfgRepo.savedSession != nil {
		t.Fatalf("no session should be persisted after a failed login")
	}
}

func TestLogin_NotConfigured(t *testing.T) {
	m := NewLoginManager(&stubConfigRepo{}, &stubGateway{}, nil, zerolog.Nop())

	_, err := m.Login(context.Background(), false)
	if !errors.Is(err, domain.ErrCarrierNotConfigured) {
		t.Fatalf("expected ErrCarrierNotConfigured, got %v", err)
	}
}
