package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/parcelhub/dpd-gateway/internal/integrations/dpd"
)

func TestFindParcelShops_MapsResultsAndDefaultsLimit(t *testing.T) {
	gateway := &stubGateway{
		shopsFn: func(_ context.Context, auth dpd.Auth, lat, lng float64, limit int) ([]dpd.ParcelShop, error) {
			if auth.Token != "tok-1" {
				t.Fatalf("unexpected auth: %+v", auth)
			}
			if lat != 51.05 || lng != 3.72 {
				t.Fatalf("unexpected coordinates: %v %v", lat, lng)
			}
			if limit != defaultShopLimit {
				t.Fatalf("expected default limit %d, got %d", defaultShopLimit, limit)
			}
			return []dpd.ParcelShop{
				{ID: "10101", Company: "Night Shop", Street: "Veldstraat", HouseNo: "12", ZipCode: "9000", City: "Ghent", Country: "BE"},
			}, nil
		},
	}

	f := NewShopFinder(&stubLogin{cfg: testConfig(time.Now())}, gateway, zerolog.Nop())
	shops, err := f.FindParcelShops(context.Background(), 51.05, 3.72, 0)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(shops) != 1 {
		t.Fatalf("expected 1 shop, got %d", len(shops))
	}
	got := shops[0]
	if got.ID != "10101" || got.Company != "Night Shop" || got.City != "Ghent" {
		t.Fatalf("unexpected shop: %+v", got)
	}
}
