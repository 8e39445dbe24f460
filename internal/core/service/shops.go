package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/parcelhub/dpd-gateway/internal/api/metrics"
	"github.com/parcelhub/dpd-gateway/internal/core/ports"
	"github.com/parcelhub/dpd-gateway/internal/integrations/dpd"
)

const defaultShopLimit = 10

// ShopFinder implements ports.ShopFinderService over the carrier's parcel
// shop finder operation.
type ShopFinder struct {
	login   ports.LoginService
	gateway CarrierGateway
	log     zerolog.Logger
}

func NewShopFinder(login ports.LoginService, gateway CarrierGateway, log zerolog.Logger) *ShopFinder {
	return &ShopFinder{login: login, gateway: gateway, log: log}
}

func (f *ShopFinder) FindParcelShops(ctx context.Context, lat, lng float64, limit int) ([]ports.ParcelShopInfo, error) {
	cfg, err := f.login.Login(ctx, false)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultShopLimit
	}

	shops, err := f.gateway.FindParcelShops(ctx, carrierAuth(cfg), lat, lng, limit)
	if err != nil {
		metrics.CarrierRequestsTotal.WithLabelValues(dpd.OpFindParcelShops, "error").Inc()
		return nil, err
	}
	metrics.CarrierRequestsTotal.WithLabelValues(dpd.OpFindParcelShops, "ok").Inc()

	out := make([]ports.ParcelShopInfo, 0, len(shops))
	for _, s := range shops {
		out = append(out, ports.ParcelShopInfo{
			ID:       s.ID,
			Company:  s.Company,
			Street:   s.Street,
			HouseNo:  s.HouseNo,
			ZipCode:  s.ZipCode,
			City:     s.City,
			Country:  s.Country,
			Distance: s.Distance,
		})
	}
	return out, nil
}
