package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/parcelhub/dpd-gateway/internal/core/ports"
)

// ShopsHandler looks up carrier parcel shops near a point.
type ShopsHandler struct {
	finder ports.ShopFinderService
}

func NewShopsHandler(finder ports.ShopFinderService) *ShopsHandler {
	return &ShopsHandler{finder: finder}
}

// Find handles GET /v1/parcelshops?lat=&lng=&limit=.
//
// @Summary      Find parcel shops near a coordinate
// @Tags         parcelshops
// @Produce      json
// @Param        lat    query     number  true   "Latitude"
// @Param        lng    query     number  true   "Longitude"
// @Param        limit  query     int     false  "Maximum results (default 10)"
// @Success      200    {array}   ports.ParcelShopInfo
// @Failure      400    {object}  map[string]string
// @Failure      502    {object}  map[string]string
// @Router       /v1/parcelshops [get]
func (h *ShopsHandler) Find(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lng must be a number")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
	}

	shops, err := h.finder.FindParcelShops(c.Request().Context(), lat, lng, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shops)
}
