package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parcelhub/dpd-gateway/internal/core/ports"
)

// RateHandler quotes shipping prices from the configured pricing mode.
type RateHandler struct {
	rates ports.RateService
}

func NewRateHandler(rates ports.RateService) *RateHandler {
	return &RateHandler{rates: rates}
}

// Quote handles POST /v1/rates.
//
// @Summary      Quote a shipping price
// @Tags         rates
// @Accept       json
// @Produce      json
// @Param        body  body      rateRequest  true  "Order totals the rule variables are read from"
// @Success      200   {object}  ports.RateResult
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/rates [post]
func (h *RateHandler) Quote(c echo.Context) error {
	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.rates.RateShipment(c.Request().Context(), ports.RateInput{
		Total:    req.Total,
		WeightKg: req.WeightKg,
		Volume:   req.Volume,
		Quantity: req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
