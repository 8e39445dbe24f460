package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
	"github.com/parcelhub/dpd-gateway/internal/integrations/dpd"
)

// errorResponse is the JSON envelope every API error is rendered as.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler maps domain and carrier errors to HTTP status codes
// and renders the canonical {"error": "<message>"} envelope. Unknown errors
// are logged with their cause and returned as an opaque 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrShipmentNotFound):
		return http.StatusNotFound, "shipment not found"
	case errors.Is(err, domain.ErrNoLabelYet):
		return http.StatusNotFound, "no label stored for this shipment yet"
	case errors.Is(err, domain.ErrShipmentExists):
		return http.StatusConflict, "shipment reference already exists"
	case errors.Is(err, domain.ErrCancelUnsupported):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrNoTrackingRef):
		return http.StatusConflict, "shipment has not been submitted to the carrier"
	case errors.Is(err, domain.ErrNoMatchingRule):
		return http.StatusUnprocessableEntity, "no pricing rule matches this shipment"
	case errors.Is(err, domain.ErrCarrierNotConfigured):
		return http.StatusServiceUnavailable, "carrier connection is not configured"
	case errors.Is(err, domain.ErrAuthRateLimited):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrLoginFailed):
		return http.StatusBadGateway, err.Error()
	}

	// Carrier-side failures surfaced by the SOAP client.
	var fault *dpd.Fault
	if errors.As(err, &fault) {
		return http.StatusBadGateway, fault.Error()
	}
	var statusErr *dpd.StatusError
	if errors.As(err, &statusErr) {
		return http.StatusBadGateway, statusErr.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
