package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parcelhub/dpd-gateway/internal/core/ports"
)

// ShipmentHandler exposes the shipment lifecycle over HTTP: registration,
// carrier submission, label download and tracking refresh.
type ShipmentHandler struct {
	shipments ports.ShipmentService
	shipping  ports.ShippingService
	tracking  ports.TrackingService
}

func NewShipmentHandler(shipments ports.ShipmentService, shipping ports.ShippingService, tracking ports.TrackingService) *ShipmentHandler {
	return &ShipmentHandler{
		shipments: shipments,
		shipping:  shipping,
		tracking:  tracking,
	}
}

// Create handles POST /v1/shipments.
//
// @Summary      Register a shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body      createShipmentRequest  true  "Shipment details"
// @Success      201   {object}  shipmentResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shipment, err := h.shipments.CreateShipment(c.Request().Context(), ports.CreateShipmentInput{
		Reference:    req.Reference,
		Origin:       req.Origin,
		Sender:       toAddressInput(req.Sender),
		Recipient:    toAddressInput(req.Recipient),
		WeightKg:     req.WeightKg,
		PackageCount: req.PackageCount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toShipmentResponse(shipment))
}

// Get handles GET /v1/shipments/:reference.
//
// @Summary      Get a shipment by reference
// @Tags         shipments
// @Produce      json
// @Param        reference  path      string  true  "Shipment reference"
// @Success      200        {object}  shipmentResponse
// @Failure      404        {object}  map[string]string
// @Router       /v1/shipments/{reference} [get]
func (h *ShipmentHandler) Get(c echo.Context) error {
	shipment, err := h.shipments.GetShipment(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// SetPackages handles PUT /v1/shipments/:reference/packages. Changing the
// count regenerates the parcel list, so per-parcel weights reset.
//
// @Summary      Update the package count
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        reference  path      string              true  "Shipment reference"
// @Param        body       body      setPackagesRequest  true  "New package count"
// @Success      200        {object}  shipmentResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /v1/shipments/{reference}/packages [put]
func (h *ShipmentHandler) SetPackages(c echo.Context) error {
	var req setPackagesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shipment, err := h.shipments.SetPackageCount(c.Request().Context(), c.Param("reference"), req.PackageCount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// Submit handles POST /v1/shipments/submit. Shipments are sent to the
// carrier in request order; the first carrier fault aborts the whole batch.
//
// @Summary      Submit shipments to the carrier
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body      submitShipmentsRequest  true  "References to submit"
// @Success      200   {array}   ports.ShippingResult
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/shipments/submit [post]
func (h *ShipmentHandler) Submit(c echo.Context) error {
	var req submitShipmentsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	results, err := h.shipping.SendShipping(c.Request().Context(), req.References)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

// Label handles GET /v1/shipments/:reference/label, streaming the stored
// label PDF.
//
// @Summary      Download the shipping label
// @Tags         shipments
// @Produce      application/pdf
// @Param        reference  path  string  true  "Shipment reference"
// @Success      200        {file}    binary
// @Failure      404        {object}  map[string]string
// @Router       /v1/shipments/{reference}/label [get]
func (h *ShipmentHandler) Label(c echo.Context) error {
	label, err := h.shipments.GetLabel(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+label.Name+`"`)
	return c.Blob(http.StatusOK, "application/pdf", label.PDF)
}

// TrackingLink handles GET /v1/shipments/:reference/tracking-link. The URL
// is empty until the shipment has been submitted.
//
// @Summary      Get the public tracking URL
// @Tags         shipments
// @Produce      json
// @Param        reference  path      string  true  "Shipment reference"
// @Success      200        {object}  trackingLinkResponse
// @Failure      404        {object}  map[string]string
// @Router       /v1/shipments/{reference}/tracking-link [get]
func (h *ShipmentHandler) TrackingLink(c echo.Context) error {
	ref := c.Param("reference")
	url, err := h.shipping.TrackingLink(c.Request().Context(), ref)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trackingLinkResponse{Reference: ref, URL: url})
}

// RefreshTracking handles POST /v1/shipments/:reference/refresh-tracking,
// polling the carrier once and returning the reconciled shipment.
//
// @Summary      Refresh tracking from the carrier
// @Tags         shipments
// @Produce      json
// @Param        reference  path      string  true  "Shipment reference"
// @Success      200        {object}  shipmentResponse
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string
// @Failure      502        {object}  map[string]string
// @Router       /v1/shipments/{reference}/refresh-tracking [post]
func (h *ShipmentHandler) RefreshTracking(c echo.Context) error {
	ref := c.Param("reference")
	if err := h.tracking.RefreshTracking(c.Request().Context(), ref); err != nil {
		return err
	}
	shipment, err := h.shipments.GetShipment(c.Request().Context(), ref)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// Cancel handles DELETE /v1/shipments/:reference. The carrier offers no
// cancellation API, so this always fails once the shipment exists.
//
// @Summary      Cancel a shipment
// @Tags         shipments
// @Produce      json
// @Param        reference  path      string  true  "Shipment reference"
// @Failure      404        {object}  map[string]string
// @Failure      422        {object}  map[string]string
// @Router       /v1/shipments/{reference} [delete]
func (h *ShipmentHandler) Cancel(c echo.Context) error {
	return h.shipping.CancelShipment(c.Request().Context(), c.Param("reference"))
}
