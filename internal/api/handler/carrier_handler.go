package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parcelhub/dpd-gateway/internal/core/ports"
)

// CarrierHandler exposes the carrier connection itself: forcing a fresh
// login doubles as the operator's connection test.
type CarrierHandler struct {
	login ports.LoginService
}

func NewCarrierHandler(login ports.LoginService) *CarrierHandler {
	return &CarrierHandler{login: login}
}

type loginResponse struct {
	DelisID     string    `json:"delis_id"`
	Depot       string    `json:"depot"`
	CustomerUID string    `json:"customer_uid"`
	Staging     bool      `json:"staging"`
	LoggedInAt  time.Time `json:"logged_in_at"`
	// Cached is true when an existing session was reused instead of
	// contacting the carrier.
	Cached bool `json:"cached"`
}

// Login handles POST /v1/carrier/login. With ?force=true the cached session
// is discarded and the carrier is contacted, subject to the login quota.
//
// @Summary      Test the carrier connection
// @Tags         carrier
// @Produce      json
// @Param        force  query     bool  false  "Discard the cached session and log in again"
// @Success      200    {object}  loginResponse
// @Failure      429    {object}  map[string]string
// @Failure      502    {object}  map[string]string
// @Failure      503    {object}  map[string]string
// @Router       /v1/carrier/login [post]
func (h *CarrierHandler) Login(c echo.Context) error {
	force := c.QueryParam("force") == "true"

	before := time.Now()
	cfg, err := h.login.Login(c.Request().Context(), force)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		DelisID:     cfg.DelisID,
		Depot:       cfg.Session.Depot,
		CustomerUID: cfg.Session.CustomerUID,
		Staging:     cfg.Staging,
		LoggedInAt:  cfg.Session.LoginAt,
		Cached:      cfg.Session.LoginAt.Before(before),
	})
}
