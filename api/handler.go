// Package api exposes the gateway over HTTP: one generic /chat endpoint and
// narrow per-intent endpoints that bypass the router.
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	gatewayx "github.com/openroadai/canam-assist/gateway"
	contractx "github.com/openroadai/canam-assist/gateway/contract"
	dealersx "github.com/openroadai/canam-assist/gateway/dealers"
)

type Handler struct {
	gateway *gatewayx.Gateway
	catalog contractx.Catalog
	finder  *dealersx.Finder
}

func NewHandler(gateway *gatewayx.Gateway, catalog contractx.Catalog, finder *dealersx.Finder) *Handler {
	return &Handler{
		gateway: gateway,
		catalog: catalog,
		finder:  finder,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/chat", h.Chat)

	e.POST("/v1/spec", h.Spec)
	e.POST("/v1/fluids", h.Fluids)
	e.POST("/v1/tires", h.Tires)
	e.POST("/v1/maintenance", h.Maintenance)
	e.POST("/v1/parts", h.Parts)
	e.POST("/v1/accessories", h.Accessories)
	e.POST("/v1/dealers", h.Dealers)
	e.POST("/v1/recommend", h.Recommend)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer string               `json:"answer"`
	Source contractx.AnswerSource `json:"source"`
}

func (h *Handler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	answer, err := h.gateway.Handle(c.Request().Context(), req.Question)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, chatResponse{Answer: answer.Text, Source: answer.Source})
}

type vehicleRequest struct {
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Trim     string `json:"trim,omitempty"`
	System   string `json:"system,omitempty"`
	Axle     string `json:"axle,omitempty"`
	Miles    int    `json:"miles,omitempty"`
	Assembly string `json:"assembly,omitempty"`
	UseCase  string `json:"use_case,omitempty"`
	Budget   string `json:"budget,omitempty"`
}

func (r *vehicleRequest) normalize() error {
	if r.Model == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "model is required")
	}
	if r.Year == 0 {
		r.Year = contractx.DefaultModelYear
	}
	return nil
}

func (h *Handler) Spec(c echo.Context) error {
	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.normalize(); err != nil {
		return err
	}
	sheet, err := h.catalog.SpecSheet(c.Request().Context(), req.Model, req.Year, req.Trim)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sheet)
}

func (h *Handler) Fluids(c echo.Context) error {
	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.normalize(); err != nil {
		return err
	}
	fluids, err := h.catalog.FluidsTorque(c.Request().Context(), req.Model, req.Year, req.System)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, fluids)
}

func (h *Handler) Tires(c echo.Context) error {
	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.normalize(); err != nil {
		return err
	}
	fitment, err := h.catalog.TireFitment(c.Request().Context(), req.Model, req.Year, req.Axle)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, fitment)
}

func (h *Handler) Maintenance(c echo.Context) error {
	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.normalize(); err != nil {
		return err
	}
	schedule, err := h.catalog.MaintenanceSchedule(c.Request().Context(), req.Model, req.Year, req.Miles)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, schedule)
}

func (h *Handler) Parts(c echo.Context) error {
	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.normalize(); err != nil {
		return err
	}
	if req.Assembly == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "assembly is required")
	}
	parts, err := h.catalog.PartsLookup(c.Request().Context(), req.Model, req.Year, req.Assembly)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, parts)
}

func (h *Handler) Accessories(c echo.Context) error {
	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.normalize(); err != nil {
		return err
	}
	bundle, err := h.catalog.AccessoryBundle(c.Request().Context(), req.Model, req.Year, req.UseCase, req.Budget)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bundle)
}

type dealersRequest struct {
	Zip         string `json:"zip"`
	RadiusMiles int    `json:"radius_miles,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

func (h *Handler) Dealers(c echo.Context) error {
	var req dealersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Zip) != 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "a 5-digit zip is required")
	}

	result, err := h.finder.Find(c.Request().Context(), dealersx.Search{
		Location:    req.Zip,
		RadiusMiles: req.RadiusMiles,
		Limit:       req.Limit,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Recommend(c echo.Context) error {
	var profile contractx.RiderProfile
	if err := c.Bind(&profile); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if profile.Experience == "" {
		profile.Experience = "intermediate"
	}
	if profile.RideType == "" {
		profile.RideType = "solo"
	}

	rec, err := h.catalog.Recommend(c.Request().Context(), profile)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// httpError maps the gateway error taxonomy onto HTTP statuses.
func httpError(err error) error {
	switch {
	case errors.Is(err, contractx.ErrEmptyQuestion):
		return echo.NewHTTPError(http.StatusBadRequest, "Please ask a question.")
	case errors.Is(err, contractx.ErrCatalogNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, contractx.ErrConfiguration):
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	case errors.Is(err, contractx.ErrRunTimeout):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "Assistant timed out.")
	case errors.Is(err, contractx.ErrRunFailed):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
