package followup

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/followups", h.List)
	api.POST("/followups", h.Create)
}

func (h *Handler) Create(c echo.Context) error {
	var n Note
	if err := c.Bind(&n); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &n); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *Handler) List(c echo.Context) error {
	phn := c.QueryParam("phn")
	if phn == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phn is required")
	}
	f := Filter{
		Text: c.QueryParam("text"),
		From: c.QueryParam("from"),
		To:   c.QueryParam("to"),
	}
	notes, err := h.svc.ListByPHN(c.Request().Context(), phn, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if notes == nil {
		notes = []*Note{}
	}
	return c.JSON(http.StatusOK, notes)
}
