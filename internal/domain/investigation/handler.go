package investigation

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/investigations", h.List)
	api.POST("/investigations", h.Add)
}

func (h *Handler) Add(c echo.Context) error {
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.store.Add(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) List(c echo.Context) error {
	phn := c.QueryParam("phn")
	if phn == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phn is required")
	}
	if tag := c.QueryParam("tag"); tag != "" {
		n, _ := strconv.Atoi(c.QueryParam("recent"))
		if n <= 0 {
			n = 5
		}
		return c.JSON(http.StatusOK, h.store.Recent(phn, tag, n))
	}
	return c.JSON(http.StatusOK, h.store.ListByPHN(phn))
}
