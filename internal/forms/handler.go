package forms

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler exposes the wizard engine over HTTP.
type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// RegisterRoutes registers the form-session routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/forms/:kind/sessions", h.OpenSession)
	api.GET("/forms/sessions/:id", h.GetSession)
	api.POST("/forms/sessions/:id/fields", h.UpdateField)
	api.POST("/forms/sessions/:id/data", h.SetFormData)
	api.POST("/forms/sessions/:id/search", h.SetSearchKey)
	api.POST("/forms/sessions/:id/patient", h.BindPatient)
	api.POST("/forms/sessions/:id/aux/:list", h.AddAuxRow)
	api.DELETE("/forms/sessions/:id/aux/:list/:idx", h.RemoveAuxRow)
	api.POST("/forms/sessions/:id/next", h.Next)
	api.POST("/forms/sessions/:id/previous", h.Previous)
	api.POST("/forms/sessions/:id/jump", h.Jump)
	api.POST("/forms/sessions/:id/submit", h.Submit)
	api.DELETE("/forms/sessions/:id", h.Reset)
}

type sessionView struct {
	ID       string              `json:"id"`
	Kind     Kind                `json:"kind"`
	Step     int                 `json:"step"`
	StepName string              `json:"stepName"`
	Form     Values              `json:"form"`
	Aux      map[string][]Values `json:"auxiliaryLists,omitempty"`
	Restored bool                `json:"restored,omitempty"`
}

func viewOf(s *Session, restored bool) *sessionView {
	snap := s.Snapshot()
	return &sessionView{
		ID:       s.ID.String(),
		Kind:     s.Kind,
		Step:     snap.Step,
		StepName: s.StepName(),
		Form:     snap.Form,
		Aux:      snap.AuxiliaryLists,
		Restored: restored,
	}
}

func (h *Handler) OpenSession(c echo.Context) error {
	kind := Kind(c.Param("kind"))
	if !kind.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown form kind")
	}
	s, restored, err := h.engine.Open(c.Request().Context(), kind)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, viewOf(s, restored))
}

func (h *Handler) session(c echo.Context) (*Session, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	s, ok := h.engine.Get(id)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return s, nil
}

func (h *Handler) GetSession(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewOf(s, false))
}

func (h *Handler) UpdateField(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var body struct {
		Path  string `json:"path"`
		Value any    `json:"value"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}
	if err := s.UpdateField(body.Path, body.Value); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, viewOf(s, false))
}

func (h *Handler) SetFormData(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.SetFormData(Values(body))
	return c.JSON(http.StatusOK, viewOf(s, false))
}

func (h *Handler) SetSearchKey(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var body struct {
		PHN string `json:"phn"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.SetSearchKey(body.PHN)
	return c.JSON(http.StatusOK, viewOf(s, false))
}

// BindPatient applies a fetched demographic payload. A payload for a PHN the
// session is no longer searching for is rejected as stale.
func (h *Handler) BindPatient(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var body struct {
		PHN          string         `json:"phn"`
		Demographics map[string]any `json:"demographics"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !s.BindPatient(body.PHN, Values(body.Demographics)) {
		return echo.NewHTTPError(http.StatusConflict, "stale demographics: session is searching a different PHN")
	}
	return c.JSON(http.StatusOK, viewOf(s, false))
}

func (h *Handler) AddAuxRow(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var row map[string]any
	if err := c.Bind(&row); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.AddAuxRow(c.Param("list"), Values(row))
	return c.JSON(http.StatusOK, viewOf(s, false))
}

func (h *Handler) RemoveAuxRow(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	idx := -1
	if err := echo.PathParamsBinder(c).Int("idx", &idx).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid row index")
	}
	s.RemoveAuxRow(c.Param("list"), idx)
	return c.JSON(http.StatusOK, viewOf(s, false))
}

func (h *Handler) Next(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	if errs := s.Next(); len(errs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
	}
	return c.JSON(http.StatusOK, viewOf(s, false))
}

func (h *Handler) Previous(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	s.Previous()
	return c.JSON(http.StatusOK, viewOf(s, false))
}

func (h *Handler) Jump(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var body struct {
		Step int `json:"step"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	errs, err := s.JumpTo(body.Step)
	if errors.Is(err, ErrForwardJump) || errors.Is(err, ErrHiddenStep) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
	}
	return c.JSON(http.StatusOK, viewOf(s, false))
}

func (h *Handler) Submit(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	record, err := s.Submit(c.Request().Context())
	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"step":   verr.Step,
			"errors": verr.Fields,
		})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusCreated, record)
}

func (h *Handler) Reset(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	s.Reset(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}
