package forms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandlerUpdateFieldBadPathReturns400(t *testing.T) {
	engine := newTestEngine(NewMemoryDraftStore())
	h := NewHandler(engine)
	s, _, _ := engine.Open(context.Background(), KindDonor)

	e := echo.New()
	c, _ := postJSON(e, "/", `{"path":"name.sub","value":"x"}`)
	c.SetParamNames("id")
	c.SetParamValues(s.ID.String())

	err := h.UpdateField(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a path through a non-object, got %v", err)
	}

	// The session must survive the rejected update.
	c2, rec2 := postJSON(e, "/", `{"path":"name","value":"Sunil"}`)
	c2.SetParamNames("id")
	c2.SetParamValues(s.ID.String())
	if err := h.UpdateField(c2); err != nil {
		t.Fatalf("expected session to remain usable: %v", err)
	}
	if rec2.Code != http.StatusOK {
		t.Errorf("expected 200 after valid update, got %d", rec2.Code)
	}
	if got := Str(s.Values(), "name"); got != "Sunil" {
		t.Errorf("expected valid update applied, got %q", got)
	}
}
