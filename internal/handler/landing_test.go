package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/landing-page-manager/internal/model"
)

func landingCtx(id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/l/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestResolveFiltersInactiveAndKeepsOrder(t *testing.T) {
	store := newFakeConfigStore()
	store.configs[1] = model.Configuration{ID: 1, Name: "Hotel Sonne", EntityType: "hotel"}
	// Already sorted ascending by display_order, the way the repository
	// returns them; the middle one is switched off.
	store.readButtons = []model.CustomButton{
		{ID: 10, ConfigurationID: 1, ButtonText: "Book", ButtonURL: "https://example.com/book", DisplayOrder: 0, IsActive: true},
		{ID: 11, ConfigurationID: 1, ButtonText: "Hidden", ButtonURL: "https://example.com/x", DisplayOrder: 1, IsActive: false},
		{ID: 12, ConfigurationID: 1, ButtonText: "Call", ButtonURL: "https://example.com/call", DisplayOrder: 2, IsActive: true},
	}
	h := NewLandingHandler(store)

	c, rec := landingCtx("1")
	if err := h.Resolve(c); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Name    string `json:"name"`
		Buttons []struct {
			ButtonText   string `json:"button_text"`
			DisplayOrder int    `json:"display_order"`
		} `json:"buttons"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(out.Buttons) != 2 {
		t.Fatalf("got %d buttons, want 2 (inactive filtered out)", len(out.Buttons))
	}
	if out.Buttons[0].ButtonText != "Book" || out.Buttons[1].ButtonText != "Call" {
		t.Errorf("button order changed: %+v", out.Buttons)
	}
}

func TestResolveEmptyButtonsSerializeAsArray(t *testing.T) {
	store := newFakeConfigStore()
	store.configs[1] = model.Configuration{ID: 1, Name: "Bare", EntityType: "restaurant"}
	h := NewLandingHandler(store)

	c, rec := landingCtx("1")
	if err := h.Resolve(c); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if string(out["buttons"]) != "[]" {
		t.Errorf("buttons = %s, want []", out["buttons"])
	}
}

func TestResolveUnknownID(t *testing.T) {
	h := NewLandingHandler(newFakeConfigStore())
	for _, id := range []string{"99", "not-a-number"} {
		c, rec := landingCtx(id)
		if err := h.Resolve(c); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("id %q: status = %d, want 404", id, rec.Code)
		}
	}
}
