package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/landing-page-manager/internal/repository"
)

// LandingHandler serves the public, unauthenticated read path: one
// rendered model per configuration id.
type LandingHandler struct {
	Configs ConfigurationStore
}

func NewLandingHandler(s ConfigurationStore) *LandingHandler { return &LandingHandler{Configs: s} }

type landingButton struct {
	ButtonText   string `json:"button_text"`
	ButtonURL    string `json:"button_url"`
	DisplayOrder int    `json:"display_order"`
}

// landingResp is the render model for a landing page. Menu and Wi-Fi
// fields pass through verbatim; the presentation layer decides what to
// show based on show_menu_button and on which links are present.
type landingResp struct {
	Name               string          `json:"name"`
	EntityType         string          `json:"entity_type"`
	BackgroundImageURL *string         `json:"background_image_url"`
	ShowMenuButton     bool            `json:"show_menu_button"`
	MenuButtonText     *string         `json:"menu_button_text"`
	MenuButtonLink     *string         `json:"menu_button_link"`
	WifiConfigURL      *string         `json:"wifi_config_url"`
	Buttons            []landingButton `json:"buttons"`
}

// Resolve handles GET /l/:id. An unknown id is a distinct not-found
// outcome, never an empty-but-valid page. Buttons come back filtered
// to active ones, in ascending display_order.
func (h *LandingHandler) Resolve(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cfg, buttons, err := h.Configs.GetWithButtons(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	out := landingResp{
		Name:               cfg.Name,
		EntityType:         cfg.EntityType,
		BackgroundImageURL: cfg.BackgroundImageURL,
		ShowMenuButton:     cfg.ShowMenuButton,
		MenuButtonText:     cfg.MenuButtonText,
		MenuButtonLink:     cfg.MenuButtonLink,
		WifiConfigURL:      cfg.WifiConfigURL,
		Buttons:            []landingButton{},
	}
	// Repository order is already ascending by display_order; keep only
	// active buttons.
	for _, b := range buttons {
		if !b.IsActive {
			continue
		}
		out.Buttons = append(out.Buttons, landingButton{
			ButtonText:   b.ButtonText,
			ButtonURL:    b.ButtonURL,
			DisplayOrder: b.DisplayOrder,
		})
	}
	return c.JSON(http.StatusOK, out)
}
