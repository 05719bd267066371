package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/landing-page-manager/internal/middleware"
	"github.com/iliyamo/landing-page-manager/internal/model"
	"github.com/iliyamo/landing-page-manager/internal/queue"
	"github.com/iliyamo/landing-page-manager/internal/repository"
)

// ConfigurationStore is the slice of the configuration repository the
// admin endpoints need.
type ConfigurationStore interface {
	Create(ctx context.Context, cfg model.Configuration, buttons []repository.ButtonInput) (uint64, error)
	Update(ctx context.Context, id uint64, cfg model.Configuration, buttons []repository.ButtonInput) error
	GetWithButtons(ctx context.Context, id uint64) (*model.Configuration, []model.CustomButton, error)
	List(ctx context.Context) ([]model.Configuration, error)
	Delete(ctx context.Context, id uint64) error
}

// EventPublisher pushes an audit event after a successful write. It is
// best-effort: a nil publisher or a failed publish never fails the
// request.
type EventPublisher func(ctx context.Context, ev queue.ConfigChangedEvent) error

// ConfigurationHandler bundles dependencies for the admin CRUD
// endpoints over configurations and their custom buttons.
type ConfigurationHandler struct {
	Configs ConfigurationStore
	Cache   *middleware.Invalidator // nil-safe
	Events  EventPublisher          // nil disables publishing
}

func NewConfigurationHandler(s ConfigurationStore, inv *middleware.Invalidator, pub EventPublisher) *ConfigurationHandler {
	return &ConfigurationHandler{Configs: s, Cache: inv, Events: pub}
}

// ----- DTOs -----

type customButtonReq struct {
	ButtonText   string `json:"button_text"`
	ButtonURL    string `json:"button_url"`
	DisplayOrder *int   `json:"display_order"`
	IsActive     *bool  `json:"is_active"` // defaults to true when omitted
}

type configurationReq struct {
	Name               string            `json:"name"`
	EntityType         string            `json:"entity_type"`
	BackgroundImageURL *string           `json:"background_image_url"`
	ShowMenuButton     bool              `json:"show_menu_button"`
	MenuButtonText     *string           `json:"menu_button_text"`
	MenuButtonLink     *string           `json:"menu_button_link"`
	WifiConfigURL      *string           `json:"wifi_config_url"`
	CustomButtons      []customButtonReq `json:"custom_buttons"`
}

// isAbsoluteURL reports whether s parses as an absolute URL with both
// a scheme and a host.
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// optionalURL normalizes an optional URL field: nil or blank becomes
// nil (stored as NULL, never as ""); anything else must be absolute.
func optionalURL(p *string, field string, fields map[string]string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	if !isAbsoluteURL(v) {
		fields[field] = "must be a valid URL"
		return nil
	}
	return &v
}

// optionalText normalizes an optional free-text field the same way but
// without URL validation.
func optionalText(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// validate checks the request and converts it into repository inputs.
// A non-empty fields map means the request is rejected with per-field
// messages; nothing is persisted.
func (req *configurationReq) validate() (model.Configuration, []repository.ButtonInput, map[string]string) {
	fields := map[string]string{}

	cfg := model.Configuration{
		Name:           strings.TrimSpace(req.Name),
		EntityType:     strings.TrimSpace(req.EntityType),
		ShowMenuButton: req.ShowMenuButton,
	}
	if cfg.Name == "" {
		fields["name"] = "name is required"
	}
	if cfg.EntityType == "" {
		fields["entity_type"] = "entity type is required"
	}
	cfg.BackgroundImageURL = optionalURL(req.BackgroundImageURL, "background_image_url", fields)
	cfg.MenuButtonText = optionalText(req.MenuButtonText)
	cfg.MenuButtonLink = optionalURL(req.MenuButtonLink, "menu_button_link", fields)
	cfg.WifiConfigURL = optionalURL(req.WifiConfigURL, "wifi_config_url", fields)

	buttons := make([]repository.ButtonInput, 0, len(req.CustomButtons))
	for i, b := range req.CustomButtons {
		text := strings.TrimSpace(b.ButtonText)
		if text == "" {
			fields[fmt.Sprintf("custom_buttons[%d].button_text", i)] = "button text is required"
		}
		btnURL := strings.TrimSpace(b.ButtonURL)
		if !isAbsoluteURL(btnURL) {
			fields[fmt.Sprintf("custom_buttons[%d].button_url", i)] = "must be a valid URL"
		}
		active := true
		if b.IsActive != nil {
			active = *b.IsActive
		}
		buttons = append(buttons, repository.ButtonInput{
			Text:   text,
			URL:    btnURL,
			Order:  b.DisplayOrder,
			Active: active,
		})
	}
	return cfg, buttons, fields
}

// afterWrite invalidates cached listings/landing pages and publishes
// the audit event. Both are best-effort side effects of a committed
// write; neither can fail the request.
func (h *ConfigurationHandler) afterWrite(c echo.Context, action string, id uint64, cfg model.Configuration, buttonCount int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h.Cache.Flush(ctx)
	if h.Events == nil {
		return
	}
	actor, _ := c.Get("user_id").(uint64)
	_ = h.Events(ctx, queue.ConfigChangedEvent{
		ConfigurationID: id,
		Action:          action,
		ActorUserID:     actor,
		Name:            cfg.Name,
		EntityType:      cfg.EntityType,
		ButtonCount:     buttonCount,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	})
}

// Create handles POST /admin/configurations. The configuration row and
// its full button set are written in one transaction; buttons without
// an explicit display_order get their position in the submitted list.
func (h *ConfigurationHandler) Create(c echo.Context) error {
	var req configurationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	cfg, buttons, fields := req.validate()
	if len(fields) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Configs.Create(ctx, cfg, buttons)
	if err != nil {
		c.Logger().Errorf("create configuration failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save configuration"})
	}
	h.afterWrite(c, "create", id, cfg, len(buttons))
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Update handles PUT /admin/configurations/:id. Scalar fields are
// rewritten and the button set is replaced wholesale, all in one
// transaction, so button ids churn on every save.
func (h *ConfigurationHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req configurationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	cfg, buttons, fields := req.validate()
	if len(fields) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Configs.Update(ctx, id, cfg, buttons); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "configuration not found"})
		}
		c.Logger().Errorf("update configuration %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save configuration"})
	}
	h.afterWrite(c, "update", id, cfg, len(buttons))

	updated, updatedButtons, err := h.Configs.GetWithButtons(ctx, id)
	if err != nil {
		// The write committed; fall back to a bare success.
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}
	return c.JSON(http.StatusOK, echo.Map{"configuration": updated, "custom_buttons": buttonsOrEmpty(updatedButtons)})
}

// Get handles GET /admin/configurations/:id and returns the
// configuration with its buttons sorted by display_order.
func (h *ConfigurationHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "configuration not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cfg, buttons, err := h.Configs.GetWithButtons(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "configuration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"configuration": cfg, "custom_buttons": buttonsOrEmpty(buttons)})
}

// List handles GET /admin/configurations, most recent first.
func (h *ConfigurationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Configs.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []model.Configuration{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Delete handles DELETE /admin/configurations/:id. The cascade rule
// removes dependent buttons; repeating the call is harmless.
func (h *ConfigurationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Configs.Delete(ctx, id); err != nil {
		c.Logger().Errorf("delete configuration %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete configuration"})
	}
	h.afterWrite(c, "delete", id, model.Configuration{}, 0)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func buttonsOrEmpty(b []model.CustomButton) []model.CustomButton {
	if b == nil {
		return []model.CustomButton{}
	}
	return b
}
