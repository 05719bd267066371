package model

import "time"

// Configuration represents one physical location's landing page setup
// (a table in a restaurant, a hotel room, a store counter). It mirrors
// the `configurations` table. Optional URL columns are pointers so that
// NULL survives the round trip instead of collapsing to "".
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – human readable label, e.g. "Table 5".
//  EntityType         – free text kind of entity, e.g. "table", "room".
//  BackgroundImageURL – optional background image for the landing page.
//  ShowMenuButton     – whether the menu button is rendered.
//  MenuButtonText     – optional label for the menu button.
//  MenuButtonLink     – optional target of the menu button.
//  WifiConfigURL      – optional Wi-Fi onboarding link.
//  CreatedAt          – timestamp of creation.
//  UpdatedAt          – timestamp of last update.
type Configuration struct {
	ID                 uint64    `json:"id"`
	Name               string    `json:"name"`
	EntityType         string    `json:"entity_type"`
	BackgroundImageURL *string   `json:"background_image_url"`
	ShowMenuButton     bool      `json:"show_menu_button"`
	MenuButtonText     *string   `json:"menu_button_text"`
	MenuButtonLink     *string   `json:"menu_button_link"`
	WifiConfigURL      *string   `json:"wifi_config_url"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CustomButton is an ordered, togglable call-to-action link belonging to
// a Configuration. It mirrors the `custom_buttons` table. Buttons have no
// independent lifecycle: the whole set for a configuration is replaced on
// every update, so IDs are not stable across saves.
//
// Fields:
//  ID              – primary key identifier (fresh after every update).
//  ConfigurationID – owning configuration; cascade-deleted with it.
//  ButtonText      – label shown on the landing page.
//  ButtonURL       – absolute target URL.
//  DisplayOrder    – ascending presentation order.
//  IsActive        – inactive buttons are kept but not rendered publicly.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type CustomButton struct {
	ID              uint64    `json:"id"`
	ConfigurationID uint64    `json:"configuration_id"`
	ButtonText      string    `json:"button_text"`
	ButtonURL       string    `json:"button_url"`
	DisplayOrder    int       `json:"display_order"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
