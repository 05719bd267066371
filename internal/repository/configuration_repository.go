package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/landing-page-manager/internal/model"
)

// ConfigurationRepo provides CRUD operations for configurations and
// their custom buttons. A configuration exclusively owns its button
// collection: buttons are written together with the parent inside one
// transaction and removed by the storage layer's ON DELETE CASCADE
// rule when the parent goes away. All timestamp columns are stored in
// UTC and filled by database defaults.
type ConfigurationRepo struct{ DB *sql.DB }

func NewConfigurationRepo(db *sql.DB) *ConfigurationRepo { return &ConfigurationRepo{DB: db} }

// ButtonInput carries one submitted custom button. Order is optional:
// when nil, the repository assigns the button's 0-based position in
// the submitted list as its display_order.
type ButtonInput struct {
	Text   string
	URL    string
	Order  *int
	Active bool
}

// displayOrderFor resolves the display_order for the button at index i.
func displayOrderFor(i int, b ButtonInput) int {
	if b.Order != nil {
		return *b.Order
	}
	return i
}

// Create inserts the configuration row and its full button set as one
// atomic transaction. Any failure rolls everything back: no partial
// configuration without its buttons, no orphan buttons. Returns the
// generated configuration id.
func (r *ConfigurationRepo) Create(ctx context.Context, cfg model.Configuration, buttons []ButtonInput) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }() // no-op after a successful commit

	const qInsert = `INSERT INTO configurations
	                 (name, entity_type, background_image_url, show_menu_button, menu_button_text, menu_button_link, wifi_config_url)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, qInsert,
		cfg.Name, cfg.EntityType, cfg.BackgroundImageURL,
		cfg.ShowMenuButton, cfg.MenuButtonText, cfg.MenuButtonLink, cfg.WifiConfigURL)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := insertButtonsTx(ctx, tx, uint64(id), buttons); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites the configuration's scalar fields and replaces its
// whole button set (delete all, then reinsert) inside one transaction.
// Button ids therefore churn on every save. Readers observe either the
// old full set or the new full set, never a mix. Returns ErrNotFound
// when the configuration id does not exist.
func (r *ConfigurationRepo) Update(ctx context.Context, id uint64, cfg model.Configuration, buttons []ButtonInput) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const qUpdate = `UPDATE configurations
	                 SET name = ?, entity_type = ?, background_image_url = ?,
	                     show_menu_button = ?, menu_button_text = ?, menu_button_link = ?,
	                     wifi_config_url = ?, updated_at = CURRENT_TIMESTAMP
	                 WHERE id = ?`
	res, err := tx.ExecContext(ctx, qUpdate,
		cfg.Name, cfg.EntityType, cfg.BackgroundImageURL,
		cfg.ShowMenuButton, cfg.MenuButtonText, cfg.MenuButtonLink, cfg.WifiConfigURL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op update;
		// disambiguate with an existence check inside the same transaction.
		var exists uint64
		if err := tx.QueryRowContext(ctx, "SELECT id FROM configurations WHERE id = ? LIMIT 1", id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM custom_buttons WHERE configuration_id = ?", id); err != nil {
		return err
	}
	if err := insertButtonsTx(ctx, tx, id, buttons); err != nil {
		return err
	}
	return tx.Commit()
}

// insertButtonsTx bulk-inserts the button set in a single statement
// within the given transaction. An empty set is a valid no-op.
func insertButtonsTx(ctx context.Context, tx *sql.Tx, configID uint64, buttons []ButtonInput) error {
	if len(buttons) == 0 {
		return nil
	}
	query := `INSERT INTO custom_buttons (configuration_id, button_text, button_url, display_order, is_active) VALUES `
	args := make([]interface{}, 0, len(buttons)*5)
	for i, b := range buttons {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, configID, b.Text, b.URL, displayOrderFor(i, b), b.Active)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

const configColumns = `id, name, entity_type, background_image_url, show_menu_button, menu_button_text, menu_button_link, wifi_config_url, created_at, updated_at`

func scanConfiguration(row interface{ Scan(...any) error }) (model.Configuration, error) {
	var c model.Configuration
	err := row.Scan(&c.ID, &c.Name, &c.EntityType, &c.BackgroundImageURL,
		&c.ShowMenuButton, &c.MenuButtonText, &c.MenuButtonLink, &c.WifiConfigURL,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// GetByID returns a single configuration or ErrNotFound.
func (r *ConfigurationRepo) GetByID(ctx context.Context, id uint64) (*model.Configuration, error) {
	c, err := scanConfiguration(r.DB.QueryRowContext(ctx,
		"SELECT "+configColumns+" FROM configurations WHERE id = ? LIMIT 1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetWithButtons returns the configuration together with its buttons
// sorted ascending by display_order, or ErrNotFound.
func (r *ConfigurationRepo) GetWithButtons(ctx context.Context, id uint64) (*model.Configuration, []model.CustomButton, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	const q = `SELECT id, configuration_id, button_text, button_url, display_order, is_active, created_at, updated_at
	           FROM custom_buttons WHERE configuration_id = ? ORDER BY display_order ASC`
	rows, err := r.DB.QueryContext(ctx, q, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var buttons []model.CustomButton
	for rows.Next() {
		var b model.CustomButton
		if err := rows.Scan(&b.ID, &b.ConfigurationID, &b.ButtonText, &b.ButtonURL,
			&b.DisplayOrder, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, nil, err
		}
		buttons = append(buttons, b)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return c, buttons, nil
}

// List returns all configurations, most recently created first.
func (r *ConfigurationRepo) List(ctx context.Context) ([]model.Configuration, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+configColumns+" FROM configurations ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Configuration
	for rows.Next() {
		c, err := scanConfiguration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a configuration. The single statement is enough:
// dependent buttons go with it through the cascade rule, and deleting
// an id that is already gone is not an error.
func (r *ConfigurationRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM configurations WHERE id = ?", id)
	return err
}
