// Command initdb creates the database schema, seeds the initial admin
// user and, with -purge, removes expired session rows. It is meant to be
// run once per environment before the first server start and afterwards
// from cron for session cleanup.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/landing-page-manager/internal/config"
	"github.com/iliyamo/landing-page-manager/internal/database"
	"github.com/iliyamo/landing-page-manager/internal/repository"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255)    NOT NULL,
		password_hash VARCHAR(255)    NOT NULL,
		name          VARCHAR(255)    NULL,
		role          VARCHAR(32)     NOT NULL DEFAULT 'user',
		created_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		token      VARCHAR(255)    NOT NULL,
		expires_at TIMESTAMP       NOT NULL,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_sessions_token (token),
		KEY idx_sessions_user (user_id),
		CONSTRAINT fk_sessions_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS configurations (
		id                   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name                 VARCHAR(255)    NOT NULL,
		entity_type          VARCHAR(64)     NOT NULL,
		background_image_url TEXT            NULL,
		show_menu_button     TINYINT(1)      NOT NULL DEFAULT 0,
		menu_button_text     VARCHAR(255)    NULL,
		menu_button_link     TEXT            NULL,
		wifi_config_url      TEXT            NULL,
		created_at           TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at           TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS custom_buttons (
		id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		configuration_id BIGINT UNSIGNED NOT NULL,
		button_text      VARCHAR(255)    NOT NULL,
		button_url       TEXT            NOT NULL,
		display_order    INT             NOT NULL DEFAULT 0,
		is_active        TINYINT(1)      NOT NULL DEFAULT 1,
		created_at       TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_buttons_configuration (configuration_id),
		KEY idx_buttons_order (configuration_id, display_order),
		CONSTRAINT fk_buttons_configuration FOREIGN KEY (configuration_id) REFERENCES configurations (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

func main() {
	purge := flag.Bool("purge", false, "delete expired session rows and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *purge {
		n, err := repository.NewSessionRepo(db).PurgeExpired(ctx)
		if err != nil {
			log.Fatalf("purge sessions: %v", err)
		}
		log.Printf("purged %d expired sessions", n)
		return
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("create schema: %v", err)
		}
	}
	log.Println("schema ready")

	if err := seedAdmin(ctx, db, cfg); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
}

// seedAdmin creates the initial admin account unless a user with that
// email already exists. Credentials come from ADMIN_EMAIL/ADMIN_PASSWORD
// with development defaults.
func seedAdmin(ctx context.Context, db *sql.DB, cfg config.Config) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	users := repository.NewUserRepo(db)
	id, err := users.Create(ctx, email, password, "Administrator", "admin", cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			log.Printf("admin user %s already exists, skipping seed", email)
			return nil
		}
		return err
	}
	log.Printf("seeded admin user %s (id=%d)", email, id)
	return nil
}
