package repository

import (
	"context"
	"database/sql"
	"time"
)

// SessionRepo persists/validates login sessions. The session row is
// the source of truth for validity: expired rows are never deleted
// proactively, they are only masked by the expiry filter in queries.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts a session row for the user.
func (r *SessionRepo) Create(ctx context.Context, userID uint64, token string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token, expires_at) VALUES (?,?,?)",
		userID, token, exp)
	return err
}

// Validate reports whether a live session exists with matching token
// AND matching user. Expired or mismatched rows read as absent, never
// as an error; only genuine storage failures return a non-nil error.
func (r *SessionRepo) Validate(ctx context.Context, token string, userID uint64) (bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM sessions WHERE token=? AND user_id=? AND expires_at > UTC_TIMESTAMP() LIMIT 1",
		token, userID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByToken removes the session matching the token. Deleting a
// token that does not exist is not an error (logout is idempotent).
func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE token=?", token)
	return err
}

// DeleteAllForUser removes every session belonging to the user
// (logout everywhere).
func (r *SessionRepo) DeleteAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE user_id=?", userID)
	return err
}

// PurgeExpired removes sessions whose expiry has passed and returns
// how many rows were deleted. Normal request handling never calls
// this; it exists for offline maintenance (cmd/initdb -purge).
func (r *SessionRepo) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= UTC_TIMESTAMP()")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
