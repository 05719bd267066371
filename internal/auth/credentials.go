// Package auth implements credential verification and the auth cookie
// codec. Session persistence itself lives in the repository package;
// this package only decides what counts as a valid login and how the
// composite cookie value travels between client and server.
package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/landing-page-manager/internal/model"
	"github.com/iliyamo/landing-page-manager/internal/utils"
)

// ErrInvalidCredentials is returned for both "no such user" and
// "wrong password". The two cases must stay indistinguishable to the
// caller so responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserGetter is the slice of the user repository this package needs.
type UserGetter interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// VerifyCredentials looks up exactly one user by exact email match and
// compares the plaintext password against the stored bcrypt hash. On
// success the returned user has its password hash stripped so it can
// cross any boundary. Storage failures other than a missing row are
// passed through unchanged.
func VerifyCredentials(ctx context.Context, users UserGetter, email, password string) (model.User, error) {
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, ErrInvalidCredentials
	}
	u.PasswordHash = ""
	return u, nil
}
