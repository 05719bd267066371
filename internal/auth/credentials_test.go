package auth

import (
	"context"
	"database/sql"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/landing-page-manager/internal/model"
)

type fakeUserGetter struct {
	users map[string]model.User
}

func (f *fakeUserGetter) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func newFakeUsers(t *testing.T, email, password string) *fakeUserGetter {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &fakeUserGetter{users: map[string]model.User{
		email: {ID: 7, Email: email, PasswordHash: string(hash), Role: "admin"},
	}}
}

func TestVerifyCredentialsSuccess(t *testing.T) {
	users := newFakeUsers(t, "admin@example.com", "s3cret")

	u, err := VerifyCredentials(context.Background(), users, "admin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("VerifyCredentials: %v", err)
	}
	if u.ID != 7 || u.Email != "admin@example.com" {
		t.Errorf("unexpected user %+v", u)
	}
	if u.PasswordHash != "" {
		t.Error("password hash must be stripped from the returned user")
	}
}

// Unknown email and wrong password must be indistinguishable so the
// login endpoint cannot be used to enumerate accounts.
func TestVerifyCredentialsIndistinguishableFailures(t *testing.T) {
	users := newFakeUsers(t, "admin@example.com", "s3cret")

	_, errNoUser := VerifyCredentials(context.Background(), users, "nobody@example.com", "s3cret")
	_, errBadPass := VerifyCredentials(context.Background(), users, "admin@example.com", "wrong")

	if errNoUser != ErrInvalidCredentials {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", errNoUser)
	}
	if errBadPass != ErrInvalidCredentials {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", errBadPass)
	}
}
