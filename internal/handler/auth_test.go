package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/landing-page-manager/internal/auth"
	"github.com/iliyamo/landing-page-manager/internal/config"
	"github.com/iliyamo/landing-page-manager/internal/model"
	"github.com/iliyamo/landing-page-manager/internal/repository"
)

// ----- fakes -----

type fakeUserStore struct {
	byEmail map[string]model.User
	nextID  uint64
}

func (f *fakeUserStore) Create(_ context.Context, email, _, name, role string, _ int) (uint64, error) {
	if _, ok := f.byEmail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	f.nextID++
	f.byEmail[email] = model.User{ID: f.nextID, Email: email, Name: name, Role: role}
	return f.nextID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

type fakeSessionStore struct {
	tokens map[string]uint64    // token -> user id
	expiry map[string]time.Time // token -> expires_at
}

func (f *fakeSessionStore) Create(_ context.Context, userID uint64, token string, exp time.Time) error {
	f.tokens[token] = userID
	f.expiry[token] = exp
	return nil
}

func (f *fakeSessionStore) DeleteByToken(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeSessionStore) DeleteAllForUser(_ context.Context, userID uint64) error {
	for t, uid := range f.tokens {
		if uid == userID {
			delete(f.tokens, t)
		}
	}
	return nil
}

func newAuthHandler(t *testing.T) (*AuthHandler, *fakeUserStore, *fakeSessionStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	users := &fakeUserStore{
		byEmail: map[string]model.User{
			"admin@example.com": {ID: 1, Email: "admin@example.com", PasswordHash: string(hash), Role: "admin"},
		},
		nextID: 1,
	}
	sessions := &fakeSessionStore{tokens: map[string]uint64{}, expiry: map[string]time.Time{}}
	cfg := config.Config{Env: "dev", SessionTTLDays: 7, BcryptCost: bcrypt.MinCost}
	return NewAuthHandler(cfg, users, sessions), users, sessions
}

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// ----- login -----

func TestLoginMissingFields(t *testing.T) {
	h, _, _ := newAuthHandler(t)
	c, rec := postJSON("/api/auth/login", `{"email":"admin@example.com"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLoginIdenticalResponseForBadEmailAndBadPassword(t *testing.T) {
	h, _, _ := newAuthHandler(t)

	c1, rec1 := postJSON("/api/auth/login", `{"email":"nobody@example.com","password":"s3cret"}`)
	if err := h.Login(c1); err != nil {
		t.Fatalf("Login: %v", err)
	}
	c2, rec2 := postJSON("/api/auth/login", `{"email":"admin@example.com","password":"wrong"}`)
	if err := h.Login(c2); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if rec1.Code != http.StatusUnauthorized || rec2.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", rec1.Code, rec2.Code)
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Errorf("bodies differ: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
}

func TestLoginSuccess(t *testing.T) {
	h, _, sessions := newAuthHandler(t)
	c, rec := postJSON("/api/auth/login", `{"email":"admin@example.com","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var out struct {
		User  userPart `json:"user"`
		Token string   `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out.Token == "" {
		t.Fatal("no token in response")
	}
	if out.User.ID != 1 || out.User.Email != "admin@example.com" {
		t.Errorf("unexpected user %+v", out.User)
	}
	if uid, ok := sessions.tokens[out.Token]; !ok || uid != 1 {
		t.Error("session row not persisted for issued token")
	}
	// The persisted expiry must match the configured TTL (7 days), since
	// the cookie lifetime is derived from the same value.
	exp := sessions.expiry[out.Token]
	want := time.Now().Add(7 * 24 * time.Hour)
	if exp.Before(want.Add(-time.Minute)) || exp.After(want.Add(time.Minute)) {
		t.Errorf("session expiry = %v, want ~%v", exp, want)
	}

	// The same token must travel inside the auth cookie.
	ckTok, ckUID := readSetCookie(t, rec)
	if ckTok != out.Token || ckUID != 1 {
		t.Errorf("cookie carries token=%q uid=%d, want %q/1", ckTok, ckUID, out.Token)
	}
}

func readSetCookie(t *testing.T, rec *httptest.ResponseRecorder) (string, uint64) {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name != auth.CookieName {
			continue
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
		tok, uid, ok := auth.ReadAuthCookie(req)
		if !ok {
			t.Fatal("set cookie does not round-trip")
		}
		return tok, uid
	}
	t.Fatal("auth cookie not set")
	return "", 0
}

// ----- logout -----

func TestLogoutWithoutCookie(t *testing.T) {
	h, _, _ := newAuthHandler(t)
	c, rec := postJSON("/api/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLogoutDeletesSession(t *testing.T) {
	h, _, sessions := newAuthHandler(t)
	sessions.tokens["tok-1"] = 1

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	w := httptest.NewRecorder()
	auth.SetAuthCookie(w, "tok-1", 1, false, time.Hour)
	req.AddCookie(w.Result().Cookies()[0])
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if _, ok := sessions.tokens["tok-1"]; ok {
		t.Error("session row still present after logout")
	}
}

// ----- register -----

func TestRegisterDuplicateEmail(t *testing.T) {
	h, _, _ := newAuthHandler(t)
	c, rec := postJSON("/api/auth/register", `{"email":"admin@example.com","password":"x"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestRegisterCreatesPlainUser(t *testing.T) {
	h, users, _ := newAuthHandler(t)
	c, rec := postJSON("/api/auth/register", `{"email":"new@example.com","password":"pw","name":"New"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	u, err := users.GetByEmail(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if u.Role != "user" {
		t.Errorf("role = %q, want user", u.Role)
	}
}
