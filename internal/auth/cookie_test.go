package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

// requestWithCookie builds a GET request carrying a raw auth_token value.
func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/admin/configurations", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
	return req
}

func TestAuthCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetAuthCookie(rec, "abc123token", 42, false, 7*24*time.Hour)

	res := rec.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != CookieName {
		t.Fatalf("cookie name = %q, want %q", ck.Name, CookieName)
	}
	if !ck.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if ck.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", ck.SameSite)
	}
	if ck.Secure {
		t.Error("Secure must be off outside production")
	}
	if ck.Path != "/" {
		t.Errorf("Path = %q, want /", ck.Path)
	}
	if want := int(7 * 24 * time.Hour / time.Second); ck.MaxAge != want {
		t.Errorf("MaxAge = %d, want %d", ck.MaxAge, want)
	}

	req := requestWithCookie(ck.Value)
	token, userID, ok := ReadAuthCookie(req)
	if !ok {
		t.Fatal("ReadAuthCookie failed on a cookie we just wrote")
	}
	if token != "abc123token" || userID != 42 {
		t.Errorf("got token=%q userID=%d, want abc123token/42", token, userID)
	}
}

func TestSetAuthCookieSecureInProd(t *testing.T) {
	rec := httptest.NewRecorder()
	SetAuthCookie(rec, "tok", 1, true, time.Hour)
	if !rec.Result().Cookies()[0].Secure {
		t.Error("Secure must be set in production")
	}
}

func TestReadAuthCookieFailsClosed(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"empty value", ""},
		{"not json", url.QueryEscape("just-a-token")},
		{"broken json", url.QueryEscape(`{"token":"abc"`)},
		{"empty token", url.QueryEscape(`{"token":"","userId":"1"}`)},
		{"missing user id", url.QueryEscape(`{"token":"abc"}`)},
		{"non-numeric user id", url.QueryEscape(`{"token":"abc","userId":"bob"}`)},
		{"bad escaping", "%zz"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, ok := ReadAuthCookie(requestWithCookie(tc.value)); ok {
				t.Errorf("value %q read as a valid session", tc.value)
			}
		})
	}

	// No cookie at all.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, _, ok := ReadAuthCookie(req); ok {
		t.Error("request without cookie read as a valid session")
	}
	if HasAuthCookie(req) {
		t.Error("HasAuthCookie true without cookie")
	}
}

func TestClearAuthCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearAuthCookie(rec, false)
	ck := rec.Result().Cookies()[0]
	if ck.Value != "" {
		t.Errorf("cleared cookie still has value %q", ck.Value)
	}
	if ck.MaxAge > 0 {
		t.Errorf("cleared cookie MaxAge = %d, want <= 0", ck.MaxAge)
	}
	if !ck.Expires.Before(time.Now()) {
		t.Error("cleared cookie expiry must be in the past")
	}
}
