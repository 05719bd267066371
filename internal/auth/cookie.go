package auth

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CookieName is the name of the single cookie that carries the login
// credential.
const CookieName = "auth_token"

// cookiePayload is the JSON shape stored in the cookie value:
// {"token":"<opaque>","userId":"<id>"}. The token plus the session
// row decide validity; the userId narrows the lookup but is never
// trusted on its own.
type cookiePayload struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// SetAuthCookie writes the auth cookie on the response. HttpOnly and
// SameSite=Lax always; Secure only in production-like deployments.
// ttl must equal the session row's lifetime so neither outlives the
// other by more than clock skew.
func SetAuthCookie(w http.ResponseWriter, token string, userID uint64, secure bool, ttl time.Duration) {
	val, _ := json.Marshal(cookiePayload{
		Token:  token,
		UserID: strconv.FormatUint(userID, 10),
	})
	// JSON is not a legal raw cookie value; percent-encode it the same
	// way browsers do with encodeURIComponent.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(string(val)),
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie overwrites the auth cookie with an empty value and
// zero max-age so the browser drops it immediately.
func ClearAuthCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   0,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAuthCookie decodes the auth cookie from a request. Decoding
// fails closed: a missing cookie, broken JSON, an empty token or a
// non-numeric user id all read as "no session", never as an error.
func ReadAuthCookie(r *http.Request) (token string, userID uint64, ok bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", 0, false
	}
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return "", 0, false
	}
	var p cookiePayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return "", 0, false
	}
	if p.Token == "" {
		return "", 0, false
	}
	id, err := strconv.ParseUint(p.UserID, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return p.Token, id, true
}

// HasAuthCookie reports whether a syntactically present, non-empty
// token value travels with the request. This is the cheap edge-gate
// check: it performs no store lookup, so an expired or revoked token
// that is merely present still passes. The page-level gate does the
// full session validation.
func HasAuthCookie(r *http.Request) bool {
	_, _, ok := ReadAuthCookie(r)
	return ok
}
