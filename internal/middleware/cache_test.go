package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/landing-page-manager/internal/config"
)

func cacheTestConfig(strategy string) config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{"GET": true},
		KeyStrategy: strategy,
		Prefix:      "cache",
	}
}

// landingContext simulates a request matched against the /l/:id param
// route: the registered pattern is the same for every id, only the
// concrete URL differs.
func landingContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/l/:id")
	return c
}

// Two landing pages must never share a cache entry, whatever the key
// strategy. The route pattern is identical for both, so this only holds
// when the key is derived from the concrete request path.
func TestCacheKeyDistinguishesParamRouteIDs(t *testing.T) {
	for _, strategy := range []string{"route", "method_route", "method_route_query", "route_query"} {
		t.Run(strategy, func(t *testing.T) {
			cfg := cacheTestConfig(strategy)
			k5 := cacheKeyFrom(cfg, landingContext("/l/5"))
			k6 := cacheKeyFrom(cfg, landingContext("/l/6"))
			if k5 == k6 {
				t.Errorf("key(/l/5) == key(/l/6) == %q; distinct ids must hash to distinct keys", k5)
			}
		})
	}
}

func TestCacheKeyStableForSameRequest(t *testing.T) {
	cfg := cacheTestConfig("route_query")
	a := cacheKeyFrom(cfg, landingContext("/l/5"))
	b := cacheKeyFrom(cfg, landingContext("/l/5"))
	if a != b {
		t.Errorf("same request hashed to %q and %q", a, b)
	}
}

func TestCacheKeyHonorsQuery(t *testing.T) {
	cfg := cacheTestConfig("route_query")
	plain := cacheKeyFrom(cfg, landingContext("/admin/configurations"))
	filtered := cacheKeyFrom(cfg, landingContext("/admin/configurations?page=2"))
	if plain == filtered {
		t.Error("query string must contribute to the key under route_query")
	}
}
