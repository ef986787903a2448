package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCacheKeyIgnoresParameterOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	key := func(target string) string {
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		ctx.Request = httptest.NewRequest("GET", target, nil)
		return CacheKey(ctx)
	}

	a := key("/api/fire-departments?page=2&size=8")
	b := key("/api/fire-departments?size=8&page=2")

	if a != b {
		t.Errorf("keys differ for reordered params: %q vs %q", a, b)
	}

	if c := key("/api/fire-departments?page=3&size=8"); c == a {
		t.Error("different pages must not share a cache key")
	}

	if d := key("/api/alarms?page=2&size=8"); d == a {
		t.Error("different paths must not share a cache key")
	}
}
