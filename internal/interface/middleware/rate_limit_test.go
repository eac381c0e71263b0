package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-course-admin/internal/interface/middleware"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func rateLimitedEngine(rdb *redis.Client, allow middleware.AllowFunc) *gin.Engine {
	r := gin.New()
	r.POST("/login",
		middleware.RateLimit(rdb, 2, time.Minute, middleware.KeyByIPAndPath(), allow),
		func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func postLogin(r http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BlocksAfterMax(t *testing.T) {
	_, rdb := setupRedis(t)
	r := rateLimitedEngine(rdb, nil)

	assert.Equal(t, http.StatusOK, postLogin(r, "203.0.113.7").Code)
	w := postLogin(r, "203.0.113.7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = postLogin(r, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, postLogin(r, "203.0.113.8").Code)
}

func TestRateLimit_WindowExpires(t *testing.T) {
	mr, rdb := setupRedis(t)
	r := rateLimitedEngine(rdb, nil)

	for i := 0; i < 3; i++ {
		postLogin(r, "203.0.113.9")
	}
	mr.FastForward(2 * time.Minute)

	assert.Equal(t, http.StatusOK, postLogin(r, "203.0.113.9").Code)
}

func TestRateLimit_AllowPrivateBypasses(t *testing.T) {
	_, rdb := setupRedis(t)
	r := rateLimitedEngine(rdb, middleware.AllowPrivateIP())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, postLogin(r, "10.0.0.5").Code)
	}
}

func TestRateLimit_FailsOpenWithoutRedis(t *testing.T) {
	mr, rdb := setupRedis(t)
	r := rateLimitedEngine(rdb, nil)
	mr.Close()

	assert.Equal(t, http.StatusOK, postLogin(r, "203.0.113.10").Code)
}
