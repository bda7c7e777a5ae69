package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedServer(requestsPerSecond, burst int) *echo.Echo {
	e := echo.New()
	e.Use(RateLimiting(requestsPerSecond, burst))
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func doRequest(e *echo.Echo, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiting(t *testing.T) {
	t.Run("버스트 허용량 이내의 요청은 통과한다", func(t *testing.T) {
		// Given
		e := newRateLimitedServer(1, 3)

		// When & Then
		for i := 0; i < 3; i++ {
			rec := doRequest(e, "192.168.0.1:1234")
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("버스트 허용량 초과 시, 429와 Retry-After 헤더를 반환한다", func(t *testing.T) {
		// Given
		e := newRateLimitedServer(1, 2)

		doRequest(e, "192.168.0.1:1234")
		doRequest(e, "192.168.0.1:1234")

		// When
		rec := doRequest(e, "192.168.0.1:1234")

		// Then
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	})

	t.Run("IP별로 독립적인 제한이 적용된다", func(t *testing.T) {
		// Given
		e := newRateLimitedServer(1, 1)

		// 첫 번째 IP의 토큰 소진
		doRequest(e, "192.168.0.1:1234")

		// When
		rec := doRequest(e, "192.168.0.2:1234")

		// Then
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("requestsPerSecond가 0 이하이면, Panic이 발생한다", func(t *testing.T) {
		assert.Panics(t, func() {
			RateLimiting(0, 10)
		})
	})

	t.Run("burst가 0 이하이면, Panic이 발생한다", func(t *testing.T) {
		assert.Panics(t, func() {
			RateLimiting(10, 0)
		})
	})
}

func TestIPRateLimiter_GetLimiter(t *testing.T) {
	t.Run("동일한 IP는 같은 Limiter를 반환한다", func(t *testing.T) {
		// Given
		l := newIPRateLimiter(10, 20)

		// When
		first := l.getLimiter("192.168.0.1")
		second := l.getLimiter("192.168.0.1")

		// Then
		assert.Same(t, first, second)
	})

	t.Run("다른 IP는 다른 Limiter를 반환한다", func(t *testing.T) {
		// Given
		l := newIPRateLimiter(10, 20)

		// When
		first := l.getLimiter("192.168.0.1")
		second := l.getLimiter("192.168.0.2")

		// Then
		assert.NotSame(t, first, second)
	})
}
