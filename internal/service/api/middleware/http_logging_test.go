package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHTTPLogger(t *testing.T) {
	t.Run("정상 요청은 그대로 통과한다", func(t *testing.T) {
		// Given
		e := echo.New()
		e.Use(HTTPLogger())
		e.GET("/", func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		// When
		e.ServeHTTP(rec, req)

		// Then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("핸들러 에러는 에러 핸들러로 전달되어 응답이 생성된다", func(t *testing.T) {
		// Given
		e := echo.New()
		e.Use(HTTPLogger())
		e.GET("/error", func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusBadRequest, "잘못된 요청")
		})

		req := httptest.NewRequest(http.MethodGet, "/error", nil)
		rec := httptest.NewRecorder()

		// When
		e.ServeHTTP(rec, req)

		// Then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMaskSensitiveQueryParams(t *testing.T) {
	t.Run("민감한 쿼리 파라미터는 마스킹된다", func(t *testing.T) {
		// When
		masked := maskSensitiveQueryParams("/health?token=verysecretvalue&id=100")

		// Then
		assert.NotContains(t, masked, "verysecretvalue")
		assert.Contains(t, masked, "id=100")
	})

	t.Run("민감하지 않은 쿼리 파라미터는 원본이 유지된다", func(t *testing.T) {
		// When
		masked := maskSensitiveQueryParams("/health?id=100&name=hello")

		// Then
		assert.Equal(t, "/health?id=100&name=hello", masked)
	})

	t.Run("쿼리 파라미터가 없는 URI는 원본이 유지된다", func(t *testing.T) {
		assert.Equal(t, "/health", maskSensitiveQueryParams("/health"))
	})
}
