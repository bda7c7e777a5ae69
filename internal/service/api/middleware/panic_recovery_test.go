package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicRecovery(t *testing.T) {
	t.Run("핸들러에서 panic 발생 시, 500 응답으로 복구된다", func(t *testing.T) {
		// Given
		e := echo.New()
		e.Use(PanicRecovery())
		e.GET("/panic", func(c echo.Context) error {
			panic("의도된 테스트 패닉")
		})

		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		rec := httptest.NewRecorder()

		// When & Then
		assert.NotPanics(t, func() {
			e.ServeHTTP(rec, req)
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("error 타입의 panic도 복구된다", func(t *testing.T) {
		// Given
		e := echo.New()
		e.Use(PanicRecovery())
		e.GET("/panic", func(c echo.Context) error {
			panic(assert.AnError)
		})

		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		rec := httptest.NewRecorder()

		// When & Then
		assert.NotPanics(t, func() {
			e.ServeHTTP(rec, req)
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("정상 요청은 영향을 받지 않는다", func(t *testing.T) {
		// Given
		e := echo.New()
		e.Use(PanicRecovery())
		e.GET("/ok", func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		rec := httptest.NewRecorder()

		// When
		e.ServeHTTP(rec, req)

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})
}
