package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestErrorHandler(t *testing.T) {
	t.Run("Echo HTTPError는 상태 코드와 메시지를 그대로 반환한다", func(t *testing.T) {
		// Given
		c, rec := newTestContext(http.MethodGet, "/test")
		err := echo.NewHTTPError(http.StatusBadRequest, "잘못된 요청 파라미터")

		// When
		ErrorHandler(err, c)

		// Then
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		body := rec.Body.String()
		assert.Equal(t, int64(http.StatusBadRequest), gjson.Get(body, "result_code").Int())
		assert.Equal(t, "잘못된 요청 파라미터", gjson.Get(body, "message").String())
	})

	t.Run("일반 에러는 500 상태 코드와 표준 메시지를 반환한다", func(t *testing.T) {
		// Given
		c, rec := newTestContext(http.MethodGet, "/test")

		// When
		ErrorHandler(assert.AnError, c)

		// Then
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "내부 서버 오류가 발생했습니다", gjson.Get(rec.Body.String(), "message").String())
	})

	t.Run("404 에러는 통일된 한국어 메시지를 반환한다", func(t *testing.T) {
		// Given
		c, rec := newTestContext(http.MethodGet, "/unknown")
		err := echo.NewHTTPError(http.StatusNotFound, "Not Found")

		// When
		ErrorHandler(err, c)

		// Then
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "요청한 리소스를 찾을 수 없습니다", gjson.Get(rec.Body.String(), "message").String())
	})

	t.Run("HEAD 요청은 본문 없이 상태 코드만 반환한다", func(t *testing.T) {
		// Given
		c, rec := newTestContext(http.MethodHead, "/test")
		err := echo.NewHTTPError(http.StatusNotFound, "Not Found")

		// When
		ErrorHandler(err, c)

		// Then
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("이미 응답이 전송된 경우, 추가 응답을 시도하지 않는다", func(t *testing.T) {
		// Given
		c, rec := newTestContext(http.MethodGet, "/test")
		require.NoError(t, c.NoContent(http.StatusOK))

		// When
		ErrorHandler(assert.AnError, c)

		// Then
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ErrorResponse 메시지를 가진 HTTPError는 내부 메시지를 추출한다", func(t *testing.T) {
		// Given
		c, rec := newTestContext(http.MethodGet, "/test")
		err := NewTooManyRequestsError("요청이 너무 많습니다. 잠시 후 다시 시도해주세요")

		// When
		ErrorHandler(err, c)

		// Then
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "요청이 너무 많습니다. 잠시 후 다시 시도해주세요", gjson.Get(rec.Body.String(), "message").String())
	})
}

func TestNewErrorHelpers(t *testing.T) {
	testCases := []struct {
		name     string
		newError func(string) error
		wantCode int
	}{
		{"400 Bad Request", NewBadRequestError, http.StatusBadRequest},
		{"404 Not Found", NewNotFoundError, http.StatusNotFound},
		{"429 Too Many Requests", NewTooManyRequestsError, http.StatusTooManyRequests},
		{"500 Internal Server Error", NewInternalServerError, http.StatusInternalServerError},
		{"503 Service Unavailable", NewServiceUnavailableError, http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When
			err := tc.newError("테스트 메시지")

			// Then
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tc.wantCode, he.Code)
		})
	}
}

func TestSuccess(t *testing.T) {
	t.Run("표준 성공 응답을 반환한다", func(t *testing.T) {
		// Given
		c, rec := newTestContext(http.MethodGet, "/test")

		// When
		err := Success(c)

		// Then
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(0), gjson.Get(rec.Body.String(), "result_code").Int())
	})
}
