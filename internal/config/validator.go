package config

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator 애플리케이션 설정 검증에 사용되는 Validator 인스턴스를 생성합니다.
// go-playground/validator의 표준 규칙에 더해 커스텀 규칙(cors_origin)을 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// cors_origin: CORS Origin 형식(Scheme://Host[:Port]) 또는 와일드카드(*) 검증
	//nolint:errcheck // 등록 실패는 함수명이 비어있는 경우뿐이므로 발생하지 않는다.
	v.RegisterValidation("cors_origin", validateCORSOrigin)

	return v
}

// validateCORSOrigin CORS Origin 값의 형식을 검증합니다.
// 유효한 형식: "*", "http://example.com", "https://example.com:8443"
// Origin은 Path, Query 등을 포함할 수 없습니다.
func validateCORSOrigin(fl validator.FieldLevel) bool {
	origin := fl.Field().String()

	if origin == "*" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return false
	}
	if strings.HasSuffix(origin, "/") {
		return false
	}

	return true
}
