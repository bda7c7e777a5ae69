// Package strutil 문자열 처리와 관련된 범용 유틸리티 함수를 제공합니다.
package strutil

import "strings"

// MaskSensitiveData 토큰, 키 등의 민감한 문자열을 로그에 안전하게 남길 수 있도록 마스킹합니다.
//
// 마스킹 규칙:
//   - 빈 문자열: 그대로 반환
//   - 3자 이하: 전체 마스킹("***")
//   - 12자 이하: 앞 4자만 노출
//   - 그 이상: 앞 4자와 뒤 4자만 노출
func MaskSensitiveData(data string) string {
	if data == "" {
		return ""
	}

	if len(data) <= 3 {
		return "***"
	}

	if len(data) <= 12 {
		return data[:4] + "***"
	}

	return data[:4] + "***" + data[len(data)-4:]
}

// HasAnyContent 공백 문자를 제외하고 실제 내용이 존재하는지 확인합니다.
func HasAnyContent(s string) bool {
	return strings.TrimSpace(s) != ""
}
