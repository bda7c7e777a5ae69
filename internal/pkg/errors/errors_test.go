package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("성공: 타입과 메시지를 포함한 에러 생성", func(t *testing.T) {
		t.Parallel()

		err := New(NotFound, "리소스를 찾을 수 없습니다")
		require.Error(t, err)

		var appErr *AppError
		require.True(t, As(err, &appErr))
		assert.Equal(t, NotFound, appErr.Type())
		assert.Equal(t, "리소스를 찾을 수 없습니다", appErr.Message())
		assert.NotEmpty(t, appErr.Stack(), "스택 트레이스가 수집되어야 합니다")
	})

	t.Run("성공: Newf 포맷 문자열 지원", func(t *testing.T) {
		t.Parallel()

		err := Newf(InvalidInput, "포트 번호가 올바르지 않습니다: %d", 99999)
		assert.Contains(t, err.Error(), "99999")
		assert.Contains(t, err.Error(), "[InvalidInput]")
	})
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("성공: 원인 에러를 포함한 체이닝", func(t *testing.T) {
		t.Parallel()

		cause := stderrors.New("file not found")
		err := Wrap(cause, System, "설정 파일 로드 실패")

		require.Error(t, err)
		assert.ErrorIs(t, err, cause, "Unwrap을 통해 원인 에러에 도달할 수 있어야 합니다")
		assert.Contains(t, err.Error(), "설정 파일 로드 실패")
		assert.Contains(t, err.Error(), "file not found")
	})

	t.Run("nil 래핑 시 nil 반환", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, Wrap(nil, System, "무시됨"))
		assert.Nil(t, Wrapf(nil, System, "무시됨 %d", 1))
	})
}

func TestIs(t *testing.T) {
	t.Parallel()

	t.Run("체인 중간의 타입도 탐지", func(t *testing.T) {
		t.Parallel()

		inner := New(NotFound, "내부 에러")
		outer := Wrap(inner, Internal, "외부 컨텍스트")

		assert.True(t, Is(outer, NotFound))
		assert.True(t, Is(outer, Internal))
		assert.False(t, Is(outer, Timeout))
	})

	t.Run("nil 에러", func(t *testing.T) {
		t.Parallel()
		assert.False(t, Is(nil, NotFound))
	})
}

func TestRootCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("root")
	wrapped := Wrap(Wrap(cause, System, "mid"), Internal, "outer")

	assert.Equal(t, cause, RootCause(wrapped))
	assert.Nil(t, RootCause(nil))
}

func TestUnderlyingType(t *testing.T) {
	t.Parallel()

	t.Run("AppError 체인: 가장 안쪽 타입 반환", func(t *testing.T) {
		t.Parallel()

		err := Wrap(New(NotFound, "inner"), Internal, "outer")
		assert.Equal(t, NotFound, UnderlyingType(err))
	})

	t.Run("외부 에러 래핑: 래핑 시점의 타입 반환", func(t *testing.T) {
		t.Parallel()

		err := Wrap(stderrors.New("raw"), Timeout, "외부 호출 시간 초과")
		assert.Equal(t, Timeout, UnderlyingType(err))
	})

	t.Run("AppError가 없는 체인: Unknown 반환", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, Unknown, UnderlyingType(stderrors.New("raw")))
		assert.Equal(t, Unknown, UnderlyingType(nil))
	})
}

func TestAppError_Format(t *testing.T) {
	t.Parallel()

	t.Run("%+v: 스택 트레이스와 에러 체인 출력", func(t *testing.T) {
		t.Parallel()

		err := Wrap(stderrors.New("root cause"), System, "작업 실패")
		detailed := fmt.Sprintf("%+v", err)

		assert.Contains(t, detailed, "[System] 작업 실패")
		assert.Contains(t, detailed, "Stack trace:")
		assert.Contains(t, detailed, "Caused by:")
		assert.Contains(t, detailed, "root cause")
	})

	t.Run("%s: 간략한 출력", func(t *testing.T) {
		t.Parallel()

		err := New(NotFound, "없음")
		assert.Equal(t, "[NotFound] 없음", fmt.Sprintf("%s", err))
	})

	t.Run("%q: 인용 출력", func(t *testing.T) {
		t.Parallel()

		err := New(NotFound, "없음")
		assert.Equal(t, `"[NotFound] 없음"`, fmt.Sprintf("%q", err))
	})
}
