package api

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/hello-server/internal/config"
	"github.com/darkkaiser/hello-server/internal/pkg/version"
	"github.com/darkkaiser/hello-server/internal/service/alert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSender 알림 발송자의 Mock 구현체
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Notify(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockSender) NotifyWithError(message string, cause error) error {
	args := m.Called(message, cause)
	return args.Error(0)
}

func (m *MockSender) Health() error {
	args := m.Called()
	return args.Error(0)
}

func newTestAppConfig() *config.AppConfig {
	return &config.AppConfig{
		Server: config.ServerConfig{
			// 포트 0: 사용 가능한 임의의 포트에 바인딩
			ListenPort: 0,
		},
		CORS: config.CORSConfig{
			AllowOrigins: []string{"*"},
		},
	}
}

func TestNewService(t *testing.T) {
	t.Run("유효한 인자로 생성 시, Panic이 발생하지 않는다", func(t *testing.T) {
		assert.NotPanics(t, func() {
			s := NewService(newTestAppConfig(), alert.NewNoopSender(), version.Info{})
			assert.NotNil(t, s)
		})
	})

	t.Run("AppConfig가 nil이면, Panic이 발생한다", func(t *testing.T) {
		assert.PanicsWithValue(t, "AppConfig는 필수입니다", func() {
			NewService(nil, alert.NewNoopSender(), version.Info{})
		})
	})

	t.Run("AlertSender가 nil이면, Panic이 발생한다", func(t *testing.T) {
		assert.PanicsWithValue(t, "AlertSender는 필수입니다", func() {
			NewService(newTestAppConfig(), nil, version.Info{})
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	t.Run("정상적으로 시작하고 종료 신호에 따라 중지된다", func(t *testing.T) {
		// Given
		s := NewService(newTestAppConfig(), alert.NewNoopSender(), version.Info{})

		ctx, cancel := context.WithCancel(context.Background())
		var wg sync.WaitGroup

		// When
		wg.Add(1)
		err := s.Start(ctx, &wg)

		// Then
		require.NoError(t, err)

		// 서버 기동 대기
		time.Sleep(100 * time.Millisecond)

		s.runningMu.Lock()
		running := s.running
		s.runningMu.Unlock()
		assert.True(t, running)

		// 종료 신호 전달 후 완전히 종료될 때까지 대기
		cancel()
		wg.Wait()

		s.runningMu.Lock()
		running = s.running
		s.runningMu.Unlock()
		assert.False(t, running)
	})

	t.Run("중복 시작 호출 시, 에러 없이 무시된다", func(t *testing.T) {
		// Given
		s := NewService(newTestAppConfig(), alert.NewNoopSender(), version.Info{})

		ctx, cancel := context.WithCancel(context.Background())
		var wg sync.WaitGroup

		wg.Add(1)
		require.NoError(t, s.Start(ctx, &wg))

		// When: 이미 실행 중일 때 다시 Start 호출
		wg.Add(1)
		err := s.Start(ctx, &wg)

		// Then
		require.NoError(t, err)

		cancel()
		wg.Wait()
	})
}

func TestService_HandleServerError(t *testing.T) {
	t.Run("nil 에러는 무시된다", func(t *testing.T) {
		// Given
		s := NewService(newTestAppConfig(), alert.NewNoopSender(), version.Info{})

		// When & Then
		assert.NotPanics(t, func() {
			s.handleServerError(nil)
		})
	})

	t.Run("예상치 못한 에러 발생 시, 운영자 알림이 전송된다", func(t *testing.T) {
		// Given
		mockSender := new(MockSender)
		mockSender.On("NotifyWithError", mock.Anything, assert.AnError).Return(nil).Once()

		s := NewService(newTestAppConfig(), mockSender, version.Info{})

		// When
		s.handleServerError(assert.AnError)

		// Then
		mockSender.AssertExpectations(t)
	})
}
