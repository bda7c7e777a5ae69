package alert

import (
	"strings"
	"testing"

	"github.com/darkkaiser/hello-server/internal/config"
	apperrors "github.com/darkkaiser/hello-server/internal/pkg/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// MockBotClient 텔레그램 Bot API 클라이언트의 Mock 구현체
type MockBotClient struct {
	mock.Mock
}

func (m *MockBotClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return args.Get(0).(tgbotapi.Message), args.Error(1)
}

func (m *MockBotClient) GetMe() (tgbotapi.User, error) {
	args := m.Called()
	return args.Get(0).(tgbotapi.User), args.Error(1)
}

// newTestSender 재시도 대기 없이 즉시 발송하도록 설정된 테스트용 발송자를 생성한다.
func newTestSender(client botClient) *telegramSender {
	s := newTelegramSender(client, 1000)
	s.limiter = rate.NewLimiter(rate.Inf, 1)
	s.retryDelay = 0
	return s
}

func TestTelegramSender_Notify(t *testing.T) {
	t.Run("짧은 메시지는 한 번에 발송된다", func(t *testing.T) {
		// Given
		mockClient := new(MockBotClient)
		mockClient.On("Send", mock.Anything).Return(tgbotapi.Message{}, nil).Once()
		sender := newTestSender(mockClient)

		// When
		err := sender.Notify("서버가 시작되었습니다.")

		// Then
		require.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("최대 길이를 초과하는 메시지는 분할하여 발송된다", func(t *testing.T) {
		// Given
		mockClient := new(MockBotClient)
		mockClient.On("Send", mock.Anything).Return(tgbotapi.Message{}, nil)
		sender := newTestSender(mockClient)

		// 4096자를 초과하는 여러 줄 메시지
		line := strings.Repeat("a", 1500)
		message := strings.Join([]string{line, line, line, line}, "\n")

		// When
		err := sender.Notify(message)

		// Then
		require.NoError(t, err)
		mockClient.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("발송 대상 채팅 ID가 메시지에 설정된다", func(t *testing.T) {
		// Given
		mockClient := new(MockBotClient)
		mockClient.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
			msg, ok := c.(tgbotapi.MessageConfig)
			return ok && msg.ChatID == 1000
		})).Return(tgbotapi.Message{}, nil).Once()
		sender := newTestSender(mockClient)

		// When
		err := sender.Notify("테스트 메시지")

		// Then
		require.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("일시적인 에러 발생 시, 재시도 후 성공한다", func(t *testing.T) {
		// Given
		mockClient := new(MockBotClient)
		mockClient.On("Send", mock.Anything).Return(tgbotapi.Message{}, &tgbotapi.Error{Code: 500, Message: "Internal Server Error"}).Once()
		mockClient.On("Send", mock.Anything).Return(tgbotapi.Message{}, nil).Once()

		sender := newTestSender(mockClient)

		// When
		err := sender.Notify("테스트 메시지")

		// Then
		require.NoError(t, err)
		mockClient.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("재시도 불가능한 에러(4xx) 발생 시, 즉시 실패한다", func(t *testing.T) {
		// Given
		mockClient := new(MockBotClient)
		mockClient.On("Send", mock.Anything).Return(tgbotapi.Message{}, &tgbotapi.Error{Code: 400, Message: "Bad Request"}).Once()

		sender := newTestSender(mockClient)

		// When
		err := sender.Notify("테스트 메시지")

		// Then
		require.Error(t, err)
		assert.Equal(t, apperrors.ExecutionFailed, apperrors.UnderlyingType(err))
		mockClient.AssertNumberOfCalls(t, "Send", 1)
	})
}

func TestTelegramSender_NotifyWithError(t *testing.T) {
	t.Run("에러 상세 정보가 메시지에 첨부된다", func(t *testing.T) {
		// Given
		var sentMessage string
		mockClient := new(MockBotClient)
		mockClient.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
			msg, ok := c.(tgbotapi.MessageConfig)
			if ok {
				sentMessage = msg.Text
			}
			return ok
		})).Return(tgbotapi.Message{}, nil).Once()
		sender := newTestSender(mockClient)

		// When
		err := sender.NotifyWithError("서버 실행이 실패하였습니다.", assert.AnError)

		// Then
		require.NoError(t, err)
		assert.Contains(t, sentMessage, "서버 실행이 실패하였습니다.")
		assert.Contains(t, sentMessage, assert.AnError.Error())
	})
}

func TestTelegramSender_Health(t *testing.T) {
	t.Run("API 서버 연결이 정상이면, nil을 반환한다", func(t *testing.T) {
		// Given
		mockClient := new(MockBotClient)
		mockClient.On("GetMe").Return(tgbotapi.User{UserName: "hello_bot"}, nil).Once()
		sender := newTestSender(mockClient)

		// When & Then
		assert.NoError(t, sender.Health())
	})

	t.Run("API 서버 연결이 비정상이면, Unavailable 에러를 반환한다", func(t *testing.T) {
		// Given
		mockClient := new(MockBotClient)
		mockClient.On("GetMe").Return(tgbotapi.User{}, assert.AnError).Once()
		sender := newTestSender(mockClient)

		// When
		err := sender.Health()

		// Then
		require.Error(t, err)
		assert.Equal(t, apperrors.Unavailable, apperrors.UnderlyingType(err))
	})
}

func TestNoopSender(t *testing.T) {
	t.Run("모든 발송 요청을 에러 없이 무시한다", func(t *testing.T) {
		// Given
		sender := NewNoopSender()

		// When & Then
		assert.NoError(t, sender.Notify("메시지"))
		assert.NoError(t, sender.NotifyWithError("메시지", assert.AnError))
		assert.NoError(t, sender.Health())
	})
}

func TestNewSenderFromConfig(t *testing.T) {
	t.Run("텔레그램 알림이 비활성화된 경우, Noop 발송자를 반환한다", func(t *testing.T) {
		// Given
		appConfig := &config.AppConfig{}

		// When
		sender, err := NewSenderFromConfig(appConfig)

		// Then
		require.NoError(t, err)
		assert.IsType(t, &noopSender{}, sender)
	})
}

func TestSafeSplit(t *testing.T) {
	t.Run("제한 길이 이내의 문자열은 그대로 반환한다", func(t *testing.T) {
		chunk, remainder := safeSplit("hello", 10)

		assert.Equal(t, "hello", chunk)
		assert.Empty(t, remainder)
	})

	t.Run("멀티바이트 문자는 룬 경계에서 잘린다", func(t *testing.T) {
		// "안" = 3바이트, 4바이트 제한으로 자르면 룬 경계(3바이트)에서 잘려야 한다.
		chunk, remainder := safeSplit("안녕하세요", 4)

		assert.Equal(t, "안", chunk)
		assert.Equal(t, "녕하세요", remainder)
	})
}
