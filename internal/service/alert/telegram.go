package alert

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/darkkaiser/hello-server/internal/pkg/errors"
	"github.com/darkkaiser/hello-server/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const (
	// telegramMessageMaxLength 텔레그램 Bot API의 단일 메시지 최대 길이(바이트)
	telegramMessageMaxLength = 4096

	// sendTimeout 단일 알림 발송의 최대 허용 시간
	sendTimeout = 30 * time.Second

	// maxRetries 발송 실패 시 최대 재시도 횟수
	maxRetries = 3

	// defaultRetryDelay 재시도 간 기본 대기 시간 (Retry-After 미제공 시 사용)
	defaultRetryDelay = 3 * time.Second
)

// botClient 텔레그램 Bot API 호출을 추상화한 인터페이스 (테스트 목적)
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetMe() (tgbotapi.User, error)
}

// telegramSender 텔레그램 봇을 통해 운영자에게 알림 메시지를 발송합니다.
type telegramSender struct {
	botClient botClient
	chatID    int64

	// 텔레그램 API Rate Limit 준수를 위한 발송 속도 제한기
	limiter *rate.Limiter

	// retryDelay 재시도 간 기본 대기 시간
	retryDelay time.Duration
}

// NewTelegramSender 텔레그램 API 서버에 접속하여 알림 발송자를 생성합니다.
func NewTelegramSender(botToken string, chatID int64) (Sender, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "텔레그램 봇 초기화가 실패하였습니다")
	}

	log.WithComponentAndFields(component, log.Fields{
		"bot_username": bot.Self.UserName,
		"chat_id":      chatID,
	}).Info("텔레그램 알림 발송자가 생성되었습니다.")

	return newTelegramSender(bot, chatID), nil
}

func newTelegramSender(client botClient, chatID int64) *telegramSender {
	return &telegramSender{
		botClient: client,
		chatID:    chatID,

		// 텔레그램은 초당 약 30건의 메시지를 허용하지만, 여유를 두어 초당 1건으로 제한한다.
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		retryDelay: defaultRetryDelay,
	}
}

// Notify 일반 알림 메시지를 발송합니다.
// API 제한(4096자)을 초과하는 메시지는 줄바꿈 단위로 분할하여 발송합니다.
func (s *telegramSender) Notify(message string) error {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	return s.sendMessage(ctx, message)
}

// NotifyWithError 에러 상세 정보가 첨부된 알림 메시지를 발송합니다.
func (s *telegramSender) NotifyWithError(message string, cause error) error {
	if cause != nil {
		message = fmt.Sprintf("%s\n\n오류: %s", message, cause)
	}
	return s.Notify(message)
}

// Health 텔레그램 API 서버와의 연결 상태를 확인합니다.
func (s *telegramSender) Health() error {
	if _, err := s.botClient.GetMe(); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "텔레그램 API 서버와의 연결 확인이 실패하였습니다")
	}
	return nil
}

// sendMessage 메시지를 발송하며, 최대 길이를 초과하면 줄바꿈(\n) 단위로 분할합니다.
func (s *telegramSender) sendMessage(ctx context.Context, message string) error {
	if len(message) <= telegramMessageMaxLength {
		return s.sendSingleMessage(ctx, message)
	}

	var sb strings.Builder
	sb.Grow(telegramMessageMaxLength)

	for _, line := range strings.Split(message, "\n") {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		neededSpace := len(line)
		if sb.Len() > 0 {
			neededSpace++ // 줄바꿈 문자 공간
		}

		if sb.Len()+neededSpace > telegramMessageMaxLength {
			if sb.Len() > 0 {
				if err := s.sendSingleMessage(ctx, sb.String()); err != nil {
					return err
				}
				sb.Reset()
			}

			// 현재 라인 자체가 최대 길이보다 길다면 룬 경계에서 안전하게 자름
			for len(line) > telegramMessageMaxLength {
				chunk, remainder := safeSplit(line, telegramMessageMaxLength)
				if err := s.sendSingleMessage(ctx, chunk); err != nil {
					return err
				}
				line = remainder
			}
			sb.WriteString(line)
		} else {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(line)
		}
	}

	if sb.Len() > 0 {
		return s.sendSingleMessage(ctx, sb.String())
	}
	return nil
}

// sendSingleMessage 단일 메시지를 발송합니다.
// 429(Too Many Requests) 및 5xx 에러는 재시도하며, 기타 4xx 에러는 즉시 실패 처리합니다.
func (s *telegramSender) sendSingleMessage(ctx context.Context, message string) error {
	messageConfig := tgbotapi.NewMessage(s.chatID, message)

	// 발송 속도 제한 준수. 컨텍스트가 취소되면 Wait는 즉시 에러를 반환한다.
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, err := s.botClient.Send(messageConfig)
		if err == nil {
			log.WithComponentAndFields(component, log.Fields{
				"chat_id": s.chatID,
				"attempt": attempt,
			}).Debug("텔레그램 알림 메시지가 발송되었습니다.")
			return nil
		}

		lastErr = err
		log.WithComponentAndFields(component, log.Fields{
			"chat_id": s.chatID,
			"attempt": attempt,
			"error":   err,
		}).Warn("텔레그램 알림 메시지 발송이 실패하였습니다.")

		errCode, retryAfter := extractTelegramErrorCode(err)
		if !shouldRetryError(errCode) {
			return apperrors.Wrap(err, apperrors.ExecutionFailed, "텔레그램 알림 메시지 발송이 거부되었습니다")
		}

		if attempt >= maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryWaitDuration(retryAfter)):
		}
	}

	return apperrors.Wrap(lastErr, apperrors.ExecutionFailed, "텔레그램 알림 메시지 발송이 최종 실패하였습니다")
}

// extractTelegramErrorCode 텔레그램 API 에러에서 에러 코드와 Retry-After 값을 추출합니다.
func extractTelegramErrorCode(err error) (code int, retryAfter int) {
	if apiErr, ok := err.(tgbotapi.Error); ok {
		return apiErr.Code, apiErr.ResponseParameters.RetryAfter
	}
	if apiErrPtr, ok := err.(*tgbotapi.Error); ok {
		return apiErrPtr.Code, apiErrPtr.ResponseParameters.RetryAfter
	}
	return 0, 0
}

// shouldRetryError 429는 재시도 가능, 기타 4xx는 재시도 불가능, 5xx 등은 재시도 가능
func shouldRetryError(errCode int) bool {
	if errCode >= 400 && errCode < 500 {
		return errCode == 429
	}
	return true
}

func (s *telegramSender) retryWaitDuration(retryAfter int) time.Duration {
	if retryAfter > 0 {
		return time.Duration(retryAfter) * time.Second
	}
	return s.retryDelay
}

// safeSplit UTF-8 문자열을 지정된 바이트 길이 내에서 문자가 깨지지 않도록 자릅니다.
func safeSplit(s string, limit int) (chunk, remainder string) {
	if len(s) <= limit {
		return s, ""
	}

	splitIndex := limit
	for splitIndex > 0 && !utf8.RuneStart(s[splitIndex]) {
		splitIndex--
	}
	if splitIndex == 0 {
		return s[:limit], s[limit:]
	}

	return s[:splitIndex], s[splitIndex:]
}
