// Package alert 서버 운영 중 발생하는 주요 이벤트를 운영자에게 전달하는 알림 채널을 제공합니다.
package alert

import (
	"fmt"

	"github.com/darkkaiser/hello-server/internal/config"
	"github.com/darkkaiser/hello-server/pkg/log"
)

const component = "alert"

// Sender 운영자 알림 메시지 발송을 담당하는 인터페이스
type Sender interface {
	// Notify 일반 알림 메시지를 발송합니다.
	Notify(message string) error

	// NotifyWithError 에러 상세 정보가 첨부된 알림 메시지를 발송합니다.
	NotifyWithError(message string, cause error) error

	// Health 알림 채널의 연결 상태를 진단합니다.
	Health() error
}

// NewSenderFromConfig 애플리케이션 설정에 따라 적절한 알림 발송자를 생성합니다.
// 텔레그램 알림이 비활성화된 경우, 아무 동작도 하지 않는 발송자를 반환합니다.
func NewSenderFromConfig(appConfig *config.AppConfig) (Sender, error) {
	if !appConfig.Alert.Telegram.Enabled {
		log.WithComponent(component).Debug("텔레그램 알림이 비활성화되어 있어 알림 발송을 생략합니다.")
		return NewNoopSender(), nil
	}

	sender, err := NewTelegramSender(appConfig.Alert.Telegram.BotToken, appConfig.Alert.Telegram.ChatID)
	if err != nil {
		return nil, fmt.Errorf("텔레그램 알림 발송자 생성이 실패하였습니다: %w", err)
	}

	return sender, nil
}
