package alert

// noopSender 알림 채널이 비활성화된 경우 사용되는 발송자입니다.
// 모든 발송 요청을 조용히 무시합니다.
type noopSender struct{}

// NewNoopSender 아무 동작도 하지 않는 알림 발송자를 생성합니다.
func NewNoopSender() Sender {
	return &noopSender{}
}

func (s *noopSender) Notify(_ string) error {
	return nil
}

func (s *noopSender) NotifyWithError(_ string, _ error) error {
	return nil
}

func (s *noopSender) Health() error {
	return nil
}
