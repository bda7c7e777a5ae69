package constants

// 시스템 시작/구동 시 발생할 수 있는 크리티컬한 패닉 메시지 상수입니다.
const (
	// PanicMsgAppConfigRequired 패닉 메시지: AppConfig 필수
	PanicMsgAppConfigRequired = "AppConfig는 필수입니다"

	// PanicMsgAlertSenderRequired 패닉 메시지: AlertSender 필수
	PanicMsgAlertSenderRequired = "AlertSender는 필수입니다"
)
