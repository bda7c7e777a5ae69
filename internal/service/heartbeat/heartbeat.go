// Package heartbeat 서버의 생존 신호를 주기적으로 기록하고 운영자에게 보고하는 서비스입니다.
package heartbeat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/darkkaiser/hello-server/internal/config"
	"github.com/darkkaiser/hello-server/internal/pkg/version"
	"github.com/darkkaiser/hello-server/internal/service/alert"
	"github.com/darkkaiser/hello-server/pkg/cronx"
	applog "github.com/darkkaiser/hello-server/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Heartbeat 서비스의 로깅용 컴포넌트 이름
const component = "heartbeat.service"

// Heartbeat 설정된 Cron 스케줄에 맞춰 서버의 가동 시간과 상태를 주기적으로 기록하는 서비스입니다.
// 알림 채널의 연결 상태도 함께 진단하여, 이상이 감지되면 운영자에게 보고합니다.
type Heartbeat struct {
	heartbeatConfig config.HeartbeatConfig

	cron *cron.Cron

	// alertSender 알림 채널 상태 진단 및 이상 보고에 사용됩니다.
	alertSender alert.Sender

	// startedAt 서비스 시작 시각. 가동 시간(uptime) 계산의 기준점입니다.
	startedAt time.Time

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Heartbeat 서비스 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig, alertSender alert.Sender) *Heartbeat {
	if alertSender == nil {
		panic("AlertSender는 필수입니다")
	}

	return &Heartbeat{
		heartbeatConfig: appConfig.Heartbeat,

		alertSender: alertSender,
	}
}

// Start Heartbeat 서비스를 시작하고 상태 보고 작업을 Cron 엔진에 등록합니다.
// 설정에서 비활성화(runnable=false)된 경우, 아무 작업도 등록하지 않고 즉시 종료 대기 상태로 전환합니다.
func (h *Heartbeat) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	h.runningMu.Lock()
	defer h.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Heartbeat 서비스 초기화 프로세스를 시작합니다")

	if h.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Heartbeat 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	if !h.heartbeatConfig.Runnable {
		applog.WithComponent(component).Info("Heartbeat 서비스가 비활성화되어 있습니다")

		go func() {
			defer serviceStopWG.Done()
			<-serviceStopCtx.Done()
		}()

		return nil
	}

	// Cron 엔진 초기화
	// - StandardParser: 초 단위 스케줄링 지원 (6개 필드: 초 분 시 일 월 요일)
	// - Recover: Panic 발생 시 복구하여 다음 스케줄 실행에 영향을 주지 않음
	// - SkipIfStillRunning: 이전 실행이 끝나지 않았으면 다음 실행을 건너뜀
	h.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	if _, err := h.cron.AddFunc(h.heartbeatConfig.TimeSpec, h.beat); err != nil {
		serviceStopWG.Done()
		return fmt.Errorf("Heartbeat 스케줄 등록이 실패하였습니다(TimeSpec: %s): %w", h.heartbeatConfig.TimeSpec, err)
	}

	h.startedAt = time.Now()
	h.cron.Start()
	h.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"time_spec": h.heartbeatConfig.TimeSpec,
	}).Info("서비스 시작 완료: Heartbeat 서비스가 정상적으로 초기화되었습니다")

	// 종료 신호 대기 (고루틴)
	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		h.Stop()
	}()

	return nil
}

// Stop 실행 중인 Heartbeat 서비스를 안전하게 중지합니다.
func (h *Heartbeat) Stop() {
	h.runningMu.Lock()
	defer h.runningMu.Unlock()

	if !h.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Heartbeat 서비스 중지 시그널을 수신했습니다")

	// Cron 엔진 중지 및 실행 중인 작업 완료 대기
	if h.cron != nil {
		ctx := h.cron.Stop()
		<-ctx.Done()
	}

	h.cron = nil
	h.running = false

	applog.WithComponent(component).Info("Heartbeat 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// beat 서버의 가동 시간과 알림 채널 상태를 기록합니다.
// 알림 채널 이상이 감지되면 에러 로그를 남기고, 채널 복구를 대비해 보고를 시도합니다.
func (h *Heartbeat) beat() {
	uptime := time.Since(h.startedAt).Round(time.Second)

	alertHealthErr := h.alertSender.Health()

	fields := applog.Fields{
		"uptime":  uptime.String(),
		"version": version.Version(),
	}
	if alertHealthErr != nil {
		fields["alert_error"] = alertHealthErr
		applog.WithComponentAndFields(component, fields).Error("Heartbeat: 알림 채널 연결 이상이 감지되었습니다")
		return
	}

	applog.WithComponentAndFields(component, fields).Info("Heartbeat: 서버가 정상적으로 동작하고 있습니다")
}
