// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 인사말, 헬스체크, 버전 정보 등 인증이 필요 없는 시스템 수준의 API를 처리합니다.
package system

import (
	"net/http"
	"runtime"
	"time"

	"github.com/darkkaiser/hello-server/internal/config"
	"github.com/darkkaiser/hello-server/internal/pkg/version"
	"github.com/darkkaiser/hello-server/internal/service/alert"
	"github.com/darkkaiser/hello-server/internal/service/api/constants"
	"github.com/darkkaiser/hello-server/internal/service/api/model/system"
	applog "github.com/darkkaiser/hello-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 시스템 엔드포인트 핸들러 (인사말, 헬스체크, 버전 정보)
type Handler struct {
	alertSender alert.Sender

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(alertSender alert.Sender, buildInfo version.Info) *Handler {
	if alertSender == nil {
		panic(constants.PanicMsgAlertSenderRequired)
	}

	return &Handler{
		alertSender: alertSender,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HelloHandler godoc
// @Summary 인사말 메시지
// @Description 고정된 "Hello World" 인사말 메시지를 반환합니다.
// @Description 배포 파이프라인의 동작 확인 및 스모크 테스트에 사용됩니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HelloResponse "인사말 메시지"
// @Router / [get]
func (h *Handler) HelloHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHelloRequest)

	return c.JSON(http.StatusOK, system.HelloResponse{
		Message: constants.HelloMessage,
	})
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 외부 의존성의 상태를 확인합니다.
// @Description 인증 없이 호출 가능하며, 로드밸런서와 모니터링 시스템에서 사용됩니다.
// @Description
// @Description 응답 필드:
// @Description - status: 전체 서버 상태 (healthy, unhealthy)
// @Description - service: 서비스 이름
// @Description - timestamp: 응답 생성 시각(UTC, RFC3339)
// @Description - uptime: 서버 가동 시간(초)
// @Description - dependencies: 외부 의존성별 상태 (alert_service 등)
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	uptime := int64(time.Since(h.serverStartTime).Seconds())

	// 외부 의존성 상태 수집
	deps := make(map[string]system.DependencyStatus)

	// 운영자 알림 서비스 상태 확인
	if err := h.alertSender.Health(); err != nil {
		deps[constants.DependencyAlertService] = system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: err.Error(),
		}
	} else {
		deps[constants.DependencyAlertService] = system.DependencyStatus{
			Status:  constants.HealthStatusHealthy,
			Message: constants.MsgDepStatusHealthy,
		}
	}

	// 하나라도 unhealthy면 전체 상태를 unhealthy로 설정
	// 로드밸런서가 인스턴스를 제거하지 않도록 상태 코드는 항상 200을 유지한다.
	serverStatus := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			serverStatus = constants.HealthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       serverStatus,
		Service:      config.AppName,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Uptime:       uptime,
		Dependencies: deps,
	})
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Description 디버깅 및 배포 버전 확인에 사용됩니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   runtime.Version(),
	})
}
