package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/hello-server/internal/config"
	"github.com/darkkaiser/hello-server/internal/pkg/version"
	"github.com/darkkaiser/hello-server/internal/service"
	"github.com/darkkaiser/hello-server/internal/service/alert"
	"github.com/darkkaiser/hello-server/internal/service/api"
	"github.com/darkkaiser/hello-server/internal/service/heartbeat"
	applog "github.com/darkkaiser/hello-server/pkg/log"
	log "github.com/sirupsen/logrus"
)

// @title Hello Server API
// @version 1.0.0
// @description AWS Elastic Beanstalk 환경에서 동작하는 Hello World 웹 서비스 API입니다.
// @description
// @description CodePipeline/CodeBuild 기반 배포 파이프라인의 동작 확인을 위한 최소 구성의 서비스로,
// @description 인사말 메시지와 헬스체크, 버전 정보 엔드포인트를 제공합니다.
// @description
// @description ## 주요 기능
// @description - 고정 인사말 메시지 반환 (GET /)
// @description - 서버 및 외부 의존성 헬스체크 (GET /health)
// @description - 배포 버전 확인 (GET /version)

// @contact.name DarkKaiser
// @contact.url https://www.darkkaiser.com

// @license.name MIT

// @BasePath /

const (
	banner = `
  _   _        _  _         ____
 | | | |  ___ | || |  ___  / ___|   ___  _ __ __   __  ___  _ __
 | |_| | / _ \| || | / _ \ \___ \  / _ \| '__|\ \ / / / _ \| '__|
 |  _  ||  __/| || || (_) | ___) ||  __/| |    \ V / |  __/| |
 |_| |_| \___||_||_| \___/ |____/  \___||_|     \_/   \___||_|
                                                             %s
                                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`
)

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentConfig(config.AppName)
	} else {
		logOpts = applog.NewProductionConfig(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	// 3. 로그 레벨 최종 확정
	applog.SetDebugMode(appConfig.Debug)

	// 아스키아트 출력(https://ko.rakko.tools/tools/68/, 폰트:standard)
	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	// 빌드 정보 출력
	applog.WithComponentAndFields("main", log.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	// 권장 설정 준수 여부 진단
	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	// 운영자 알림 발송자를 생성한다.
	alertSender, err := alert.NewSenderFromConfig(appConfig)
	if err != nil {
		applog.WithComponentAndFields("main", log.Fields{
			"error": err,
		}).Error("알림 발송자 초기화 실패")

		log.Fatal("알림 발송자 초기화 실패로 프로그램을 종료합니다")
	}

	// 서비스를 생성하고 초기화한다.
	apiService := api.NewService(appConfig, alertSender, buildInfo)
	heartbeatService := heartbeat.NewService(appConfig, alertSender)

	// Set up cancellation context and waitgroup
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	services := []service.Service{apiService, heartbeatService}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", log.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			log.Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	// Handle sigterm and await termC signal
	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	// 운영자에게 서버 시작을 알린다.
	if err := alertSender.Notify(fmt.Sprintf("%s 서비스가 시작되었습니다. (Version: %s)", config.AppName, buildInfo.Version)); err != nil {
		applog.WithComponentAndFields("main", log.Fields{
			"error": err,
		}).Error("서버 시작 알림 메시지 발송이 실패하였습니다")
	}

	<-termC // Blocks here until interrupted

	// Handle shutdown
	applog.WithComponent("main").Info("Shutdown signal received")
	cancel()             // Signal cancellation to context.Context
	serviceStopWG.Wait() // Block here until are workers are done

	// 운영자에게 서버 종료를 알린다.
	if err := alertSender.Notify(fmt.Sprintf("%s 서비스가 종료되었습니다.", config.AppName)); err != nil {
		applog.WithComponentAndFields("main", log.Fields{
			"error": err,
		}).Error("서버 종료 알림 메시지 발송이 실패하였습니다")
	}
}
