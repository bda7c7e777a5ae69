// Package service 애플리케이션을 구성하는 서비스들의 공통 생명주기 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 애플리케이션에서 실행되는 모든 서비스가 구현해야 하는 인터페이스
//
// Start()는 서비스 구동에 실패하면 에러를 반환하며, 성공 시 서비스의 실행 루프를
// 고루틴으로 기동한 후 즉시 반환합니다. 서비스는 serviceStopCtx가 취소되면 정리 작업을
// 수행하고 serviceStopWG.Done()을 호출하여 종료를 알립니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
