package system

// HelloResponse 루트 엔드포인트(/) 인사말 응답
type HelloResponse struct {
	// Message 고정 인사말 메시지
	Message string `json:"message" example:"Hello World"`
}
