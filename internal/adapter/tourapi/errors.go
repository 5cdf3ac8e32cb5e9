package tourapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNetworkFailure 传输层失败或超时，且重试已用尽
	ErrNetworkFailure = errors.New("tourapi: network failure")
	// ErrUpstream 响应格式正确但 resultCode 非 0000
	ErrUpstream = errors.New("tourapi: upstream error")
	// ErrSearchFailure 关键字检索失败（包装底层原因）
	ErrSearchFailure = errors.New("tourapi: search failed")
)

// 上游未给出 resultMsg 时使用的提示
const defaultUpstreamMessage = "API 응답 오류"

// UpstreamError 上游返回的业务错误
type UpstreamError struct {
	Code    string
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("TourAPI 返回错误 %s: %s", e.Code, e.Message)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// StatusError 非 2xx 响应，按网络失败处理并参与重试
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.StatusCode, e.Status)
}
