package wagateway

import "errors"

const (
	ErrCodeAuthFailed      = "AUTH_FAILED"
	ErrCodeTimeout         = "TIMEOUT"
	ErrCodeNetworkError    = "NETWORK_ERROR"
	ErrCodeServerError     = "SERVER_ERROR"
	ErrCodeInvalidResponse = "INVALID_RESPONSE"
	ErrCodeDeviceNotFound  = "DEVICE_NOT_FOUND"
	ErrCodeBreakerOpen     = "GATEWAY_UNAVAILABLE"
)

var (
	ErrAuthFailed      = errors.New(ErrCodeAuthFailed)
	ErrTimeout         = errors.New(ErrCodeTimeout)
	ErrNetworkError    = errors.New(ErrCodeNetworkError)
	ErrServerError     = errors.New(ErrCodeServerError)
	ErrInvalidResponse = errors.New(ErrCodeInvalidResponse)
	ErrDeviceNotFound  = errors.New(ErrCodeDeviceNotFound)
)
