package constants

const (
	ErrCodeDeviceNotFound       = "DEVICE_NOT_FOUND"
	ErrCodeDeviceDuplicate      = "DEVICE_DUPLICATE"
	ErrCodeSubscriptionNotFound = "SUBSCRIPTION_NOT_FOUND"
	ErrCodeGatewayError         = "GATEWAY_ERROR"
	ErrCodeInternalError        = "INTERNAL_ERROR"
	ErrCodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
)

const (
	ErrMsgDeviceNotFound       = "device not found"
	ErrMsgDeviceDuplicate      = "device already registered"
	ErrMsgSubscriptionNotFound = "subscription not found"
	ErrMsgGatewayError         = "gateway request failed"
	ErrMsgInternalError        = "Internal server error"
	ErrMsgInvalidRequestBody   = "failed to parse request body"
	ErrMsgValidationFailed     = "request validation failed"
)

var errorMessages = map[string]string{
	ErrCodeDeviceNotFound:       ErrMsgDeviceNotFound,
	ErrCodeDeviceDuplicate:      ErrMsgDeviceDuplicate,
	ErrCodeSubscriptionNotFound: ErrMsgSubscriptionNotFound,
	ErrCodeGatewayError:         ErrMsgGatewayError,
	ErrCodeInternalError:        ErrMsgInternalError,
	ErrCodeInvalidRequestBody:   ErrMsgInvalidRequestBody,
	ErrCodeValidationFailed:     ErrMsgValidationFailed,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody:
		return 400
	case ErrCodeDeviceNotFound, ErrCodeSubscriptionNotFound:
		return 404
	case ErrCodeDeviceDuplicate:
		return 409
	case ErrCodeValidationFailed:
		return 422
	case ErrCodeGatewayError:
		return 502
	case ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
