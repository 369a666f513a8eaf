package v1

type DeleteDeviceResponse struct {
	Success bool `json:"success"`
}

type ValidationErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
