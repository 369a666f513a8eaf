package wagateway

import "encoding/json"

type authResponse struct {
	Token string `json:"token"`
}

// Result carries a gateway-defined JSON reply for device lifecycle calls.
type Result struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"-"`
}

// QRResult is either a base64-encoded PNG or the gateway's JSON/text body
// when no image was produced (e.g. device already paired).
type QRResult struct {
	ImageBase64 string         `json:"image,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
	Body        string         `json:"body,omitempty"`
}

// DeviceStatus reports one device's connection state from the gateway list.
type DeviceStatus struct {
	Found     bool `json:"found"`
	Connected bool `json:"connected"`
}

type deviceListResponse struct {
	Devices []deviceEntry `json:"devices"`
}

type deviceEntry struct {
	DeviceID string `json:"deviceId"`
	Status   string `json:"status"`
}

// SendResult is the uniform per-destination outcome of a delivery attempt.
// Transport failures are folded into it; Send methods never return an error.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}
