package service

import "time"

const (
	MsgTextSent           = "Messages sent successfully"
	MsgMediaSent          = "Media messages sent successfully"
	MsgNoneSent           = "No messages were sent"
	MsgQuotaExhausted     = "Message quota exhausted for this device"
	MsgDeviceNotFound     = "Device not found"
	MsgDeviceNotConnected = "Device is not connected"
	MsgDeviceExpired      = "Device subscription has expired"
)

// SendResult is the per-destination outcome of one blast entry.
// QuotaWarning marks the send that consumed the device's last quota unit.
type SendResult struct {
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	QuotaWarning bool   `json:"quotaWarning,omitempty"`
}

// BatchResult summarizes a whole blast. Results is keyed by the raw
// destination address (phone number or group id, no WhatsApp suffix).
// Success requires at least one delivered message and no quota exhaustion.
type BatchResult struct {
	Success        bool                  `json:"success"`
	Message        string                `json:"message"`
	Results        map[string]SendResult `json:"results"`
	QuotaExhausted bool                  `json:"quotaExhausted"`
}

type DeviceResponse struct {
	DeviceID    string     `json:"deviceId"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Quota       *int64     `json:"quota"`
	IsConnected bool       `json:"isConnected"`
	ExpiredAt   *time.Time `json:"expiredAt,omitempty"`
}

type DeviceStatusResponse struct {
	DeviceID  string `json:"deviceId"`
	Found     bool   `json:"found"`
	Connected bool   `json:"connected"`
}
