package wagateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/ahmad-fahrudin/wablast-app/pkg/httpclient"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	authEndpoint           = "/auth/generate"
	connectEndpoint        = "/connect"
	qrEndpoint             = "/qr/"
	deleteEndpoint         = "/delete"
	devicesEndpoint        = "/devices"
	sendEndpoint           = "/send"
	sendMediaEndpoint      = "/send-media"
	groupSendEndpoint      = "/groups/send"
	groupSendMediaEndpoint = "/groups/send-media"
)

// Client wraps the external WhatsApp gateway. A bearer token is fetched from
// the auth endpoint for every operation; tokens are never cached or exposed
// to callers, so a future reuse strategy stays a local change here.
//
// The Send* methods never return an error: auth, transport and decoding
// failures are folded into SendResult so batch dispatch can always inspect a
// result object per destination.
type Client interface {
	Connect(ctx context.Context, deviceID string) (Result, error)
	QRCode(ctx context.Context, deviceID string) (QRResult, error)
	Delete(ctx context.Context, deviceID string) (Result, error)
	DeviceStatus(ctx context.Context, deviceID string) (DeviceStatus, error)
	SendText(ctx context.Context, deviceID, to, message string) SendResult
	SendMedia(ctx context.Context, deviceID, to, caption string, media []byte) SendResult
	SendGroupText(ctx context.Context, deviceID, groupID, message string) SendResult
	SendGroupMedia(ctx context.Context, deviceID, groupID, caption string, media []byte) SendResult
}

type client struct {
	cfg     Config
	http    httpclient.HTTPClient
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewClient(cfg Config, http httpclient.HTTPClient, logger *zap.Logger) Client {
	maxRequests := cfg.Breaker.MaxRequests
	if maxRequests == 0 {
		maxRequests = 3
	}
	failures := cfg.Breaker.ConsecutiveFailures
	if failures == 0 {
		failures = 10
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "wagateway",
		MaxRequests: maxRequests,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= failures },
	})

	return &client{cfg: cfg, http: http, breaker: breaker, logger: logger}
}

func (c *client) generateToken(ctx context.Context) (string, error) {
	body, err := encodeJSON(map[string]string{"token": c.cfg.SecretKey})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	resp, err := c.http.Post(ctx, c.cfg.BaseURL+authEndpoint, body, jsonHeaders(""))
	if err != nil {
		c.logger.Error("Failed to generate gateway token", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrAuthFailed, resp.StatusCode)
	}

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	if auth.Token == "" {
		return "", fmt.Errorf("%w: no token received from authentication service", ErrAuthFailed)
	}

	return auth.Token, nil
}

func (c *client) Connect(ctx context.Context, deviceID string) (Result, error) {
	token, err := c.generateToken(ctx)
	if err != nil {
		return Result{}, err
	}

	body, err := encodeJSON(map[string]string{"deviceId": deviceID})
	if err != nil {
		return Result{}, err
	}

	resp, err := c.http.Post(ctx, c.cfg.BaseURL+connectEndpoint, body, jsonHeaders(token))
	if err != nil {
		c.logger.Error("Failed to connect device", zap.Error(err), zap.String("deviceID", deviceID))
		return Result{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	return decodeResult(resp)
}

func (c *client) QRCode(ctx context.Context, deviceID string) (QRResult, error) {
	token, err := c.generateToken(ctx)
	if err != nil {
		return QRResult{}, err
	}

	// QR generation can block on the gateway side while pairing starts,
	// so it gets its own bound instead of the default client timeout.
	if c.cfg.QRTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.QRTimeout)
		defer cancel()
	}

	headers := map[string]string{
		"Accept":        "image/png",
		"Authorization": "Bearer " + token,
	}

	resp, err := c.http.Get(ctx, c.cfg.BaseURL+qrEndpoint+deviceID, headers)
	if err != nil {
		c.logger.Error("Failed to get QR code", zap.Error(err), zap.String("deviceID", deviceID))
		return QRResult{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return QRResult{}, ErrInvalidResponse
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "image/png") {
		return QRResult{ImageBase64: base64.StdEncoding.EncodeToString(raw)}, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return QRResult{Body: string(raw)}, nil
	}

	return QRResult{Payload: payload}, nil
}

func (c *client) Delete(ctx context.Context, deviceID string) (Result, error) {
	token, err := c.generateToken(ctx)
	if err != nil {
		return Result{}, err
	}

	body, err := encodeJSON(map[string]string{"deviceId": deviceID})
	if err != nil {
		return Result{}, err
	}

	resp, err := c.http.Delete(ctx, c.cfg.BaseURL+deleteEndpoint, body, jsonHeaders(token))
	if err != nil {
		c.logger.Error("Failed to delete device", zap.Error(err), zap.String("deviceID", deviceID))
		return Result{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	return decodeResult(resp)
}

func (c *client) DeviceStatus(ctx context.Context, deviceID string) (DeviceStatus, error) {
	token, err := c.generateToken(ctx)
	if err != nil {
		return DeviceStatus{}, err
	}

	resp, err := c.http.Get(ctx, c.cfg.BaseURL+devicesEndpoint, jsonHeaders(token))
	if err != nil {
		c.logger.Error("Failed to list gateway devices", zap.Error(err), zap.String("deviceID", deviceID))
		return DeviceStatus{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DeviceStatus{}, mapStatusToError(resp.StatusCode)
	}

	var list deviceListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return DeviceStatus{}, ErrInvalidResponse
	}

	for _, device := range list.Devices {
		if device.DeviceID == deviceID {
			return DeviceStatus{Found: true, Connected: device.Status == "connected"}, nil
		}
	}

	return DeviceStatus{}, nil
}

func (c *client) SendText(ctx context.Context, deviceID, to, message string) SendResult {
	body, err := encodeJSON(map[string]string{
		"deviceId": deviceID,
		"to":       NormalizeUserAddress(to),
		"message":  message,
	})
	if err != nil {
		return SendResult{Error: ErrCodeInvalidResponse}
	}

	return c.deliver(ctx, sendEndpoint, "", body)
}

func (c *client) SendGroupText(ctx context.Context, deviceID, groupID, message string) SendResult {
	body, err := encodeJSON(map[string]string{
		"deviceId": deviceID,
		"groupId":  NormalizeGroupAddress(groupID),
		"message":  message,
	})
	if err != nil {
		return SendResult{Error: ErrCodeInvalidResponse}
	}

	return c.deliver(ctx, groupSendEndpoint, "", body)
}

func (c *client) SendMedia(ctx context.Context, deviceID, to, caption string, media []byte) SendResult {
	body, contentType, err := encodeMediaForm("to", NormalizeUserAddress(to), deviceID, caption, media)
	if err != nil {
		return SendResult{Error: ErrCodeInvalidResponse}
	}

	return c.deliver(ctx, sendMediaEndpoint, contentType, body)
}

func (c *client) SendGroupMedia(ctx context.Context, deviceID, groupID, caption string, media []byte) SendResult {
	body, contentType, err := encodeMediaForm("groupId", NormalizeGroupAddress(groupID), deviceID, caption, media)
	if err != nil {
		return SendResult{Error: ErrCodeInvalidResponse}
	}

	return c.deliver(ctx, groupSendMediaEndpoint, contentType, body)
}

// deliver runs one send call behind the circuit breaker and folds every
// failure mode into the SendResult.
func (c *client) deliver(ctx context.Context, endpoint string, contentType string, body *bytes.Buffer) SendResult {
	token, err := c.generateToken(ctx)
	if err != nil {
		c.logger.Warn("Send aborted, token generation failed", zap.Error(err), zap.String("endpoint", endpoint))
		return SendResult{Error: ErrCodeAuthFailed}
	}

	headers := jsonHeaders(token)
	if contentType != "" {
		headers["Content-Type"] = contentType
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.http.Post(ctx, c.cfg.BaseURL+endpoint, body, headers)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn("Gateway circuit breaker open", zap.String("endpoint", endpoint))
			return SendResult{Error: ErrCodeBreakerOpen}
		}

		c.logger.Warn("Gateway send failed", zap.Error(err), zap.String("endpoint", endpoint))

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return SendResult{Error: ErrCodeTimeout}
		}

		return SendResult{Error: ErrCodeNetworkError}
	}

	resp := res.(*http.Response)
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return SendResult{Error: ErrCodeServerError}
	}

	var out struct {
		Success   bool   `json:"success"`
		MessageID string `json:"messageId"`
		Error     string `json:"error"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Warn("Failed to parse gateway send response", zap.Error(err), zap.String("endpoint", endpoint))
		return SendResult{Error: ErrCodeInvalidResponse}
	}

	result := SendResult{Success: out.Success, MessageID: out.MessageID, Error: out.Error}
	if !out.Success && result.Error == "" {
		result.Error = out.Message
		if result.Error == "" {
			result.Error = ErrCodeServerError
		}
	}

	return result
}

func decodeResult(resp *http.Response) (Result, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, ErrInvalidResponse
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Raw: raw}, mapStatusToError(resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return Result{Raw: raw}, ErrInvalidResponse
	}

	result.Raw = raw
	return result, nil
}

func encodeJSON(payload any) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}
	return &buf, nil
}

func encodeMediaForm(targetField, targetValue, deviceID, caption string, media []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"deviceId":  deviceID,
		targetField: targetValue,
		"caption":   caption,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if media != nil {
		part, err := writer.CreateFormFile("media", "media")
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(media); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &buf, writer.FormDataContentType(), nil
}

func jsonHeaders(token string) map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTimeout
	}
	return ErrNetworkError
}

var statusErrorMap = map[int]error{
	http.StatusNotFound:     ErrDeviceNotFound,
	http.StatusUnauthorized: ErrAuthFailed,
}

func mapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}
