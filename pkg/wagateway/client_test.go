package wagateway_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ahmad-fahrudin/wablast-app/pkg/mocks"
	"github.com/ahmad-fahrudin/wablast-app/pkg/wagateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var testConfig = wagateway.Config{
	BaseURL:   "https://gateway.test/api/whatsapp",
	SecretKey: "super-secret",
	Timeout:   15 * time.Second,
	QRTimeout: 30 * time.Second,
	Breaker:   wagateway.BreakerConfig{MaxRequests: 3, Timeout: 20 * time.Second, ConsecutiveFailures: 10},
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func tokenResponse(token string) *http.Response {
	return jsonResponse(200, `{"token":"`+token+`"}`)
}

func matchField(field, want string) interface{} {
	return mock.MatchedBy(func(body interface{}) bool {
		buf, ok := body.(*bytes.Buffer)
		if !ok {
			return false
		}

		var payload map[string]string
		if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
			return false
		}

		return payload[field] == want
	})
}

func matchBearer(token string) interface{} {
	return mock.MatchedBy(func(headers map[string]string) bool {
		return headers["Authorization"] == "Bearer "+token
	})
}

func TestClient_SendText(t *testing.T) {
	logger := zap.NewNop()
	authURL := testConfig.BaseURL + "/auth/generate"
	sendURL := testConfig.BaseURL + "/send"

	t.Run("successful send normalizes address", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Post", mock.Anything, sendURL,
			matchField("to", "628123456789@s.whatsapp.net"), matchBearer("tok-1")).
			Return(jsonResponse(200, `{"success":true,"messageId":"wamid-1"}`), nil).Once()

		result := client.SendText(context.Background(), "device-1", "628123456789", "hello")

		assert.True(t, result.Success)
		assert.Equal(t, "wamid-1", result.MessageID)
		assert.Empty(t, result.Error)
		mockClient.AssertExpectations(t)
	})

	t.Run("auth failure folds into result", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(jsonResponse(401, `{}`), nil).Once()

		result := client.SendText(context.Background(), "device-1", "628123456789", "hello")

		assert.False(t, result.Success)
		assert.Equal(t, wagateway.ErrCodeAuthFailed, result.Error)
		mockClient.AssertExpectations(t)
	})

	t.Run("network error folds into result", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Post", mock.Anything, sendURL, mock.Anything, mock.Anything).
			Return((*http.Response)(nil), errors.New("connection refused")).Once()

		result := client.SendText(context.Background(), "device-1", "628123456789", "hello")

		assert.False(t, result.Success)
		assert.Equal(t, wagateway.ErrCodeNetworkError, result.Error)
	})

	t.Run("timeout folds into result", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Post", mock.Anything, sendURL, mock.Anything, mock.Anything).
			Return((*http.Response)(nil), context.DeadlineExceeded).Once()

		result := client.SendText(context.Background(), "device-1", "628123456789", "hello")

		assert.False(t, result.Success)
		assert.Equal(t, wagateway.ErrCodeTimeout, result.Error)
	})

	t.Run("server error status folds into result", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Post", mock.Anything, sendURL, mock.Anything, mock.Anything).
			Return(jsonResponse(500, `{}`), nil).Once()

		result := client.SendText(context.Background(), "device-1", "628123456789", "hello")

		assert.False(t, result.Success)
		assert.Equal(t, wagateway.ErrCodeServerError, result.Error)
	})

	t.Run("gateway reported failure keeps gateway error message", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Post", mock.Anything, sendURL, mock.Anything, mock.Anything).
			Return(jsonResponse(200, `{"success":false,"error":"device offline"}`), nil).Once()

		result := client.SendText(context.Background(), "device-1", "628123456789", "hello")

		assert.False(t, result.Success)
		assert.Equal(t, "device offline", result.Error)
	})

	t.Run("unparseable response folds into result", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Post", mock.Anything, sendURL, mock.Anything, mock.Anything).
			Return(jsonResponse(200, `<html>gateway</html>`), nil).Once()

		result := client.SendText(context.Background(), "device-1", "628123456789", "hello")

		assert.False(t, result.Success)
		assert.Equal(t, wagateway.ErrCodeInvalidResponse, result.Error)
	})

	t.Run("circuit breaker opens after consecutive failures", func(t *testing.T) {
		cfg := testConfig
		cfg.Breaker.ConsecutiveFailures = 2

		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(cfg, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-2"), nil).Once()
		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-3"), nil).Once()
		mockClient.On("Post", mock.Anything, sendURL, mock.Anything, mock.Anything).
			Return((*http.Response)(nil), errors.New("connection refused")).Twice()

		first := client.SendText(context.Background(), "device-1", "628123456789", "hello")
		second := client.SendText(context.Background(), "device-1", "628123456789", "hello")
		third := client.SendText(context.Background(), "device-1", "628123456789", "hello")

		assert.Equal(t, wagateway.ErrCodeNetworkError, first.Error)
		assert.Equal(t, wagateway.ErrCodeNetworkError, second.Error)
		assert.Equal(t, wagateway.ErrCodeBreakerOpen, third.Error)
		mockClient.AssertExpectations(t)
	})
}

func TestClient_SendGroupText(t *testing.T) {
	logger := zap.NewNop()
	mockClient := &mocks.HTTPClient{}
	client := wagateway.NewClient(testConfig, mockClient, logger)

	mockClient.On("Post", mock.Anything, testConfig.BaseURL+"/auth/generate", mock.Anything, mock.Anything).
		Return(tokenResponse("tok-1"), nil).Once()
	mockClient.On("Post", mock.Anything, testConfig.BaseURL+"/groups/send",
		matchField("groupId", "12036304@g.us"), matchBearer("tok-1")).
		Return(jsonResponse(200, `{"success":true,"messageId":"wamid-g1"}`), nil).Once()

	result := client.SendGroupText(context.Background(), "device-1", "12036304", "hello group")

	assert.True(t, result.Success)
	assert.Equal(t, "wamid-g1", result.MessageID)
	mockClient.AssertExpectations(t)
}

func TestClient_SendMedia(t *testing.T) {
	logger := zap.NewNop()
	mockClient := &mocks.HTTPClient{}
	client := wagateway.NewClient(testConfig, mockClient, logger)

	multipartHeaders := mock.MatchedBy(func(headers map[string]string) bool {
		return strings.HasPrefix(headers["Content-Type"], "multipart/form-data") &&
			headers["Authorization"] == "Bearer tok-1"
	})

	mockClient.On("Post", mock.Anything, testConfig.BaseURL+"/auth/generate", mock.Anything, mock.Anything).
		Return(tokenResponse("tok-1"), nil).Once()
	mockClient.On("Post", mock.Anything, testConfig.BaseURL+"/send-media", mock.Anything, multipartHeaders).
		Return(jsonResponse(200, `{"success":true,"messageId":"wamid-m1"}`), nil).Once()

	result := client.SendMedia(context.Background(), "device-1", "628123456789", "look", []byte{0x1, 0x2})

	assert.True(t, result.Success)
	assert.Equal(t, "wamid-m1", result.MessageID)
	mockClient.AssertExpectations(t)
}

func TestClient_DeviceStatus(t *testing.T) {
	logger := zap.NewNop()
	authURL := testConfig.BaseURL + "/auth/generate"
	devicesURL := testConfig.BaseURL + "/devices"

	t.Run("connected device", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Get", mock.Anything, devicesURL, matchBearer("tok-1")).
			Return(jsonResponse(200, `{"devices":[{"deviceId":"device-1","status":"connected"}]}`), nil).Once()

		status, err := client.DeviceStatus(context.Background(), "device-1")

		assert.NoError(t, err)
		assert.True(t, status.Found)
		assert.True(t, status.Connected)
	})

	t.Run("disconnected device", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Get", mock.Anything, devicesURL, mock.Anything).
			Return(jsonResponse(200, `{"devices":[{"deviceId":"device-1","status":"pairing"}]}`), nil).Once()

		status, err := client.DeviceStatus(context.Background(), "device-1")

		assert.NoError(t, err)
		assert.True(t, status.Found)
		assert.False(t, status.Connected)
	})

	t.Run("unknown device", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Get", mock.Anything, devicesURL, mock.Anything).
			Return(jsonResponse(200, `{"devices":[]}`), nil).Once()

		status, err := client.DeviceStatus(context.Background(), "device-1")

		assert.NoError(t, err)
		assert.False(t, status.Found)
		assert.False(t, status.Connected)
	})

	t.Run("server error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Get", mock.Anything, devicesURL, mock.Anything).
			Return(jsonResponse(502, `{}`), nil).Once()

		_, err := client.DeviceStatus(context.Background(), "device-1")

		assert.ErrorIs(t, err, wagateway.ErrServerError)
	})
}

func TestClient_QRCode(t *testing.T) {
	logger := zap.NewNop()
	authURL := testConfig.BaseURL + "/auth/generate"
	qrURL := testConfig.BaseURL + "/qr/device-1"

	t.Run("png response is base64 encoded", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		png := &http.Response{
			StatusCode: 200,
			Header:     http.Header{"Content-Type": []string{"image/png"}},
			Body:       io.NopCloser(bytes.NewReader([]byte{0x89, 0x50, 0x4e, 0x47})),
		}

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Get", mock.Anything, qrURL, matchBearer("tok-1")).
			Return(png, nil).Once()

		qr, err := client.QRCode(context.Background(), "device-1")

		assert.NoError(t, err)
		assert.Equal(t, "iVBORw==", qr.ImageBase64)
		assert.Nil(t, qr.Payload)
	})

	t.Run("json response passes through", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		client := wagateway.NewClient(testConfig, mockClient, logger)

		mockClient.On("Post", mock.Anything, authURL, mock.Anything, mock.Anything).
			Return(tokenResponse("tok-1"), nil).Once()
		mockClient.On("Get", mock.Anything, qrURL, mock.Anything).
			Return(jsonResponse(200, `{"message":"device already connected"}`), nil).Once()

		qr, err := client.QRCode(context.Background(), "device-1")

		assert.NoError(t, err)
		assert.Empty(t, qr.ImageBase64)
		assert.Equal(t, "device already connected", qr.Payload["message"])
	})
}

func TestClient_Connect(t *testing.T) {
	logger := zap.NewNop()
	mockClient := &mocks.HTTPClient{}
	client := wagateway.NewClient(testConfig, mockClient, logger)

	mockClient.On("Post", mock.Anything, testConfig.BaseURL+"/auth/generate", mock.Anything, mock.Anything).
		Return(tokenResponse("tok-1"), nil).Once()
	mockClient.On("Post", mock.Anything, testConfig.BaseURL+"/connect",
		matchField("deviceId", "device-1"), matchBearer("tok-1")).
		Return(jsonResponse(200, `{"success":true,"message":"session created"}`), nil).Once()

	result, err := client.Connect(context.Background(), "device-1")

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "session created", result.Message)
	mockClient.AssertExpectations(t)
}

func TestClient_Delete(t *testing.T) {
	logger := zap.NewNop()
	mockClient := &mocks.HTTPClient{}
	client := wagateway.NewClient(testConfig, mockClient, logger)

	mockClient.On("Post", mock.Anything, testConfig.BaseURL+"/auth/generate", mock.Anything, mock.Anything).
		Return(tokenResponse("tok-1"), nil).Once()
	mockClient.On("Delete", mock.Anything, testConfig.BaseURL+"/delete",
		matchField("deviceId", "device-1"), matchBearer("tok-1")).
		Return(jsonResponse(200, `{"success":true}`), nil).Once()

	result, err := client.Delete(context.Background(), "device-1")

	assert.NoError(t, err)
	assert.True(t, result.Success)
	mockClient.AssertExpectations(t)
}
