package mocks

import (
	"context"

	"github.com/ahmad-fahrudin/wablast-app/pkg/wagateway"
	"github.com/stretchr/testify/mock"
)

type GatewayClient struct {
	mock.Mock
}

func (m *GatewayClient) Connect(ctx context.Context, deviceID string) (wagateway.Result, error) {
	args := m.Called(ctx, deviceID)
	return args.Get(0).(wagateway.Result), args.Error(1)
}

func (m *GatewayClient) QRCode(ctx context.Context, deviceID string) (wagateway.QRResult, error) {
	args := m.Called(ctx, deviceID)
	return args.Get(0).(wagateway.QRResult), args.Error(1)
}

func (m *GatewayClient) Delete(ctx context.Context, deviceID string) (wagateway.Result, error) {
	args := m.Called(ctx, deviceID)
	return args.Get(0).(wagateway.Result), args.Error(1)
}

func (m *GatewayClient) DeviceStatus(ctx context.Context, deviceID string) (wagateway.DeviceStatus, error) {
	args := m.Called(ctx, deviceID)
	return args.Get(0).(wagateway.DeviceStatus), args.Error(1)
}

func (m *GatewayClient) SendText(ctx context.Context, deviceID, to, message string) wagateway.SendResult {
	args := m.Called(ctx, deviceID, to, message)
	return args.Get(0).(wagateway.SendResult)
}

func (m *GatewayClient) SendMedia(ctx context.Context, deviceID, to, caption string, media []byte) wagateway.SendResult {
	args := m.Called(ctx, deviceID, to, caption, media)
	return args.Get(0).(wagateway.SendResult)
}

func (m *GatewayClient) SendGroupText(ctx context.Context, deviceID, groupID, message string) wagateway.SendResult {
	args := m.Called(ctx, deviceID, groupID, message)
	return args.Get(0).(wagateway.SendResult)
}

func (m *GatewayClient) SendGroupMedia(ctx context.Context, deviceID, groupID, caption string, media []byte) wagateway.SendResult {
	args := m.Called(ctx, deviceID, groupID, caption, media)
	return args.Get(0).(wagateway.SendResult)
}
