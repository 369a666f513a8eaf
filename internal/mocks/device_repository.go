package mocks

import (
	"context"

	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"github.com/stretchr/testify/mock"
)

type DeviceRepository struct {
	mock.Mock
}

func (m *DeviceRepository) Create(ctx context.Context, device *model.Device) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}

func (m *DeviceRepository) Update(ctx context.Context, device *model.Device) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}

func (m *DeviceRepository) Delete(ctx context.Context, device *model.Device) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}

func (m *DeviceRepository) GetByDeviceID(userID int64, deviceID string) (*model.Device, error) {
	args := m.Called(userID, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Device), args.Error(1)
}

func (m *DeviceRepository) GetByUserID(userID int64) ([]model.Device, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Device), args.Error(1)
}

func (m *DeviceRepository) UpdateConnectivity(ctx context.Context, id int64, connected bool) error {
	args := m.Called(ctx, id, connected)
	return args.Error(0)
}

func (m *DeviceRepository) DecrementQuota(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DeviceRepository) UpsertSubscription(ctx context.Context, sub *model.DeviceSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
