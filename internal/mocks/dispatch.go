package mocks

import (
	"context"

	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"github.com/ahmad-fahrudin/wablast-app/internal/service"
	"github.com/stretchr/testify/mock"
)

type RecipientResolver struct {
	mock.Mock
}

func (m *RecipientResolver) Resolve(userID int64, recipientType service.RecipientType, refs []service.RecipientRef) ([]service.Destination, error) {
	args := m.Called(userID, recipientType, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.Destination), args.Error(1)
}

type QuotaGuard struct {
	mock.Mock
}

func (m *QuotaGuard) Exhausted(device *model.Device) bool {
	args := m.Called(device)
	return args.Bool(0)
}

func (m *QuotaGuard) Commit(ctx context.Context, device *model.Device) (bool, error) {
	args := m.Called(ctx, device)
	return args.Bool(0), args.Error(1)
}

type HistoryRecorder struct {
	mock.Mock
}

func (m *HistoryRecorder) Record(ctx context.Context, device *model.Device, dst service.Destination, content string) {
	m.Called(ctx, device, dst, content)
}

type DispatchService struct {
	mock.Mock
}

func (m *DispatchService) SendText(ctx context.Context, cmd service.DispatchTextCommand) (service.BatchResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.BatchResult), args.Error(1)
}

func (m *DispatchService) SendMedia(ctx context.Context, cmd service.DispatchMediaCommand) (service.BatchResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.BatchResult), args.Error(1)
}
