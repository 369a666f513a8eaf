package mocks

import (
	"context"

	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"github.com/stretchr/testify/mock"
)

type MessageHistoryRepository struct {
	mock.Mock
}

func (m *MessageHistoryRepository) Create(ctx context.Context, history *model.MessageHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MessageHistoryRepository) GetByDeviceID(userID, deviceID int64, limit, offset int) ([]model.MessageHistory, error) {
	args := m.Called(userID, deviceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MessageHistory), args.Error(1)
}
