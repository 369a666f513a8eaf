package mocks

import (
	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"github.com/stretchr/testify/mock"
)

type SubscriptionRepository struct {
	mock.Mock
}

func (m *SubscriptionRepository) GetByID(id int64) (*model.Subscription, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}
