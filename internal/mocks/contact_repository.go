package mocks

import (
	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"github.com/stretchr/testify/mock"
)

type ContactRepository struct {
	mock.Mock
}

func (m *ContactRepository) GetByID(userID, id int64) (*model.Contact, error) {
	args := m.Called(userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}
