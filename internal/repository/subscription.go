package repository

import (
	"errors"

	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"gorm.io/gorm"
)

var ErrSubscriptionNotFound = errors.New("SUBSCRIPTION_NOT_FOUND")

type SubscriptionRepository interface {
	GetByID(id int64) (*model.Subscription, error)
}

type Subscription struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &Subscription{db: db}
}

func (s *Subscription) GetByID(id int64) (*model.Subscription, error) {
	var subscription model.Subscription

	err := s.db.Where("id = ?", id).First(&subscription).Error
	if err == nil {
		return &subscription, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriptionNotFound
	}

	return nil, err
}
