package repository

import (
	"context"

	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"gorm.io/gorm"
)

type MessageHistoryRepository interface {
	Create(ctx context.Context, history *model.MessageHistory) error
	GetByDeviceID(userID, deviceID int64, limit, offset int) ([]model.MessageHistory, error)
}

type MessageHistory struct {
	db *gorm.DB
}

func NewMessageHistoryRepository(db *gorm.DB) MessageHistoryRepository {
	return &MessageHistory{db: db}
}

func (m *MessageHistory) Create(ctx context.Context, history *model.MessageHistory) error {
	db := GetTx(ctx, m.db)
	return db.Create(history).Error
}

func (m *MessageHistory) GetByDeviceID(userID, deviceID int64, limit, offset int) ([]model.MessageHistory, error) {
	var histories []model.MessageHistory

	err := m.db.Where("user_id = ? AND device_id = ?", userID, deviceID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&histories).Error
	if err != nil {
		return nil, err
	}

	return histories, nil
}
