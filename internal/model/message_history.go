package model

import "time"

// MessageHistory is one delivery record. Exactly one of ContactID and GroupID
// is set, matching the destination kind at send time.
type MessageHistory struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	UserID         int64     `gorm:"column:user_id;index:idx_histories_user"`
	SubscriptionID *int64    `gorm:"column:subscription_id"`
	DeviceID       int64     `gorm:"column:device_id;index:idx_histories_device"`
	ContactID      *int64    `gorm:"column:contact_id"`
	GroupID        *int64    `gorm:"column:group_id"`
	Message        string    `gorm:"column:message"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (MessageHistory) TableName() string { return "message_histories" }
