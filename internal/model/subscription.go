package model

import "time"

// Subscription is a purchasable plan. MessageQuota is the allowance granted
// on activation; nil means unlimited sending.
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	Name         string    `gorm:"column:name"`
	MessageQuota *int64    `gorm:"column:message_quota"`
	DurationDays int       `gorm:"column:duration_days"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

// DeviceSubscription links a device to its active plan window.
type DeviceSubscription struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	DeviceID       int64     `gorm:"column:device_id;uniqueIndex:idx_device_subscriptions_device"`
	SubscriptionID int64     `gorm:"column:subscription_id"`
	StartsAt       time.Time `gorm:"column:starts_at"`
	EndsAt         time.Time `gorm:"column:ends_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (DeviceSubscription) TableName() string { return "device_subscriptions" }
