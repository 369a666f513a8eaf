package model

import "time"

// Device is a WhatsApp session registered on the external gateway. Quota is
// the remaining message allowance; nil means unlimited. DeviceID is the
// gateway-side identifier, distinct from the primary key.
type Device struct {
	ID             int64      `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	UserID         int64      `gorm:"column:user_id;index:idx_devices_user"`
	SubscriptionID *int64     `gorm:"column:subscription_id"`
	DeviceID       string     `gorm:"column:device_id;uniqueIndex:idx_devices_device_id"`
	Name           string     `gorm:"column:name"`
	Phone          string     `gorm:"column:phone"`
	Quota          *int64     `gorm:"column:quota"`
	IsConnected    bool       `gorm:"column:is_connected"`
	ExpiredAt      *time.Time `gorm:"column:expired_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (Device) TableName() string { return "devices" }

// Expired reports whether the device's subscription window has passed.
// Devices without an expiry never expire.
func (d *Device) Expired(now time.Time) bool {
	return d.ExpiredAt != nil && d.ExpiredAt.Before(now)
}
