package model

import "time"

type Contact struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	UserID    int64     `gorm:"column:user_id;index:idx_contacts_user"`
	Name      string    `gorm:"column:name"`
	Phone     string    `gorm:"column:phone"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Contact) TableName() string { return "contacts" }
