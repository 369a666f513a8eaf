package model

import "time"

type GroupType string

const (
	// GroupTypeContact is a local broadcast list; sending expands to the
	// individual member contacts.
	GroupTypeContact GroupType = "contact"
	// GroupTypeWhatsApp maps to a real WhatsApp group chat on the gateway.
	GroupTypeWhatsApp GroupType = "whatsapp"
)

type Group struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	UserID    int64     `gorm:"column:user_id;index:idx_groups_user"`
	Type      GroupType `gorm:"column:type"`
	GroupID   *string   `gorm:"column:group_id"`
	Subject   string    `gorm:"column:subject"`
	Contacts  []Contact `gorm:"many2many:group_contact_pivots;"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Group) TableName() string { return "groups" }
