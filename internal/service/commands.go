package service

// RecipientType selects how the recipient references of a blast are
// interpreted: individual contacts, WhatsApp group chats, or broadcast lists
// fanned out to their member contacts.
type RecipientType string

const (
	RecipientContact   RecipientType = "contact"
	RecipientGroup     RecipientType = "group"
	RecipientBroadcast RecipientType = "broadcast"
)

func (t RecipientType) Valid() bool {
	return t == RecipientContact || t == RecipientGroup || t == RecipientBroadcast
}

// RecipientRef identifies one target of a blast. For contact blasts a manual
// entry carries the phone number directly and never touches the contact
// table; for group and broadcast blasts only ID is meaningful.
type RecipientRef struct {
	ID     int64
	Phone  string
	Name   string
	Manual bool
}

type DispatchTextCommand struct {
	UserID        int64
	DeviceID      string
	RecipientType RecipientType
	Recipients    []RecipientRef
	Message       string
}

type DispatchMediaCommand struct {
	UserID        int64
	DeviceID      string
	RecipientType RecipientType
	Recipients    []RecipientRef
	Caption       string
	Media         []byte
}

type RegisterDeviceCommand struct {
	UserID         int64
	Name           string
	Phone          string
	SubscriptionID *int64
}

type ActivateSubscriptionCommand struct {
	UserID         int64
	DeviceID       string
	SubscriptionID int64
}
