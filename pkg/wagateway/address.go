package wagateway

import "strings"

const (
	UserAddressSuffix  = "@s.whatsapp.net"
	GroupAddressSuffix = "@g.us"
)

// NormalizeUserAddress appends the WhatsApp user suffix to a phone number.
// Already-suffixed addresses are returned unchanged.
func NormalizeUserAddress(phone string) string {
	if strings.HasSuffix(phone, UserAddressSuffix) {
		return phone
	}
	return phone + UserAddressSuffix
}

// NormalizeGroupAddress appends the WhatsApp group suffix to a group id.
// Already-suffixed ids are returned unchanged.
func NormalizeGroupAddress(groupID string) string {
	if strings.HasSuffix(groupID, GroupAddressSuffix) {
		return groupID
	}
	return groupID + GroupAddressSuffix
}
