package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ahmad-fahrudin/wablast-app/internal/service"
)

// RecipientPayload accepts three wire shapes for one recipient: a full
// object, a bare contact id, or a contact id as a numeric string.
type RecipientPayload struct {
	ID       int64  `json:"id"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	IsManual bool   `json:"isManual"`
}

func (r *RecipientPayload) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		type plain RecipientPayload
		var p plain
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return err
		}
		*r = RecipientPayload(p)
		return nil
	}

	var id int64
	if err := json.Unmarshal(trimmed, &id); err == nil {
		*r = RecipientPayload{ID: id}
		return nil
	}

	var raw string
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("invalid recipient entry: %s", string(trimmed))
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid recipient id %q", raw)
	}

	*r = RecipientPayload{ID: id}
	return nil
}

func toRecipientRefs(payloads []RecipientPayload) []service.RecipientRef {
	refs := make([]service.RecipientRef, 0, len(payloads))
	for _, p := range payloads {
		refs = append(refs, service.RecipientRef{ID: p.ID, Phone: p.Phone, Name: p.Name, Manual: p.IsManual})
	}
	return refs
}

type SendTextRequest struct {
	DeviceID      string             `json:"deviceId"`
	RecipientType string             `json:"recipientType"`
	Recipients    []RecipientPayload `json:"recipients"`
	Message       string             `json:"message"`
}

type RegisterDeviceRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	SubscriptionID *int64 `json:"subscriptionId"`
}

type ActivateSubscriptionRequest struct {
	SubscriptionID int64 `json:"subscriptionId"`
}
