package v1

import (
	"encoding/json"
	"testing"

	"github.com/ahmad-fahrudin/wablast-app/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestRecipientPayload_UnmarshalJSON(t *testing.T) {
	t.Run("object form", func(t *testing.T) {
		var payload RecipientPayload
		err := json.Unmarshal([]byte(`{"id":42,"phone":"628111","name":"Andi","isManual":true}`), &payload)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), payload.ID)
		assert.Equal(t, "628111", payload.Phone)
		assert.Equal(t, "Andi", payload.Name)
		assert.True(t, payload.IsManual)
	})

	t.Run("bare id", func(t *testing.T) {
		var payload RecipientPayload
		err := json.Unmarshal([]byte(`42`), &payload)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), payload.ID)
		assert.False(t, payload.IsManual)
	})

	t.Run("numeric string id", func(t *testing.T) {
		var payload RecipientPayload
		err := json.Unmarshal([]byte(`"42"`), &payload)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), payload.ID)
	})

	t.Run("non numeric string fails", func(t *testing.T) {
		var payload RecipientPayload
		err := json.Unmarshal([]byte(`"forty-two"`), &payload)

		assert.Error(t, err)
	})

	t.Run("mixed recipient list", func(t *testing.T) {
		var payloads []RecipientPayload
		err := json.Unmarshal([]byte(`[7,"8",{"phone":"628999","isManual":true}]`), &payloads)

		assert.NoError(t, err)
		assert.Len(t, payloads, 3)
		assert.Equal(t, int64(7), payloads[0].ID)
		assert.Equal(t, int64(8), payloads[1].ID)
		assert.Equal(t, "628999", payloads[2].Phone)
		assert.True(t, payloads[2].IsManual)
	})
}

func TestValidateBlast(t *testing.T) {
	t.Run("valid text blast passes", func(t *testing.T) {
		errs := validateBlast("device-1", "hello", "message", service.RecipientContact, 1)

		assert.Empty(t, errs)
	})

	t.Run("empty media caption names the caption field", func(t *testing.T) {
		errs := validateBlast("device-1", "", "caption", service.RecipientContact, 1)

		assert.Equal(t, []string{"caption is required"}, errs)
	})

	t.Run("empty text message names the message field", func(t *testing.T) {
		errs := validateBlast("device-1", "", "message", service.RecipientContact, 1)

		assert.Equal(t, []string{"message is required"}, errs)
	})

	t.Run("invalid recipient type is rejected", func(t *testing.T) {
		errs := validateBlast("device-1", "hello", "message", service.RecipientType("newsletter"), 1)

		assert.Contains(t, errs, "recipientType must be one of contact, group, broadcast")
	})

	t.Run("missing fields accumulate", func(t *testing.T) {
		errs := validateBlast("", "", "message", service.RecipientType(""), 0)

		assert.Len(t, errs, 4)
	})
}
