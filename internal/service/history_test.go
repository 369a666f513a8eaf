package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmad-fahrudin/wablast-app/internal/mocks"
	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"github.com/ahmad-fahrudin/wablast-app/internal/service"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestHistoryRecorder_Record(t *testing.T) {
	ctx := context.Background()
	subID := int64(3)
	device := &model.Device{ID: 1, UserID: 7, SubscriptionID: &subID}

	t.Run("records contact destinations", func(t *testing.T) {
		historyRepo := &mocks.MessageHistoryRepository{}
		recorder := service.NewHistoryRecorder(historyRepo, zap.NewNop())

		contactID := int64(42)
		dst := service.Destination{Kind: service.DestinationContact, Address: "628111", ContactID: &contactID}

		historyRepo.On("Create", ctx, mock.MatchedBy(func(h *model.MessageHistory) bool {
			return h.UserID == 7 &&
				h.DeviceID == 1 &&
				h.SubscriptionID != nil && *h.SubscriptionID == 3 &&
				h.ContactID != nil && *h.ContactID == 42 &&
				h.GroupID == nil &&
				h.Message == "hello"
		})).Return(nil)

		recorder.Record(ctx, device, dst, "hello")

		historyRepo.AssertExpectations(t)
	})

	t.Run("records group destinations", func(t *testing.T) {
		historyRepo := &mocks.MessageHistoryRepository{}
		recorder := service.NewHistoryRecorder(historyRepo, zap.NewNop())

		groupID := int64(5)
		dst := service.Destination{Kind: service.DestinationGroup, Address: "12036304", GroupID: &groupID}

		historyRepo.On("Create", ctx, mock.MatchedBy(func(h *model.MessageHistory) bool {
			return h.GroupID != nil && *h.GroupID == 5 && h.ContactID == nil
		})).Return(nil)

		recorder.Record(ctx, device, dst, "hello")

		historyRepo.AssertExpectations(t)
	})

	t.Run("ad-hoc destinations are recorded with null references", func(t *testing.T) {
		historyRepo := &mocks.MessageHistoryRepository{}
		recorder := service.NewHistoryRecorder(historyRepo, zap.NewNop())

		dst := service.Destination{Kind: service.DestinationContact, Address: "628111", DisplayName: "Andi"}

		historyRepo.On("Create", ctx, mock.MatchedBy(func(h *model.MessageHistory) bool {
			return h.UserID == 7 &&
				h.DeviceID == 1 &&
				h.ContactID == nil &&
				h.GroupID == nil &&
				h.Message == "hello"
		})).Return(nil)

		recorder.Record(ctx, device, dst, "hello")

		historyRepo.AssertExpectations(t)
	})

	t.Run("insert failure is swallowed", func(t *testing.T) {
		historyRepo := &mocks.MessageHistoryRepository{}
		recorder := service.NewHistoryRecorder(historyRepo, zap.NewNop())

		contactID := int64(42)
		dst := service.Destination{Kind: service.DestinationContact, Address: "628111", ContactID: &contactID}

		historyRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection lost"))

		recorder.Record(ctx, device, dst, "hello")

		historyRepo.AssertExpectations(t)
	})
}
