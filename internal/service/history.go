package service

import (
	"context"
	"time"

	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"github.com/ahmad-fahrudin/wablast-app/internal/repository"
	"go.uber.org/zap"
)

const (
	mediaMessageMarker      = " [Media Message]"
	mediaGroupMessageMarker = " [Media Message to Group]"
)

// HistoryRecorder persists delivery records after successful sends. Recording
// is best effort: a failed insert is logged and never surfaces to the
// dispatch flow. Ad-hoc recipients without a stored contact row are recorded
// with both contact_id and group_id null.
type HistoryRecorder interface {
	Record(ctx context.Context, device *model.Device, dst Destination, content string)
}

type historyRecorder struct {
	historyRepo repository.MessageHistoryRepository
	logger      *zap.Logger
}

func NewHistoryRecorder(historyRepo repository.MessageHistoryRepository, logger *zap.Logger) HistoryRecorder {
	return &historyRecorder{historyRepo: historyRepo, logger: logger}
}

func (h *historyRecorder) Record(ctx context.Context, device *model.Device, dst Destination, content string) {
	history := model.MessageHistory{
		UserID:         device.UserID,
		SubscriptionID: device.SubscriptionID,
		DeviceID:       device.ID,
		ContactID:      dst.ContactID,
		GroupID:        dst.GroupID,
		Message:        content,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.historyRepo.Create(ctx, &history); err != nil {
		h.logger.Warn("Failed to record message history",
			zap.Int64("deviceID", device.ID),
			zap.String("address", dst.Address),
			zap.Error(err))
	}
}
