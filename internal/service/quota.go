package service

import (
	"context"
	"errors"

	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"github.com/ahmad-fahrudin/wablast-app/internal/repository"
	"go.uber.org/zap"
)

// QuotaGuard enforces the per-device message allowance. Devices with a nil
// quota are unlimited and bypass the guard entirely. The guard mutates the
// in-memory device so a dispatch loop sees quota drain between sends.
type QuotaGuard interface {
	Exhausted(device *model.Device) bool
	Commit(ctx context.Context, device *model.Device) (warning bool, err error)
}

type quotaGuard struct {
	deviceRepo repository.DeviceRepository
	logger     *zap.Logger
}

func NewQuotaGuard(deviceRepo repository.DeviceRepository, logger *zap.Logger) QuotaGuard {
	return &quotaGuard{deviceRepo: deviceRepo, logger: logger}
}

func (q *quotaGuard) Exhausted(device *model.Device) bool {
	return device.Quota != nil && *device.Quota <= 0
}

// Commit consumes one quota unit after a successful send. The decrement is a
// conditional UPDATE, so a concurrent blast on the same device cannot push
// quota negative; losing the race is reported the same as draining the last
// unit. warning is true when this send used up the final unit.
func (q *quotaGuard) Commit(ctx context.Context, device *model.Device) (bool, error) {
	if device.Quota == nil {
		return false, nil
	}

	remaining, err := q.deviceRepo.DecrementQuota(ctx, device.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			zero := int64(0)
			device.Quota = &zero
			return true, nil
		}

		q.logger.Error("Failed to decrement device quota",
			zap.Int64("deviceID", device.ID), zap.Error(err))
		return false, ErrDatabase
	}

	device.Quota = &remaining
	return remaining <= 0, nil
}
