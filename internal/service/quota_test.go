package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmad-fahrudin/wablast-app/internal/mocks"
	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"github.com/ahmad-fahrudin/wablast-app/internal/repository"
	"github.com/ahmad-fahrudin/wablast-app/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func quota(v int64) *int64 { return &v }

func TestQuotaGuard_Exhausted(t *testing.T) {
	guard := service.NewQuotaGuard(&mocks.DeviceRepository{}, zap.NewNop())

	assert.False(t, guard.Exhausted(&model.Device{Quota: nil}))
	assert.False(t, guard.Exhausted(&model.Device{Quota: quota(1)}))
	assert.True(t, guard.Exhausted(&model.Device{Quota: quota(0)}))
}

func TestQuotaGuard_Commit(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("unlimited device never touches the repository", func(t *testing.T) {
		deviceRepo := &mocks.DeviceRepository{}
		guard := service.NewQuotaGuard(deviceRepo, logger)

		warning, err := guard.Commit(ctx, &model.Device{ID: 1})

		assert.NoError(t, err)
		assert.False(t, warning)
		deviceRepo.AssertNotCalled(t, "DecrementQuota")
	})

	t.Run("decrement updates in-memory quota", func(t *testing.T) {
		deviceRepo := &mocks.DeviceRepository{}
		guard := service.NewQuotaGuard(deviceRepo, logger)

		deviceRepo.On("DecrementQuota", ctx, int64(1)).Return(int64(3), nil)

		device := &model.Device{ID: 1, Quota: quota(4)}
		warning, err := guard.Commit(ctx, device)

		assert.NoError(t, err)
		assert.False(t, warning)
		assert.Equal(t, int64(3), *device.Quota)
	})

	t.Run("draining the last unit warns", func(t *testing.T) {
		deviceRepo := &mocks.DeviceRepository{}
		guard := service.NewQuotaGuard(deviceRepo, logger)

		deviceRepo.On("DecrementQuota", ctx, int64(1)).Return(int64(0), nil)

		device := &model.Device{ID: 1, Quota: quota(1)}
		warning, err := guard.Commit(ctx, device)

		assert.NoError(t, err)
		assert.True(t, warning)
		assert.Equal(t, int64(0), *device.Quota)
	})

	t.Run("losing the decrement race warns and zeroes quota", func(t *testing.T) {
		deviceRepo := &mocks.DeviceRepository{}
		guard := service.NewQuotaGuard(deviceRepo, logger)

		deviceRepo.On("DecrementQuota", ctx, int64(1)).Return(int64(0), repository.ErrNoRowsAffected)

		device := &model.Device{ID: 1, Quota: quota(1)}
		warning, err := guard.Commit(ctx, device)

		assert.NoError(t, err)
		assert.True(t, warning)
		assert.Equal(t, int64(0), *device.Quota)
	})

	t.Run("database failure surfaces", func(t *testing.T) {
		deviceRepo := &mocks.DeviceRepository{}
		guard := service.NewQuotaGuard(deviceRepo, logger)

		deviceRepo.On("DecrementQuota", ctx, int64(1)).Return(int64(0), errors.New("connection lost"))

		device := &model.Device{ID: 1, Quota: quota(5)}
		warning, err := guard.Commit(ctx, device)

		assert.ErrorIs(t, err, service.ErrDatabase)
		assert.False(t, warning)
		assert.Equal(t, int64(5), *device.Quota)
	})
}
