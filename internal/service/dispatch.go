package service

import (
	"context"
	"errors"
	"time"

	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"github.com/ahmad-fahrudin/wablast-app/internal/repository"
	"github.com/ahmad-fahrudin/wablast-app/pkg/wagateway"
	"go.uber.org/zap"
)

// DispatchService fans one message out to every resolved destination of a
// blast. The returned BatchResult always describes the outcome; an error is
// returned only for infrastructure failures that prevented dispatch from
// running at all.
type DispatchService interface {
	SendText(ctx context.Context, cmd DispatchTextCommand) (BatchResult, error)
	SendMedia(ctx context.Context, cmd DispatchMediaCommand) (BatchResult, error)
}

type dispatch struct {
	deviceRepo repository.DeviceRepository
	resolver   RecipientResolver
	quota      QuotaGuard
	history    HistoryRecorder
	gateway    wagateway.Client
	logger     *zap.Logger
}

func NewDispatchService(deviceRepo repository.DeviceRepository, resolver RecipientResolver, quota QuotaGuard,
	history HistoryRecorder, gateway wagateway.Client, logger *zap.Logger) DispatchService {
	return &dispatch{
		deviceRepo: deviceRepo,
		resolver:   resolver,
		quota:      quota,
		history:    history,
		gateway:    gateway,
		logger:     logger,
	}
}

func (d *dispatch) SendText(ctx context.Context, cmd DispatchTextCommand) (BatchResult, error) {
	send := func(ctx context.Context, device *model.Device, dst Destination) wagateway.SendResult {
		if dst.Kind == DestinationGroup {
			return d.gateway.SendGroupText(ctx, device.DeviceID, dst.Address, cmd.Message)
		}
		return d.gateway.SendText(ctx, device.DeviceID, dst.Address, cmd.Message)
	}

	content := func(dst Destination) string { return cmd.Message }

	return d.run(ctx, cmd.UserID, cmd.DeviceID, cmd.RecipientType, cmd.Recipients, send, content, MsgTextSent)
}

func (d *dispatch) SendMedia(ctx context.Context, cmd DispatchMediaCommand) (BatchResult, error) {
	send := func(ctx context.Context, device *model.Device, dst Destination) wagateway.SendResult {
		if dst.Kind == DestinationGroup {
			return d.gateway.SendGroupMedia(ctx, device.DeviceID, dst.Address, cmd.Caption, cmd.Media)
		}
		return d.gateway.SendMedia(ctx, device.DeviceID, dst.Address, cmd.Caption, cmd.Media)
	}

	content := func(dst Destination) string {
		if dst.Kind == DestinationGroup {
			return cmd.Caption + mediaGroupMessageMarker
		}
		return cmd.Caption + mediaMessageMarker
	}

	return d.run(ctx, cmd.UserID, cmd.DeviceID, cmd.RecipientType, cmd.Recipients, send, content, MsgMediaSent)
}

func (d *dispatch) run(ctx context.Context, userID int64, deviceID string,
	recipientType RecipientType, recipients []RecipientRef,
	send func(ctx context.Context, device *model.Device, dst Destination) wagateway.SendResult,
	content func(dst Destination) string, successMessage string) (BatchResult, error) {

	device, result, err := d.loadDevice(ctx, userID, deviceID)
	if err != nil || device == nil {
		return result, err
	}

	destinations, err := d.resolver.Resolve(userID, recipientType, recipients)
	if err != nil {
		return BatchResult{}, err
	}

	results := make(map[string]SendResult, len(destinations))
	exhausted := false
	delivered := false

	for _, dst := range destinations {
		// Checked before every send so one blast stops mid-batch when the
		// allowance runs out, instead of failing each remaining destination.
		if d.quota.Exhausted(device) {
			exhausted = true
			break
		}

		outcome := send(ctx, device, dst)

		entry := SendResult{Success: outcome.Success, Error: outcome.Error}
		if outcome.Success {
			delivered = true
			warning, err := d.quota.Commit(ctx, device)
			if err != nil {
				d.logger.Error("Quota commit failed after send",
					zap.String("deviceID", device.DeviceID),
					zap.String("address", dst.Address),
					zap.Error(err))
			}
			entry.QuotaWarning = warning

			d.history.Record(ctx, device, dst, content(dst))
		} else {
			d.logger.Warn("Send failed",
				zap.String("deviceID", device.DeviceID),
				zap.String("address", dst.Address),
				zap.String("error", outcome.Error))
		}

		results[dst.Address] = entry
	}

	batch := BatchResult{Results: results, QuotaExhausted: exhausted}
	batch.Success = delivered && !exhausted

	switch {
	case exhausted:
		batch.Message = MsgQuotaExhausted
	case !delivered:
		batch.Message = MsgNoneSent
	default:
		batch.Message = successMessage
	}

	return batch, nil
}

// loadDevice fetches the sending device and pre-validates it. A nil device
// with a non-empty result means dispatch must stop and report that result.
// Connectivity is polled from the gateway before every blast and the stored
// flag refreshed; if the poll itself fails the stored flag decides.
func (d *dispatch) loadDevice(ctx context.Context, userID int64, deviceID string) (*model.Device, BatchResult, error) {
	device, err := d.deviceRepo.GetByDeviceID(userID, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, BatchResult{Message: MsgDeviceNotFound, Results: map[string]SendResult{}}, nil
		}

		d.logger.Error("Failed to load device", zap.String("deviceID", deviceID), zap.Error(err))
		return nil, BatchResult{}, ErrDatabase
	}

	if device.Expired(time.Now()) {
		return nil, BatchResult{Message: MsgDeviceExpired, Results: map[string]SendResult{}}, nil
	}

	connected := device.IsConnected
	status, err := d.gateway.DeviceStatus(ctx, device.DeviceID)
	if err != nil {
		d.logger.Warn("Connectivity poll failed, using stored state",
			zap.String("deviceID", device.DeviceID),
			zap.Bool("stored", connected),
			zap.Error(err))
	} else {
		connected = status.Found && status.Connected
		if connected != device.IsConnected {
			if err := d.deviceRepo.UpdateConnectivity(ctx, device.ID, connected); err != nil {
				d.logger.Warn("Failed to persist device connectivity",
					zap.String("deviceID", device.DeviceID), zap.Error(err))
			}
			device.IsConnected = connected
		}
	}

	if !connected {
		return nil, BatchResult{Message: MsgDeviceNotConnected, Results: map[string]SendResult{}}, nil
	}

	return device, BatchResult{}, nil
}
