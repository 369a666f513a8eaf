package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"github.com/ahmad-fahrudin/wablast-app/internal/repository"
	"github.com/ahmad-fahrudin/wablast-app/pkg/wagateway"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// DeviceService manages the lifecycle of gateway-registered devices:
// registration, QR pairing, connectivity checks, subscription activation and
// removal.
type DeviceService interface {
	Register(ctx context.Context, cmd RegisterDeviceCommand) (*DeviceResponse, error)
	List(userID int64) ([]DeviceResponse, error)
	QRCode(ctx context.Context, userID int64, deviceID string) (wagateway.QRResult, error)
	CheckStatus(ctx context.Context, userID int64, deviceID string) (DeviceStatusResponse, error)
	Delete(ctx context.Context, userID int64, deviceID string) error
	ActivateSubscription(ctx context.Context, cmd ActivateSubscriptionCommand) (*DeviceResponse, error)
}

type device struct {
	deviceRepo       repository.DeviceRepository
	subscriptionRepo repository.SubscriptionRepository
	txManager        repository.TxManager
	gateway          wagateway.Client
	logger           *zap.Logger
}

func NewDeviceService(deviceRepo repository.DeviceRepository, subscriptionRepo repository.SubscriptionRepository,
	txManager repository.TxManager, gateway wagateway.Client, logger *zap.Logger) DeviceService {
	return &device{
		deviceRepo:       deviceRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		gateway:          gateway,
		logger:           logger,
	}
}

func (d *device) Register(ctx context.Context, cmd RegisterDeviceCommand) (*DeviceResponse, error) {
	record := model.Device{
		UserID:    cmd.UserID,
		DeviceID:  newDeviceID(cmd.Name),
		Name:      cmd.Name,
		Phone:     cmd.Phone,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if cmd.SubscriptionID != nil {
		subscription, err := d.subscriptionRepo.GetByID(*cmd.SubscriptionID)
		if err != nil {
			if errors.Is(err, repository.ErrSubscriptionNotFound) {
				return nil, NewServiceError(ErrSubscriptionNotFound.Error(), err)
			}

			return nil, NewServiceError(ErrCodeDatabase, err)
		}

		record.SubscriptionID = &subscription.ID
		record.Quota = copyQuota(subscription.MessageQuota)
		expiry := time.Now().AddDate(0, 0, subscription.DurationDays)
		record.ExpiredAt = &expiry
	}

	if err := d.deviceRepo.Create(ctx, &record); err != nil {
		if errors.Is(err, repository.ErrDeviceDuplicate) {
			return nil, NewServiceError(ErrDeviceDuplicate.Error(), err)
		}

		d.logger.Error("Failed to create device", zap.String("name", cmd.Name), zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	// Gateway session creation failing is not fatal; pairing can start later
	// through the QR endpoint.
	if _, err := d.gateway.Connect(ctx, record.DeviceID); err != nil {
		d.logger.Warn("Failed to start gateway session for new device",
			zap.String("deviceID", record.DeviceID), zap.Error(err))
	}

	return toDeviceResponse(&record), nil
}

func (d *device) List(userID int64) ([]DeviceResponse, error) {
	devices, err := d.deviceRepo.GetByUserID(userID)
	if err != nil {
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	responses := make([]DeviceResponse, 0, len(devices))
	for i := range devices {
		responses = append(responses, *toDeviceResponse(&devices[i]))
	}

	return responses, nil
}

func (d *device) QRCode(ctx context.Context, userID int64, deviceID string) (wagateway.QRResult, error) {
	record, err := d.getDevice(userID, deviceID)
	if err != nil {
		return wagateway.QRResult{}, err
	}

	qr, err := d.gateway.QRCode(ctx, record.DeviceID)
	if err != nil {
		d.logger.Error("Failed to fetch QR code",
			zap.String("deviceID", record.DeviceID), zap.Error(err))
		return wagateway.QRResult{}, NewServiceError(ErrCodeGateway, err)
	}

	return qr, nil
}

func (d *device) CheckStatus(ctx context.Context, userID int64, deviceID string) (DeviceStatusResponse, error) {
	record, err := d.getDevice(userID, deviceID)
	if err != nil {
		return DeviceStatusResponse{}, err
	}

	status, err := d.gateway.DeviceStatus(ctx, record.DeviceID)
	if err != nil {
		d.logger.Error("Failed to check device status",
			zap.String("deviceID", record.DeviceID), zap.Error(err))
		return DeviceStatusResponse{}, NewServiceError(ErrCodeGateway, err)
	}

	if status.Connected != record.IsConnected {
		if err := d.deviceRepo.UpdateConnectivity(ctx, record.ID, status.Connected); err != nil {
			d.logger.Warn("Failed to persist device connectivity",
				zap.String("deviceID", record.DeviceID), zap.Error(err))
		}
	}

	return DeviceStatusResponse{DeviceID: record.DeviceID, Found: status.Found, Connected: status.Connected}, nil
}

func (d *device) Delete(ctx context.Context, userID int64, deviceID string) error {
	record, err := d.getDevice(userID, deviceID)
	if err != nil {
		return err
	}

	if _, err := d.gateway.Delete(ctx, record.DeviceID); err != nil {
		d.logger.Warn("Failed to remove gateway session, deleting device anyway",
			zap.String("deviceID", record.DeviceID), zap.Error(err))
	}

	if err := d.deviceRepo.Delete(ctx, record); err != nil {
		d.logger.Error("Failed to delete device", zap.String("deviceID", record.DeviceID), zap.Error(err))
		return NewServiceError(ErrCodeDatabase, err)
	}

	return nil
}

// ActivateSubscription attaches a plan to a device and resets its allowance
// and expiry. Re-activating an active plan renews the window.
func (d *device) ActivateSubscription(ctx context.Context, cmd ActivateSubscriptionCommand) (*DeviceResponse, error) {
	record, err := d.getDevice(cmd.UserID, cmd.DeviceID)
	if err != nil {
		return nil, err
	}

	subscription, err := d.subscriptionRepo.GetByID(cmd.SubscriptionID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, NewServiceError(ErrSubscriptionNotFound.Error(), err)
		}

		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	now := time.Now()
	endsAt := now.AddDate(0, 0, subscription.DurationDays)

	err = d.txManager.WithTx(ctx, func(ctx context.Context) error {
		link := model.DeviceSubscription{
			DeviceID:       record.ID,
			SubscriptionID: subscription.ID,
			StartsAt:       now,
			EndsAt:         endsAt,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := d.deviceRepo.UpsertSubscription(ctx, &link); err != nil {
			return err
		}

		record.SubscriptionID = &subscription.ID
		record.Quota = copyQuota(subscription.MessageQuota)
		record.ExpiredAt = &endsAt
		record.UpdatedAt = now

		return d.deviceRepo.Update(ctx, record)
	})
	if err != nil {
		d.logger.Error("Failed to activate subscription",
			zap.String("deviceID", record.DeviceID),
			zap.Int64("subscriptionID", subscription.ID),
			zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	return toDeviceResponse(record), nil
}

func (d *device) getDevice(userID int64, deviceID string) (*model.Device, error) {
	record, err := d.deviceRepo.GetByDeviceID(userID, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, NewServiceError(ErrDeviceNotFound.Error(), err)
		}

		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	return record, nil
}

func toDeviceResponse(device *model.Device) *DeviceResponse {
	return &DeviceResponse{
		DeviceID:    device.DeviceID,
		Name:        device.Name,
		Phone:       device.Phone,
		Quota:       device.Quota,
		IsConnected: device.IsConnected,
		ExpiredAt:   device.ExpiredAt,
	}
}

func copyQuota(quota *int64) *int64 {
	if quota == nil {
		return nil
	}

	value := *quota
	return &value
}

// newDeviceID derives a gateway identifier from the device name plus a ULID
// so renaming collisions cannot occur.
func newDeviceID(name string) string {
	return slugify(name) + "-" + strings.ToLower(ulid.Make().String())
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "device"
	}

	return slug
}
