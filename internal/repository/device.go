package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrDeviceNotFound = errors.New("DEVICE_NOT_FOUND")
var ErrDeviceDuplicate = errors.New("DEVICE_DUPLICATE")
var ErrNoRowsAffected = errors.New("NO_ROWS_AFFECTED")

type DeviceRepository interface {
	Create(ctx context.Context, device *model.Device) error
	Update(ctx context.Context, device *model.Device) error
	Delete(ctx context.Context, device *model.Device) error
	GetByDeviceID(userID int64, deviceID string) (*model.Device, error)
	GetByUserID(userID int64) ([]model.Device, error)
	UpdateConnectivity(ctx context.Context, id int64, connected bool) error
	DecrementQuota(ctx context.Context, id int64) (remaining int64, err error)
	UpsertSubscription(ctx context.Context, sub *model.DeviceSubscription) error
}

type Device struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &Device{db: db}
}

func (d *Device) Create(ctx context.Context, device *model.Device) error {
	db := GetTx(ctx, d.db)
	err := db.Create(device).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrDeviceDuplicate
	}

	return err
}

func (d *Device) Update(ctx context.Context, device *model.Device) error {
	db := GetTx(ctx, d.db)
	return db.Model(device).Where("id = ?", device.ID).Updates(device).Error
}

func (d *Device) Delete(ctx context.Context, device *model.Device) error {
	db := GetTx(ctx, d.db)
	return db.Delete(device).Error
}

func (d *Device) GetByDeviceID(userID int64, deviceID string) (*model.Device, error) {
	var device model.Device

	err := d.db.Where("user_id = ? AND device_id = ?", userID, deviceID).First(&device).Error
	if err == nil {
		return &device, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDeviceNotFound
	}

	return nil, err
}

func (d *Device) GetByUserID(userID int64) ([]model.Device, error) {
	var devices []model.Device

	err := d.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&devices).Error
	if err != nil {
		return nil, err
	}

	return devices, nil
}

func (d *Device) UpdateConnectivity(ctx context.Context, id int64, connected bool) error {
	db := GetTx(ctx, d.db)
	return db.Model(&model.Device{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_connected": connected, "updated_at": time.Now()}).Error
}

// DecrementQuota consumes one unit atomically. The guard in the WHERE clause
// keeps quota from going negative under concurrent sends; zero rows affected
// means the quota was already spent. Unlimited (NULL quota) devices must not
// reach here.
func (d *Device) DecrementQuota(ctx context.Context, id int64) (int64, error) {
	db := GetTx(ctx, d.db)

	result := db.Model(&model.Device{}).
		Where("id = ? AND quota > 0", id).
		Update("quota", gorm.Expr("quota - 1"))
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		return 0, ErrNoRowsAffected
	}

	var device model.Device
	if err := db.Select("quota").Where("id = ?", id).First(&device).Error; err != nil {
		return 0, err
	}

	if device.Quota == nil {
		return 0, nil
	}

	return *device.Quota, nil
}

func (d *Device) UpsertSubscription(ctx context.Context, sub *model.DeviceSubscription) error {
	db := GetTx(ctx, d.db)

	var existing model.DeviceSubscription
	err := db.Where("device_id = ?", sub.DeviceID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(sub).Error
	}
	if err != nil {
		return err
	}

	sub.ID = existing.ID
	return db.Model(sub).Where("id = ?", sub.ID).Updates(sub).Error
}
