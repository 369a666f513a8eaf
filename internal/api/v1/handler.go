package v1

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/ahmad-fahrudin/wablast-app/internal/constants"
	"github.com/ahmad-fahrudin/wablast-app/internal/metrics"
	"github.com/ahmad-fahrudin/wablast-app/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger   *zap.Logger
	dispatch service.DispatchService
	devices  service.DeviceService
	metrics  *metrics.Metrics
}

func NewHandler(logger *zap.Logger, dispatch service.DispatchService, devices service.DeviceService,
	m *metrics.Metrics) *Handler {
	return &Handler{logger: logger, dispatch: dispatch, devices: devices, metrics: m}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) SendText(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := userID(c)
	if err != nil {
		return validationFailed(c, "X-User-ID header is required")
	}

	var request SendTextRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return invalidBody(c)
	}

	recipientType := service.RecipientType(request.RecipientType)
	if errs := validateBlast(request.DeviceID, request.Message, "message", recipientType, len(request.Recipients)); len(errs) > 0 {
		return validationFailed(c, errs...)
	}

	cmd := service.DispatchTextCommand{
		UserID:        userID,
		DeviceID:      request.DeviceID,
		RecipientType: recipientType,
		Recipients:    toRecipientRefs(request.Recipients),
		Message:       request.Message,
	}

	result, err := h.dispatch.SendText(ctx, cmd)
	if err != nil {
		h.logger.Error("Failed to dispatch text blast",
			zap.Error(err),
			zap.String("deviceID", request.DeviceID))
		return err
	}

	h.recordBatch("text", result)

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *Handler) SendMedia(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := userID(c)
	if err != nil {
		return validationFailed(c, "X-User-ID header is required")
	}

	deviceID := c.FormValue("deviceId")
	caption := c.FormValue("caption")
	recipientType := service.RecipientType(c.FormValue("recipientType"))

	recipients, err := parseRecipientsForm(c.FormValue("recipients"))
	if err != nil {
		h.logger.Warn("Failed to parse recipients form field", zap.Error(err))
		return invalidBody(c)
	}

	media, err := readMediaFile(c)
	if err != nil {
		h.logger.Warn("Failed to read media file", zap.Error(err))
		return invalidBody(c)
	}

	errs := validateBlast(deviceID, caption, "caption", recipientType, len(recipients))
	if media == nil {
		errs = append(errs, "media file is required")
	}
	if len(errs) > 0 {
		return validationFailed(c, errs...)
	}

	cmd := service.DispatchMediaCommand{
		UserID:        userID,
		DeviceID:      deviceID,
		RecipientType: recipientType,
		Recipients:    toRecipientRefs(recipients),
		Caption:       caption,
		Media:         media,
	}

	result, err := h.dispatch.SendMedia(ctx, cmd)
	if err != nil {
		h.logger.Error("Failed to dispatch media blast",
			zap.Error(err),
			zap.String("deviceID", deviceID))
		return err
	}

	h.recordBatch("media", result)

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *Handler) RegisterDevice(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := userID(c)
	if err != nil {
		return validationFailed(c, "X-User-ID header is required")
	}

	var request RegisterDeviceRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse body", zap.Error(err))
		return invalidBody(c)
	}

	if request.Name == "" {
		return validationFailed(c, "name is required")
	}

	cmd := service.RegisterDeviceCommand{
		UserID:         userID,
		Name:           request.Name,
		Phone:          request.Phone,
		SubscriptionID: request.SubscriptionID,
	}

	device, err := h.devices.Register(ctx, cmd)
	if err != nil {
		h.logger.Error("Failed to register device", zap.Error(err), zap.String("name", request.Name))
		return err
	}

	h.logger.Info("Device registered",
		zap.Int64("userID", userID),
		zap.String("deviceID", device.DeviceID))

	return c.Status(fiber.StatusCreated).JSON(device)
}

func (h *Handler) ListDevices(c *fiber.Ctx) error {
	userID, err := userID(c)
	if err != nil {
		return validationFailed(c, "X-User-ID header is required")
	}

	devices, err := h.devices.List(userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"devices": devices})
}

func (h *Handler) DeviceQR(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := userID(c)
	if err != nil {
		return validationFailed(c, "X-User-ID header is required")
	}

	qr, err := h.devices.QRCode(ctx, userID, c.Params("deviceId"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(qr)
}

func (h *Handler) DeviceStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := userID(c)
	if err != nil {
		return validationFailed(c, "X-User-ID header is required")
	}

	status, err := h.devices.CheckStatus(ctx, userID, c.Params("deviceId"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(status)
}

func (h *Handler) DeleteDevice(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := userID(c)
	if err != nil {
		return validationFailed(c, "X-User-ID header is required")
	}

	if err := h.devices.Delete(ctx, userID, c.Params("deviceId")); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(DeleteDeviceResponse{Success: true})
}

func (h *Handler) ActivateSubscription(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := userID(c)
	if err != nil {
		return validationFailed(c, "X-User-ID header is required")
	}

	var request ActivateSubscriptionRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse body", zap.Error(err))
		return invalidBody(c)
	}

	if request.SubscriptionID == 0 {
		return validationFailed(c, "subscriptionId is required")
	}

	cmd := service.ActivateSubscriptionCommand{
		UserID:         userID,
		DeviceID:       c.Params("deviceId"),
		SubscriptionID: request.SubscriptionID,
	}

	device, err := h.devices.ActivateSubscription(ctx, cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(device)
}

func (h *Handler) recordBatch(kind string, result service.BatchResult) {
	for _, entry := range result.Results {
		status := "failure"
		if entry.Success {
			status = "success"
		}
		h.metrics.RecordMessageDispatched(kind, status)
	}

	if result.QuotaExhausted {
		h.metrics.RecordQuotaExhaustion()
	}
}

func userID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Get("X-User-ID"), 10, 64)
}

func validateBlast(deviceID, content, contentField string, recipientType service.RecipientType, recipientCount int) []string {
	var errs []string
	if deviceID == "" {
		errs = append(errs, "deviceId is required")
	}
	if content == "" {
		errs = append(errs, contentField+" is required")
	}
	if !recipientType.Valid() {
		errs = append(errs, "recipientType must be one of contact, group, broadcast")
	}
	if recipientCount == 0 {
		errs = append(errs, "at least one recipient is required")
	}
	return errs
}

func parseRecipientsForm(raw string) ([]RecipientPayload, error) {
	if raw == "" {
		return nil, nil
	}

	var recipients []RecipientPayload
	if err := json.Unmarshal([]byte(raw), &recipients); err != nil {
		return nil, err
	}

	return recipients, nil
}

func readMediaFile(c *fiber.Ctx) ([]byte, error) {
	header, err := c.FormFile("media")
	if err != nil {
		// missing file is a validation concern, not a parse failure
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"code":    constants.ErrCodeInvalidRequestBody,
		"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
	})
}

func validationFailed(c *fiber.Ctx, errs ...string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationErrorResponse{
		Code:    constants.ErrCodeValidationFailed,
		Message: constants.GetErrorMessage(constants.ErrCodeValidationFailed),
		Errors:  errs,
	})
}
