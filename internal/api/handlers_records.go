package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lctracker/internal/models"
	"github.com/terraincognita07/lctracker/internal/records"
)

const (
	invalidBodyMessage    = "Failed to load the submitted data due to invalid formatting."
	createRecordMessage   = "Failed to create record."
	recordServiceFallback = "Something went wrong while processing your request."
)

func (handler *Handler) CreateRecord(c *fiber.Ctx) error {
	payload := models.EntryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return recordsError(c, fiber.StatusBadRequest, invalidBodyMessage, nil)
	}
	if err := handler.validate.Struct(payload); err != nil {
		return recordsError(c, fiber.StatusBadRequest, createRecordMessage, validationErrorData(err))
	}

	entry, err := handler.storeClient.Create(c.UserContext(), c.Params("collection"), payload)
	if err != nil {
		return recordsRequestError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) ListRecords(c *fiber.Ctx) error {
	options := records.ListOptions{Sort: c.Query("sort")}
	result, err := handler.storeClient.GetList(
		c.UserContext(),
		c.Params("collection"),
		c.QueryInt("page", 1),
		c.QueryInt("perPage", 0),
		options,
	)
	if err != nil {
		return recordsRequestError(c, err)
	}
	return c.JSON(result)
}

// recordsError writes the error document shape other collection clients
// expect: {code, message, data}.
func recordsError(c *fiber.Ctx, status int, message string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	return c.Status(status).JSON(records.ErrorDocument{
		Code:    status,
		Message: message,
		Data:    data,
	})
}

func recordsRequestError(c *fiber.Ctx, err error) error {
	var requestErr *records.RequestError
	if errors.As(err, &requestErr) && requestErr.Status != 0 {
		return recordsError(c, requestErr.Status, requestErr.Error(), nil)
	}
	return recordsError(c, fiber.StatusBadRequest, recordServiceFallback, nil)
}

func validationErrorData(err error) map[string]any {
	data := map[string]any{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return data
	}
	for _, fieldErr := range validationErrors {
		code := "validation_invalid_value"
		message := "Invalid value."
		if fieldErr.Tag() == "required" {
			code = "validation_required"
			message = "Missing required value."
		}
		data[fieldErr.Field()] = fiber.Map{"code": code, "message": message}
	}
	return data
}
