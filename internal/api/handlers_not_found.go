package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") {
		return recordsError(c, fiber.StatusNotFound, "The requested resource wasn't found.", nil)
	}

	messages := currentMessages(c)
	if acceptsJSON(c) || isHTMX(c) {
		return apiError(c, fiber.StatusNotFound, translateMessage(messages, "not_found.title"))
	}

	c.Status(fiber.StatusNotFound)
	return handler.render(c, "not_found", fiber.Map{
		"Title": translateMessage(messages, "meta.title.not_found"),
	})
}
