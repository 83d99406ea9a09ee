package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lctracker/internal/services"
)

func (handler *Handler) ShowForm(c *fiber.Ctx) error {
	controller := handler.newController()
	_ = controller.Refresh(c.UserContext())
	return handler.render(c, "index", handler.pageData(c, controller))
}

// SubmitEntry records the posted draft. A failed create re-renders the
// posted values with the error and leaves the recent list alone.
func (handler *Handler) SubmitEntry(c *fiber.Ctx) error {
	controller := handler.newController()
	values, err := postedDraftValues(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid form input")
	}
	if err := controller.UpdateFields(values); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid form input")
	}

	entry, err := controller.Submit(c.UserContext())
	if err != nil {
		return handler.submitFailed(c, controller)
	}

	switch {
	case isHTMX(c):
		view := buildFormView(c, controller.Draft(), "")
		view.Recent = buildRecentView(c, controller)
		view.Recent.OutOfBand = true
		c.Set("HX-Trigger", "entry-saved")
		return handler.renderPartial(c, "form_partial", view)
	case acceptsJSON(c):
		return c.Status(fiber.StatusCreated).JSON(entry)
	default:
		return c.Redirect("/", fiber.StatusSeeOther)
	}
}

func (handler *Handler) submitFailed(c *fiber.Ctx, controller *services.FormController) error {
	message := controller.ErrorMessage()

	// htmx only swaps 2xx responses, so the error travels inside the form.
	if isHTMX(c) {
		return handler.renderPartial(c, "form_partial", buildFormView(c, controller.Draft(), message))
	}
	c.Status(fiber.StatusBadGateway)
	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"error": message})
	}

	// The full page still needs a list to show, so it is loaded separately
	// without replacing the submit error.
	listing := handler.newController()
	_ = listing.Refresh(c.UserContext())
	data := handler.pageData(c, listing)
	data["Form"] = buildFormView(c, controller.Draft(), message)
	return handler.render(c, "index", data)
}

// RenderDraftForm re-renders the form for the posted values so the study
// planner and focus area questions follow the current answers.
func (handler *Handler) RenderDraftForm(c *fiber.Ctx) error {
	controller := handler.newController()
	values, err := postedDraftValues(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid form input")
	}
	if err := controller.UpdateFields(values); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid form input")
	}
	return handler.renderPartial(c, "form_partial", buildFormView(c, controller.Draft(), ""))
}

func (handler *Handler) RecentEntries(c *fiber.Ctx) error {
	controller := handler.newController()
	if err := controller.Refresh(c.UserContext()); err != nil && acceptsJSON(c) && !isHTMX(c) {
		return apiError(c, fiber.StatusBadGateway, controller.ErrorMessage())
	}

	if acceptsJSON(c) && !isHTMX(c) {
		return c.JSON(fiber.Map{
			"items":      controller.Recent(),
			"totalItems": controller.TotalItems(),
		})
	}
	return handler.renderPartial(c, "recent_partial", buildRecentView(c, controller))
}

func (handler *Handler) pageData(c *fiber.Ctx, controller *services.FormController) fiber.Map {
	messages := currentMessages(c)
	form := buildFormView(c, controller.Draft(), "")
	recent := buildRecentView(c, controller)
	form.Error = recent.Error
	recent.Error = ""

	return fiber.Map{
		"Title":  translateMessage(messages, "meta.title"),
		"Form":   form,
		"Recent": recent,
	}
}

// postedDraftValues collects the draft fields present in the request body,
// form-encoded or JSON. Fields missing from the body keep their defaults.
func postedDraftValues(c *fiber.Ctx) (map[string]string, error) {
	values := make(map[string]string, len(services.DraftFields))

	if c.Is("json") {
		body := map[string]any{}
		if err := c.BodyParser(&body); err != nil {
			return nil, err
		}
		for _, key := range services.DraftFields {
			if raw, ok := body[key]; ok && raw != nil {
				values[key] = fmt.Sprint(raw)
			}
		}
		return values, nil
	}

	args := c.Request().PostArgs()
	for _, key := range services.DraftFields {
		if args.Has(key) {
			values[key] = string(args.Peek(key))
		}
	}
	return values, nil
}
