package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerRecordRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/", handler.ShowForm)
	app.Post("/form", handler.RenderDraftForm)
	app.Get("/entries", handler.RecentEntries)
	app.Post("/entries", handler.SubmitEntry)
}

// registerRecordRoutes exposes the collection records API when this process
// hosts the store itself.
func registerRecordRoutes(app *fiber.App, handler *Handler) {
	if !handler.ServesRecords() {
		return
	}

	collections := app.Group("/api/collections/:collection")
	collections.Get("/records", handler.ListRecords)
	collections.Post("/records", handler.CreateRecord)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
