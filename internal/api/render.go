package api

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func parsePageTemplates(templateDir string, funcMap template.FuncMap, pages []string, partialFiles []string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		files := []string{
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page+".html"),
		}
		for _, partial := range partialFiles {
			files = append(files, filepath.Join(templateDir, partial))
		}

		parsed, err := template.New("base").Funcs(funcMap).ParseFiles(files...)
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}

func parsePartialTemplates(templateDir string, funcMap template.FuncMap, partialFiles []string) (map[string]*template.Template, error) {
	files := make([]string, 0, len(partialFiles))
	for _, partial := range partialFiles {
		files = append(files, filepath.Join(templateDir, partial))
	}

	partials := make(map[string]*template.Template, len(partialFiles))
	for _, partial := range partialFiles {
		name := strings.TrimSuffix(partial, ".html")
		parsed, err := template.New(name).Funcs(funcMap).ParseFiles(files...)
		if err != nil {
			return nil, fmt.Errorf("parse partial %s: %w", partial, err)
		}
		partials[name] = parsed
	}
	return partials, nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "records_api": handler.ServesRecords()})
}

func (handler *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	tmpl, ok := handler.templates[name]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}
	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", handler.withTemplateDefaults(c, data)); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render template")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

func (handler *Handler) renderPartial(c *fiber.Ctx, name string, data any) error {
	tmpl, ok := handler.partials[name]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("partial not found")
	}
	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, name, data); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render partial")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Messages"]; !ok {
		data["Messages"] = currentMessages(c)
	}
	if _, ok := data["Lang"]; !ok {
		language := currentLanguage(c)
		if language == "" {
			language = handler.i18n.DefaultLanguage()
		}
		data["Lang"] = language
	}
	if _, ok := data["Languages"]; !ok {
		data["Languages"] = handler.i18n.SupportedLanguages()
	}
	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"] = csrfToken(c)
	}
	return data
}
