package api

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/terraincognita07/lctracker/internal/models"
)

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t":            translateMessage,
		"entrySummary": entrySummary,
		"formatDate":   formatEntryDate,
	}
}

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

// entrySummary renders one line of the recent list. The planner answer is
// shown for Study entries only and the focus area for the Focus zone only.
func entrySummary(messages map[string]string, entry models.Entry) string {
	var line strings.Builder
	fmt.Fprintf(&line, "[%s P%d] %s — %s", entry.Day, entry.Period, entry.StudentName, entry.ClassOrStudy)
	if entry.IsStudy() {
		fmt.Fprintf(&line, " (%s: %s)", translateMessage(messages, "recent.planner"), entry.StudyPlanner)
	}
	fmt.Fprintf(&line, " — %s: %s", translateMessage(messages, "recent.zone"), entry.Zone)
	if entry.IsFocus() {
		fmt.Fprintf(&line, "/%s", entry.FocusZone)
	}
	fmt.Fprintf(&line, " — %s: %s", translateMessage(messages, "recent.action"), entry.Action)
	if notes := strings.TrimSpace(entry.Notes); notes != "" {
		fmt.Fprintf(&line, " — %s", notes)
	}
	return line.String()
}

func formatEntryDate(value models.DateTime) string {
	if value.IsZero() {
		return ""
	}
	return value.Local().Format("Mon 02 Jan 15:04")
}
