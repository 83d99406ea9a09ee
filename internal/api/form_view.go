package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lctracker/internal/models"
	"github.com/terraincognita07/lctracker/internal/services"
)

type formView struct {
	Messages         map[string]string
	CSRFToken        string
	Draft            models.EntryPayload
	ShowStudyPlanner bool
	ShowFocusZone    bool
	Error            string
	Days             []string
	Periods          []int
	ClassOrStudy     []string
	StudyPlanner     []string
	Zones            []string
	FocusZones       []string
	Actions          []string
	Recent           *recentView
}

type recentView struct {
	Messages   map[string]string
	Items      []models.Entry
	TotalItems int
	Error      string
	OutOfBand  bool
}

func buildFormView(c *fiber.Ctx, draft models.EntryPayload, errorMessage string) formView {
	messages := currentMessages(c)
	return formView{
		Messages:         messages,
		CSRFToken:        csrfToken(c),
		Draft:            draft,
		ShowStudyPlanner: draft.ClassOrStudy == models.ClassOrStudyStudy,
		ShowFocusZone:    draft.Zone == models.ZoneFocus,
		Error:            localizedControllerMessage(messages, errorMessage),
		Days:             models.Days,
		Periods:          models.Periods,
		ClassOrStudy:     models.ClassOrStudy,
		StudyPlanner:     models.StudyPlanner,
		Zones:            models.Zones,
		FocusZones:       models.FocusZones,
		Actions:          models.Actions,
	}
}

func buildRecentView(c *fiber.Ctx, controller *services.FormController) *recentView {
	messages := currentMessages(c)
	return &recentView{
		Messages:   messages,
		Items:      controller.Recent(),
		TotalItems: controller.TotalItems(),
		Error:      localizedControllerMessage(messages, controller.ErrorMessage()),
	}
}

// localizedControllerMessage translates the controller's own fallback
// messages; remote messages are shown as received.
func localizedControllerMessage(messages map[string]string, message string) string {
	switch message {
	case services.SubmitFailedMessage:
		return translateMessage(messages, "error.submit_failed")
	case services.LoadFailedMessage:
		return translateMessage(messages, "error.load_failed")
	default:
		return message
	}
}
