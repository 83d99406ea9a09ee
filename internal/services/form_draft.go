package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/terraincognita07/lctracker/internal/models"
)

var (
	ErrUnknownDraftField = errors.New("unknown draft field")
	ErrInvalidPeriod     = errors.New("invalid period")
)

// DraftFields lists the form keys in the order they are applied, so the
// class_or_study side effect lands before study_planner is read.
var DraftFields = []string{
	"day",
	"period",
	"student_name",
	"class_or_study",
	"study_planner",
	"zone",
	"focus_zone",
	"action",
	"notes",
}

func DefaultDraft() models.EntryPayload {
	return models.EntryPayload{
		Day:          "Monday",
		Period:       4,
		StudentName:  "",
		ClassOrStudy: models.ClassOrStudyStudy,
		StudyPlanner: models.StudyPlannerYes,
		Zone:         models.ZoneFocus,
		FocusZone:    "F1",
		Action:       "Self-Directed",
		Notes:        "",
	}
}

// applyDraftField assigns one form value to the draft. Selecting "Class"
// clears the study planner answer.
func applyDraftField(draft *models.EntryPayload, key string, value string) error {
	switch key {
	case "day":
		draft.Day = value
	case "period":
		period, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidPeriod, value)
		}
		draft.Period = period
	case "student_name":
		draft.StudentName = value
	case "class_or_study":
		draft.ClassOrStudy = value
		if value == models.ClassOrStudyClass {
			draft.StudyPlanner = ""
		}
	case "study_planner":
		draft.StudyPlanner = value
	case "zone":
		draft.Zone = value
	case "focus_zone":
		draft.FocusZone = value
	case "action":
		draft.Action = value
	case "notes":
		draft.Notes = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDraftField, key)
	}
	return nil
}

// NormalizePayload builds the outgoing payload: the planner answer only
// counts for Study and the focus area only for the Focus zone.
func NormalizePayload(draft models.EntryPayload) models.EntryPayload {
	payload := draft
	if payload.ClassOrStudy != models.ClassOrStudyStudy {
		payload.StudyPlanner = models.StudyPlannerNotApplicable
	}
	if payload.Zone != models.ZoneFocus {
		payload.FocusZone = ""
	}
	return payload
}
