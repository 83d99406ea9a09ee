package models

const EntryCollection = "lc_tracker"

const (
	ClassOrStudyClass = "Class"
	ClassOrStudyStudy = "Study"

	StudyPlannerYes           = "Yes"
	StudyPlannerNo            = "No"
	StudyPlannerNotApplicable = "N/A"

	ZoneFocus = "Focus"
)

var (
	Days         = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	Periods      = []int{4, 5, 6, 7, 8}
	ClassOrStudy = []string{ClassOrStudyClass, ClassOrStudyStudy}
	StudyPlanner = []string{StudyPlannerYes, StudyPlannerNo}
	Zones        = []string{"Enrichment", "Semi-Collaborative", "Collaborative", "Studio 2", "Multipurpose Room", ZoneFocus, "Other"}
	FocusZones   = []string{"F1", "F2", "B1", "B2", "B3", "B4", "C1", "C2", "C3", "Tall", "Round"}
	Actions      = []string{"Self-Directed", "Coached", "Redirected", "Conduct 1", "Conduct 2", "Conduct 3"}
)

// EntryPayload is the body sent to the collection store when recording an
// observation. Field order and JSON keys follow the lc_tracker collection schema.
type EntryPayload struct {
	Day          string `json:"day" form:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday"`
	Period       int    `json:"period" form:"period" validate:"oneof=4 5 6 7 8"`
	StudentName  string `json:"student_name" form:"student_name" validate:"required,max=200"`
	ClassOrStudy string `json:"class_or_study" form:"class_or_study" validate:"required,oneof=Class Study"`
	StudyPlanner string `json:"study_planner" form:"study_planner" validate:"omitempty,oneof=Yes No N/A"`
	Zone         string `json:"zone" form:"zone" validate:"required,oneof=Enrichment Semi-Collaborative Collaborative 'Studio 2' 'Multipurpose Room' Focus Other"`
	FocusZone    string `json:"focus_zone" form:"focus_zone" validate:"omitempty,oneof=F1 F2 B1 B2 B3 B4 C1 C2 C3 Tall Round"`
	Action       string `json:"action" form:"action" validate:"required,oneof=Self-Directed Coached Redirected 'Conduct 1' 'Conduct 2' 'Conduct 3'"`
	Notes        string `json:"notes" form:"notes" validate:"max=5000"`
}

// Entry is one stored observation. ID, Created and Updated are assigned by the
// store and never written by the form.
type Entry struct {
	ID             string   `json:"id" gorm:"primaryKey;size:15"`
	CollectionName string   `json:"collectionName" gorm:"-"`
	Created        DateTime `json:"created" gorm:"column:created;not null;index"`
	Updated        DateTime `json:"updated" gorm:"column:updated;not null"`
	Day            string   `json:"day" gorm:"not null"`
	Period         int      `json:"period" gorm:"not null"`
	StudentName    string   `json:"student_name" gorm:"column:student_name;not null"`
	ClassOrStudy   string   `json:"class_or_study" gorm:"column:class_or_study;not null"`
	StudyPlanner   string   `json:"study_planner" gorm:"column:study_planner;not null;default:''"`
	Zone           string   `json:"zone" gorm:"not null"`
	FocusZone      string   `json:"focus_zone" gorm:"column:focus_zone;not null;default:''"`
	Action         string   `json:"action" gorm:"not null"`
	Notes          string   `json:"notes" gorm:"not null;default:''"`
}

func (Entry) TableName() string {
	return "lc_tracker_records"
}

func (entry Entry) Payload() EntryPayload {
	return EntryPayload{
		Day:          entry.Day,
		Period:       entry.Period,
		StudentName:  entry.StudentName,
		ClassOrStudy: entry.ClassOrStudy,
		StudyPlanner: entry.StudyPlanner,
		Zone:         entry.Zone,
		FocusZone:    entry.FocusZone,
		Action:       entry.Action,
		Notes:        entry.Notes,
	}
}

func (entry Entry) IsStudy() bool {
	return entry.ClassOrStudy == ClassOrStudyStudy
}

func (entry Entry) IsFocus() bool {
	return entry.Zone == ZoneFocus
}
