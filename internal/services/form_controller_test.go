package services

import (
	"context"
	"errors"
	"testing"

	"github.com/terraincognita07/lctracker/internal/models"
	"github.com/terraincognita07/lctracker/internal/records"
)

type stubDataClient struct {
	created     []models.EntryPayload
	createErr   error
	listResult  records.ListResult
	listErr     error
	listCalls   int
	lastPerPage int
	lastSort    string
}

func (stub *stubDataClient) Create(_ context.Context, _ string, payload models.EntryPayload) (models.Entry, error) {
	if stub.createErr != nil {
		return models.Entry{}, stub.createErr
	}
	stub.created = append(stub.created, payload)
	entry := models.Entry{
		ID:           "abc123def456ghi",
		Day:          payload.Day,
		Period:       payload.Period,
		StudentName:  payload.StudentName,
		ClassOrStudy: payload.ClassOrStudy,
		StudyPlanner: payload.StudyPlanner,
		Zone:         payload.Zone,
		FocusZone:    payload.FocusZone,
		Action:       payload.Action,
		Notes:        payload.Notes,
	}
	stub.listResult.Items = append([]models.Entry{entry}, stub.listResult.Items...)
	stub.listResult.TotalItems++
	return entry, nil
}

func (stub *stubDataClient) GetList(_ context.Context, _ string, _ int, perPage int, options records.ListOptions) (records.ListResult, error) {
	stub.listCalls++
	stub.lastPerPage = perPage
	stub.lastSort = options.Sort
	if stub.listErr != nil {
		return records.ListResult{}, stub.listErr
	}
	return stub.listResult, nil
}

func mustUpdate(t *testing.T, controller *FormController, key string, value string) {
	t.Helper()
	if err := controller.Update(key, value); err != nil {
		t.Fatalf("Update(%q, %q) unexpected error: %v", key, value, err)
	}
}

func TestNewFormControllerStartsWithDefaults(t *testing.T) {
	controller := NewFormController(&stubDataClient{}, "", 0)

	if controller.Draft() != DefaultDraft() {
		t.Fatalf("expected default draft, got %#v", controller.Draft())
	}
	if controller.collection != models.EntryCollection || controller.recentLimit != DefaultRecentLimit {
		t.Fatalf("expected default collection and limit, got %q/%d", controller.collection, controller.recentLimit)
	}
}

func TestUpdateClassClearsStudyPlanner(t *testing.T) {
	controller := NewFormController(&stubDataClient{}, models.EntryCollection, 20)

	mustUpdate(t, controller, "study_planner", "No")
	mustUpdate(t, controller, "class_or_study", "Class")

	if got := controller.Draft().StudyPlanner; got != "" {
		t.Fatalf("expected study planner cleared, got %q", got)
	}
}

func TestUpdateRejectsUnknownFieldAndBadPeriod(t *testing.T) {
	controller := NewFormController(&stubDataClient{}, models.EntryCollection, 20)

	if err := controller.Update("password", "x"); !errors.Is(err, ErrUnknownDraftField) {
		t.Fatalf("expected ErrUnknownDraftField, got %v", err)
	}
	if err := controller.Update("period", "six"); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
	if controller.Draft().Period != 4 {
		t.Fatalf("expected period untouched, got %d", controller.Draft().Period)
	}
}

func TestPayloadForcesNotApplicablePlannerForClass(t *testing.T) {
	for _, planner := range []string{"Yes", "No", "", "N/A"} {
		for _, zone := range models.Zones {
			controller := NewFormController(&stubDataClient{}, models.EntryCollection, 20)
			mustUpdate(t, controller, "zone", zone)
			mustUpdate(t, controller, "class_or_study", "Class")
			mustUpdate(t, controller, "study_planner", planner)

			if got := controller.Payload().StudyPlanner; got != models.StudyPlannerNotApplicable {
				t.Fatalf("planner %q zone %q: expected N/A, got %q", planner, zone, got)
			}
		}
	}
}

func TestPayloadClearsFocusZoneOutsideFocus(t *testing.T) {
	for _, zone := range models.Zones {
		for _, focusZone := range models.FocusZones {
			controller := NewFormController(&stubDataClient{}, models.EntryCollection, 20)
			mustUpdate(t, controller, "focus_zone", focusZone)
			mustUpdate(t, controller, "zone", zone)

			got := controller.Payload().FocusZone
			if zone == models.ZoneFocus && got != focusZone {
				t.Fatalf("zone Focus: expected focus zone %q retained, got %q", focusZone, got)
			}
			if zone != models.ZoneFocus && got != "" {
				t.Fatalf("zone %q: expected empty focus zone, got %q", zone, got)
			}
		}
	}
}

func TestSubmitStudyScenarioPayload(t *testing.T) {
	client := &stubDataClient{}
	controller := NewFormController(client, models.EntryCollection, 20)

	err := controller.UpdateFields(map[string]string{
		"day":            "Tuesday",
		"period":         "6",
		"student_name":   "Alex",
		"class_or_study": "Study",
		"study_planner":  "No",
		"zone":           "Studio 2",
		"action":         "Coached",
		"notes":          "",
	})
	if err != nil {
		t.Fatalf("UpdateFields() unexpected error: %v", err)
	}

	if _, err := controller.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	want := models.EntryPayload{
		Day:          "Tuesday",
		Period:       6,
		StudentName:  "Alex",
		ClassOrStudy: "Study",
		StudyPlanner: "No",
		Zone:         "Studio 2",
		FocusZone:    "",
		Action:       "Coached",
		Notes:        "",
	}
	if len(client.created) != 1 || client.created[0] != want {
		t.Fatalf("unexpected payload sent: %#v", client.created)
	}
}

func TestSubmitRetainsFocusZoneForFocus(t *testing.T) {
	client := &stubDataClient{}
	controller := NewFormController(client, models.EntryCollection, 20)
	mustUpdate(t, controller, "student_name", "Sam")
	mustUpdate(t, controller, "zone", "Focus")
	mustUpdate(t, controller, "focus_zone", "B2")

	if _, err := controller.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if client.created[0].FocusZone != "B2" {
		t.Fatalf("expected focus zone B2, got %q", client.created[0].FocusZone)
	}
}

func TestSubmitSuccessResetsDraftAndRefreshes(t *testing.T) {
	client := &stubDataClient{}
	controller := NewFormController(client, models.EntryCollection, 20)
	mustUpdate(t, controller, "student_name", "Alex")
	mustUpdate(t, controller, "notes", "arrived late")

	entry, err := controller.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	if controller.Draft() != DefaultDraft() {
		t.Fatalf("expected draft reset to defaults, got %#v", controller.Draft())
	}
	if client.listCalls != 1 || client.lastPerPage != 20 || client.lastSort != "-created" {
		t.Fatalf("expected one refresh of 20 sorted by -created, got calls=%d perPage=%d sort=%q", client.listCalls, client.lastPerPage, client.lastSort)
	}
	recent := controller.Recent()
	if len(recent) != 1 || recent[0].ID != entry.ID {
		t.Fatalf("expected new entry in recent list, got %#v", recent)
	}
	if controller.TotalItems() != 1 {
		t.Fatalf("expected total 1, got %d", controller.TotalItems())
	}
	if controller.ErrorMessage() != "" || controller.Submitting() {
		t.Fatalf("expected clean state, got message=%q submitting=%v", controller.ErrorMessage(), controller.Submitting())
	}
}

func TestSubmitFailureKeepsDraftAndSkipsRefresh(t *testing.T) {
	client := &stubDataClient{createErr: &records.RequestError{Op: records.OpCreate, Status: 400}}
	controller := NewFormController(client, models.EntryCollection, 20)
	mustUpdate(t, controller, "student_name", "Alex")
	mustUpdate(t, controller, "zone", "Other")
	before := controller.Draft()

	_, err := controller.Submit(context.Background())
	if !errors.Is(err, ErrCreateFailed) {
		t.Fatalf("expected ErrCreateFailed, got %v", err)
	}
	var requestErr *records.RequestError
	if !errors.As(err, &requestErr) {
		t.Fatalf("expected wrapped RequestError, got %v", err)
	}

	if controller.Draft() != before {
		t.Fatalf("expected draft untouched, got %#v", controller.Draft())
	}
	if client.listCalls != 0 {
		t.Fatalf("expected no refresh after failure, got %d calls", client.listCalls)
	}
	if got := controller.ErrorMessage(); got != "Create failed 400" {
		t.Fatalf("expected status message, got %q", got)
	}
	if controller.Submitting() {
		t.Fatal("expected submitting flag cleared")
	}
}

func TestSubmitFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "remote message", err: &records.RequestError{Op: records.OpCreate, Status: 400, Message: "Failed to create record."}, want: "Failed to create record."},
		{name: "network failure", err: &records.RequestError{Op: records.OpCreate, Err: errors.New("connection refused")}, want: SubmitFailedMessage},
		{name: "plain error", err: errors.New("boom"), want: "boom"},
	}

	for _, test := range tests {
		controller := NewFormController(&stubDataClient{createErr: test.err}, models.EntryCollection, 20)
		_, _ = controller.Submit(context.Background())
		if got := controller.ErrorMessage(); got != test.want {
			t.Fatalf("%s: expected %q, got %q", test.name, test.want, got)
		}
	}
}

func TestRefreshFailureSetsMessage(t *testing.T) {
	client := &stubDataClient{listErr: &records.RequestError{Op: records.OpList, Status: 500}}
	controller := NewFormController(client, models.EntryCollection, 20)

	if err := controller.Refresh(context.Background()); !errors.Is(err, ErrListFailed) {
		t.Fatalf("expected ErrListFailed, got %v", err)
	}
	if controller.ErrorMessage() != LoadFailedMessage {
		t.Fatalf("expected load failure message, got %q", controller.ErrorMessage())
	}
}

func TestRefreshReplacesRecentList(t *testing.T) {
	client := &stubDataClient{listResult: records.ListResult{
		TotalItems: 2,
		Items:      []models.Entry{{ID: "b"}, {ID: "a"}},
	}}
	controller := NewFormController(client, models.EntryCollection, 20)

	if err := controller.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}
	client.listResult = records.ListResult{}
	if err := controller.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}

	if recent := controller.Recent(); len(recent) != 0 {
		t.Fatalf("expected list replaced by empty result, got %#v", recent)
	}
	if controller.TotalItems() != 0 {
		t.Fatalf("expected total 0, got %d", controller.TotalItems())
	}
}

type blockingDataClient struct {
	stubDataClient
	started chan struct{}
	release chan struct{}
}

func (client *blockingDataClient) Create(ctx context.Context, collection string, payload models.EntryPayload) (models.Entry, error) {
	close(client.started)
	<-client.release
	return client.stubDataClient.Create(ctx, collection, payload)
}

func TestSubmitRejectsSecondSubmitWhileInFlight(t *testing.T) {
	client := &blockingDataClient{started: make(chan struct{}), release: make(chan struct{})}
	controller := NewFormController(client, models.EntryCollection, DefaultRecentLimit)
	mustUpdate(t, controller, "student_name", "Alex")

	done := make(chan error, 1)
	go func() {
		_, err := controller.Submit(context.Background())
		done <- err
	}()

	<-client.started
	if !controller.Submitting() {
		t.Fatal("expected controller to report an in-flight submit")
	}
	if _, err := controller.Submit(context.Background()); !errors.Is(err, ErrSubmitInProgress) {
		t.Fatalf("expected ErrSubmitInProgress, got %v", err)
	}

	close(client.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit unexpected error: %v", err)
	}
	if len(client.created) != 1 {
		t.Fatalf("expected exactly one create, got %d", len(client.created))
	}
}
