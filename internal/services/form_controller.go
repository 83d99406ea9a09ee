package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/terraincognita07/lctracker/internal/models"
	"github.com/terraincognita07/lctracker/internal/records"
)

var (
	ErrCreateFailed     = errors.New("create entry failed")
	ErrListFailed       = errors.New("list entries failed")
	ErrSubmitInProgress = errors.New("submit already in progress")
)

const (
	DefaultRecentLimit = 20
	RecentSort         = "-created"

	SubmitFailedMessage = "Submit failed"
	LoadFailedMessage   = "Failed to load recent entries."
)

// FormController owns one draft entry and the recent-entries list shown
// next to it.
type FormController struct {
	mu          sync.Mutex
	client      records.DataClient
	collection  string
	recentLimit int

	draft        models.EntryPayload
	recent       []models.Entry
	totalItems   int
	errorMessage string
	submitting   bool
}

func NewFormController(client records.DataClient, collection string, recentLimit int) *FormController {
	if strings.TrimSpace(collection) == "" {
		collection = models.EntryCollection
	}
	if recentLimit < 1 {
		recentLimit = DefaultRecentLimit
	}
	return &FormController{
		client:      client,
		collection:  collection,
		recentLimit: recentLimit,
		draft:       DefaultDraft(),
		recent:      []models.Entry{},
	}
}

func (controller *FormController) Draft() models.EntryPayload {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.draft
}

func (controller *FormController) Update(key string, value string) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return applyDraftField(&controller.draft, key, value)
}

// UpdateFields applies every known key present in values, in DraftFields order.
func (controller *FormController) UpdateFields(values map[string]string) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	for _, key := range DraftFields {
		value, ok := values[key]
		if !ok {
			continue
		}
		if err := applyDraftField(&controller.draft, key, value); err != nil {
			return err
		}
	}
	return nil
}

func (controller *FormController) Payload() models.EntryPayload {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return NormalizePayload(controller.draft)
}

// Submit sends the normalized draft to the collection. On failure the draft
// is kept and a single message is recorded; on success the draft resets and
// the recent list is reloaded.
func (controller *FormController) Submit(ctx context.Context) (models.Entry, error) {
	controller.mu.Lock()
	if controller.submitting {
		controller.mu.Unlock()
		return models.Entry{}, ErrSubmitInProgress
	}
	controller.submitting = true
	controller.errorMessage = ""
	payload := NormalizePayload(controller.draft)
	controller.mu.Unlock()

	entry, err := controller.client.Create(ctx, controller.collection, payload)

	controller.mu.Lock()
	controller.submitting = false
	if err != nil {
		controller.errorMessage = submitErrorMessage(err)
		controller.mu.Unlock()
		log.Printf("lc tracker submit failed: %v", err)
		return models.Entry{}, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}
	controller.draft = DefaultDraft()
	controller.mu.Unlock()

	_ = controller.Refresh(ctx)
	return entry, nil
}

// Refresh replaces the recent list with the newest entries.
func (controller *FormController) Refresh(ctx context.Context) error {
	result, err := controller.client.GetList(ctx, controller.collection, 1, controller.recentLimit, records.ListOptions{Sort: RecentSort})
	if err != nil {
		log.Printf("lc tracker refresh failed: %v", err)
		controller.mu.Lock()
		controller.errorMessage = LoadFailedMessage
		controller.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrListFailed, err)
	}

	items := result.Items
	if items == nil {
		items = []models.Entry{}
	}

	controller.mu.Lock()
	controller.recent = items
	controller.totalItems = result.TotalItems
	controller.mu.Unlock()
	return nil
}

func (controller *FormController) Recent() []models.Entry {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	recent := make([]models.Entry, len(controller.recent))
	copy(recent, controller.recent)
	return recent
}

func (controller *FormController) TotalItems() int {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.totalItems
}

func (controller *FormController) ErrorMessage() string {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.errorMessage
}

func (controller *FormController) Submitting() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.submitting
}

func submitErrorMessage(err error) string {
	var requestErr *records.RequestError
	if errors.As(err, &requestErr) && requestErr.Status == 0 {
		return SubmitFailedMessage
	}
	if message := strings.TrimSpace(err.Error()); message != "" {
		return message
	}
	return SubmitFailedMessage
}
