package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/lctracker/internal/models"
	"github.com/terraincognita07/lctracker/internal/security"
	"gorm.io/gorm"
)

var (
	ErrUnknownCollection  = errors.New("unknown collection")
	ErrInvalidRecord      = errors.New("invalid record")
	ErrInvalidSort        = errors.New("invalid sort expression")
	ErrCreateRecordFailed = errors.New("create record failed")
	ErrListRecordsFailed  = errors.New("list records failed")
)

const (
	DefaultPerPage = 30
	MaxPerPage     = 500
)

// CollectionStore is the in-process collection service. It owns the
// registered collections and hands out per-collection APIs.
type CollectionStore struct {
	collections map[string]*RecordCollection
}

type RecordCollection struct {
	name     string
	database *gorm.DB
	validate *validator.Validate
	now      func() time.Time
	newID    func() (string, error)
}

type RecordPage struct {
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
	Items      []models.Entry
}

func NewCollectionStore(database *gorm.DB) *CollectionStore {
	entries := &RecordCollection{
		name:     models.EntryCollection,
		database: database,
		validate: models.NewPayloadValidator(),
		now:      time.Now,
		newID:    security.RecordID,
	}
	return &CollectionStore{
		collections: map[string]*RecordCollection{entries.name: entries},
	}
}

func (store *CollectionStore) Collection(name string) (*RecordCollection, error) {
	collection, ok := store.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return collection, nil
}

// Create stores payload as a new record. Payloads that break the collection
// schema are rejected with ErrInvalidRecord.
func (collection *RecordCollection) Create(ctx context.Context, payload models.EntryPayload) (models.Entry, error) {
	if err := collection.validate.Struct(payload); err != nil {
		return models.Entry{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	id, err := collection.newID()
	if err != nil {
		return models.Entry{}, fmt.Errorf("%w: generate id: %v", ErrCreateRecordFailed, err)
	}

	now := models.NewDateTime(collection.now())
	entry := models.Entry{
		ID:           id,
		Created:      now,
		Updated:      now,
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
	if err := collection.database.WithContext(ctx).Create(&entry).Error; err != nil {
		return models.Entry{}, fmt.Errorf("%w: %v", ErrCreateRecordFailed, err)
	}

	entry.CollectionName = collection.name
	return entry, nil
}

func (collection *RecordCollection) GetList(ctx context.Context, page int, perPage int, sort string) (RecordPage, error) {
	page, perPage = normalizePaging(page, perPage)

	orderBy, err := parseRecordSort(sort)
	if err != nil {
		return RecordPage{}, err
	}

	var total int64
	if err := collection.database.WithContext(ctx).Model(&models.Entry{}).Count(&total).Error; err != nil {
		return RecordPage{}, fmt.Errorf("%w: count: %v", ErrListRecordsFailed, err)
	}

	items := make([]models.Entry, 0, perPage)
	query := collection.database.WithContext(ctx).Model(&models.Entry{})
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if err := query.Limit(perPage).Offset((page - 1) * perPage).Find(&items).Error; err != nil {
		return RecordPage{}, fmt.Errorf("%w: %v", ErrListRecordsFailed, err)
	}
	for index := range items {
		items[index].CollectionName = collection.name
	}

	totalItems := int(total)
	return RecordPage{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: (totalItems + perPage - 1) / perPage,
		Items:      items,
	}, nil
}

func normalizePaging(page int, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}
