package records

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lctracker/internal/db"
	"github.com/terraincognita07/lctracker/internal/models"
)

const (
	notFoundMessage     = "The requested resource wasn't found."
	createFailedMessage = "Failed to create record."
	listFailedMessage   = "Something went wrong while processing your request."
	invalidSortMessage  = "Invalid sort expression."
)

// StoreClient delegates to the in-process collection store's own API.
type StoreClient struct {
	store *db.CollectionStore
}

func NewStoreClient(store *db.CollectionStore) *StoreClient {
	return &StoreClient{store: store}
}

func (client *StoreClient) Create(ctx context.Context, collection string, payload models.EntryPayload) (models.Entry, error) {
	records, err := client.store.Collection(collection)
	if err != nil {
		return models.Entry{}, storeError(OpCreate, err)
	}

	entry, err := records.Create(ctx, payload)
	if err != nil {
		return models.Entry{}, storeError(OpCreate, err)
	}
	return entry, nil
}

func (client *StoreClient) GetList(ctx context.Context, collection string, page int, perPage int, options ListOptions) (ListResult, error) {
	records, err := client.store.Collection(collection)
	if err != nil {
		return ListResult{}, storeError(OpList, err)
	}

	recordPage, err := records.GetList(ctx, page, perPage, options.Sort)
	if err != nil {
		return ListResult{}, storeError(OpList, err)
	}
	return ListResult{
		Page:       recordPage.Page,
		PerPage:    recordPage.PerPage,
		TotalItems: recordPage.TotalItems,
		TotalPages: recordPage.TotalPages,
		Items:      recordPage.Items,
	}, nil
}

// storeError maps store failures onto the statuses the REST surface of the
// same store would answer with.
func storeError(op string, err error) *RequestError {
	switch {
	case errors.Is(err, db.ErrUnknownCollection):
		return &RequestError{Op: op, Status: fiber.StatusNotFound, Message: notFoundMessage, Err: err}
	case errors.Is(err, db.ErrInvalidSort):
		return &RequestError{Op: op, Status: fiber.StatusBadRequest, Message: invalidSortMessage, Err: err}
	case op == OpCreate:
		return &RequestError{Op: op, Status: fiber.StatusBadRequest, Message: createFailedMessage, Err: err}
	default:
		return &RequestError{Op: op, Status: fiber.StatusBadRequest, Message: listFailedMessage, Err: err}
	}
}
