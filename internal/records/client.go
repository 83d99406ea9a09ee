package records

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/terraincognita07/lctracker/internal/db"
	"github.com/terraincognita07/lctracker/internal/models"
)

// DataClient is the collection API the form talks to. Both implementations
// return the same result shape so callers never know which one is active.
type DataClient interface {
	Create(ctx context.Context, collection string, payload models.EntryPayload) (models.Entry, error)
	GetList(ctx context.Context, collection string, page int, perPage int, options ListOptions) (ListResult, error)
}

type ListOptions struct {
	Sort string
}

type ListResult struct {
	Page       int            `json:"page"`
	PerPage    int            `json:"perPage"`
	TotalItems int            `json:"totalItems"`
	TotalPages int            `json:"totalPages"`
	Items      []models.Entry `json:"items"`
}

type Options struct {
	BaseURL string
	Store   *db.CollectionStore
	Timeout time.Duration
}

// NewDataClient picks the implementation once at startup: the in-process
// collection store when one was opened, the REST client otherwise.
func NewDataClient(options Options) DataClient {
	if options.Store != nil {
		return NewStoreClient(options.Store)
	}

	log.Printf("collection store not configured, falling back to REST client for %s", strings.TrimRight(options.BaseURL, "/"))
	return NewRESTClient(options.BaseURL, options.Timeout)
}
