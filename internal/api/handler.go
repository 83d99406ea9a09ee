package api

import (
	"errors"
	"html/template"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/lctracker/internal/db"
	"github.com/terraincognita07/lctracker/internal/i18n"
	"github.com/terraincognita07/lctracker/internal/models"
	"github.com/terraincognita07/lctracker/internal/records"
	"github.com/terraincognita07/lctracker/internal/services"
)

type Handler struct {
	client       records.DataClient
	storeClient  *records.StoreClient
	collection   string
	recentLimit  int
	cookieSecure bool
	i18n         *i18n.Manager
	templates    map[string]*template.Template
	partials     map[string]*template.Template
	validate     *validator.Validate
}

type HandlerConfig struct {
	Client       records.DataClient
	Store        *db.CollectionStore
	Collection   string
	RecentLimit  int
	TemplatesDir string
	I18n         *i18n.Manager
	CookieSecure bool
}

var (
	pageTemplates    = []string{"index", "not_found"}
	partialTemplates = []string{"form_partial.html", "recent_partial.html"}
)

func NewHandler(config HandlerConfig) (*Handler, error) {
	if config.Client == nil {
		return nil, errors.New("data client is required")
	}
	if config.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}

	funcMap := newTemplateFuncMap()
	templates, err := parsePageTemplates(config.TemplatesDir, funcMap, pageTemplates, partialTemplates)
	if err != nil {
		return nil, err
	}
	partials, err := parsePartialTemplates(config.TemplatesDir, funcMap, partialTemplates)
	if err != nil {
		return nil, err
	}

	collection := strings.TrimSpace(config.Collection)
	if collection == "" {
		collection = models.EntryCollection
	}
	recentLimit := config.RecentLimit
	if recentLimit < 1 {
		recentLimit = services.DefaultRecentLimit
	}

	handler := &Handler{
		client:       config.Client,
		collection:   collection,
		recentLimit:  recentLimit,
		cookieSecure: config.CookieSecure,
		i18n:         config.I18n,
		templates:    templates,
		partials:     partials,
		validate:     models.NewPayloadValidator(),
	}
	if config.Store != nil {
		handler.storeClient = records.NewStoreClient(config.Store)
	}
	return handler, nil
}

// ServesRecords reports whether this process hosts the records API.
func (handler *Handler) ServesRecords() bool {
	return handler.storeClient != nil
}

func (handler *Handler) newController() *services.FormController {
	return services.NewFormController(handler.client, handler.collection, handler.recentLimit)
}
