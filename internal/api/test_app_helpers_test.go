package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lctracker/internal/db"
	"github.com/terraincognita07/lctracker/internal/i18n"
	"github.com/terraincognita07/lctracker/internal/models"
	"github.com/terraincognita07/lctracker/internal/records"
)

type stubDataClient struct {
	mu        sync.Mutex
	created   []models.EntryPayload
	items     []models.Entry
	createErr error
	listErr   error
}

func (client *stubDataClient) Create(_ context.Context, collection string, payload models.EntryPayload) (models.Entry, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	client.created = append(client.created, payload)
	if client.createErr != nil {
		return models.Entry{}, client.createErr
	}
	entry := entryFromPayload(payload)
	entry.ID = "stubrecord00001"
	entry.CollectionName = collection
	client.items = append([]models.Entry{entry}, client.items...)
	return entry, nil
}

func (client *stubDataClient) GetList(_ context.Context, _ string, page int, perPage int, _ records.ListOptions) (records.ListResult, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.listErr != nil {
		return records.ListResult{}, client.listErr
	}
	items := make([]models.Entry, len(client.items))
	copy(items, client.items)
	return records.ListResult{
		Page:       page,
		PerPage:    perPage,
		TotalItems: len(items),
		TotalPages: 1,
		Items:      items,
	}, nil
}

func entryFromPayload(payload models.EntryPayload) models.Entry {
	return models.Entry{
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
}

func testResourceDirs(t *testing.T) (string, string) {
	t.Helper()

	_, testFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve current test file path")
	}
	internalDir := filepath.Dir(filepath.Dir(testFile))
	return filepath.Join(internalDir, "templates"), filepath.Join(internalDir, "i18n", "locales")
}

func newTestApp(t *testing.T, client records.DataClient, store *db.CollectionStore) *fiber.App {
	t.Helper()

	templatesDir, localesDir := testResourceDirs(t)
	i18nManager, err := i18n.NewManager("en", localesDir)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(HandlerConfig{
		Client:       client,
		Store:        store,
		Collection:   models.EntryCollection,
		RecentLimit:  20,
		TemplatesDir: templatesDir,
		I18n:         i18nManager,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

// newStoreTestApp wires the handler the way STORE_PATH does in production.
func newStoreTestApp(t *testing.T) (*fiber.App, *db.CollectionStore) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "lctracker-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	store := db.NewCollectionStore(database)
	client := records.NewDataClient(records.Options{Store: store})
	return newTestApp(t, client, store), store
}

func formRequest(method string, path string, values url.Values) *http.Request {
	request := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func jsonRequest(method string, path string, body string) *http.Request {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	return request
}

func doRequest(t *testing.T, app *fiber.App, request *http.Request) (*http.Response, string) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response, string(body)
}

func decodeJSON(t *testing.T, body string, target any) {
	t.Helper()
	if err := json.Unmarshal([]byte(body), target); err != nil {
		t.Fatalf("decode response body %q: %v", body, err)
	}
}

func alexStudyForm() url.Values {
	return url.Values{
		"day":            {"Tuesday"},
		"period":         {"6"},
		"student_name":   {"Alex"},
		"class_or_study": {"Study"},
		"study_planner":  {"No"},
		"zone":           {"Studio 2"},
		"action":         {"Coached"},
		"notes":          {""},
	}
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie != nil && cookie.Name == name {
			return cookie
		}
	}
	return nil
}
