package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lctracker/internal/models"
)

const userAgent = "lctracker"

// RESTClient talks to a remote collection service directly over
// /api/collections/{name}/records.
type RESTClient struct {
	baseURL string
	timeout time.Duration
	client  *fiber.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout: timeout,
		client:  &fiber.Client{UserAgent: userAgent},
	}
}

func (client *RESTClient) Create(ctx context.Context, collection string, payload models.EntryPayload) (models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return models.Entry{}, &RequestError{Op: OpCreate, Err: err}
	}

	agent := client.client.Post(client.recordsURL(collection)).JSON(payload)
	status, body, err := client.send(ctx, agent)
	if err != nil {
		return models.Entry{}, &RequestError{Op: OpCreate, Err: err}
	}
	if !isSuccessStatus(status) {
		return models.Entry{}, newStatusError(OpCreate, status, body)
	}

	entry := models.Entry{}
	if err := json.Unmarshal(body, &entry); err != nil {
		return models.Entry{}, &RequestError{Op: OpCreate, Status: status, Err: fmt.Errorf("decode created record: %w", err)}
	}
	return entry, nil
}

func (client *RESTClient) GetList(ctx context.Context, collection string, page int, perPage int, options ListOptions) (ListResult, error) {
	if err := ctx.Err(); err != nil {
		return ListResult{}, &RequestError{Op: OpList, Err: err}
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("perPage", strconv.Itoa(perPage))
	if sort := strings.TrimSpace(options.Sort); sort != "" {
		query.Set("sort", sort)
	}

	agent := client.client.Get(client.recordsURL(collection) + "?" + query.Encode())
	status, body, err := client.send(ctx, agent)
	if err != nil {
		return ListResult{}, &RequestError{Op: OpList, Err: err}
	}
	if !isSuccessStatus(status) {
		return ListResult{}, newStatusError(OpList, status, body)
	}

	result := ListResult{}
	if err := json.Unmarshal(body, &result); err != nil {
		return ListResult{}, &RequestError{Op: OpList, Status: status, Err: fmt.Errorf("decode record list: %w", err)}
	}
	// A response without totalItems decodes to zero; the count is not
	// reconstructed from items.
	if result.Items == nil {
		result.Items = []models.Entry{}
	}
	return result, nil
}

func (client *RESTClient) recordsURL(collection string) string {
	return client.baseURL + "/api/collections/" + url.PathEscape(collection) + "/records"
}

func (client *RESTClient) send(ctx context.Context, agent *fiber.Agent) (int, []byte, error) {
	timeout := client.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, nil, context.DeadlineExceeded
		}
		if timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}
	if timeout > 0 {
		agent.Timeout(timeout)
	}

	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, nil, errors.Join(errs...)
	}
	return status, body, nil
}

func newStatusError(op string, status int, body []byte) *RequestError {
	requestErr := &RequestError{Op: op, Status: status}

	document := ErrorDocument{}
	if err := json.Unmarshal(body, &document); err == nil {
		requestErr.Message = strings.TrimSpace(document.Message)
	}
	return requestErr
}

func isSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
