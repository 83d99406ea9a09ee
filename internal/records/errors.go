package records

import (
	"fmt"
	"strings"
)

const (
	OpCreate = "Create"
	OpList   = "List"
)

// RequestError reports a failed round trip. Status is zero when the request
// never produced a response.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (err *RequestError) Error() string {
	if message := strings.TrimSpace(err.Message); message != "" {
		return message
	}
	if err.Status == 0 && err.Err != nil {
		return fmt.Sprintf("%s failed: %v", err.Op, err.Err)
	}
	return fmt.Sprintf("%s failed %d", err.Op, err.Status)
}

func (err *RequestError) Unwrap() error {
	return err.Err
}

// ErrorDocument is the JSON body the collection service sends with non-2xx
// responses.
type ErrorDocument struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}
