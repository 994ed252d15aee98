package relayer

import (
	"net/http"
	"strings"

	json "github.com/json-iterator/go"
)

// APIError is a rejection from the relayer. Message is the relayer's own text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// newAPIError extracts the relayer's message from an error body, falling back
// to the raw body and then to the status text.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Error
		if msg == "" {
			msg = payload.Message
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = "relayer request failed"
	}
	return &APIError{StatusCode: status, Message: msg}
}
