package grocer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// envelope covers both response wrappers the API uses. Auth-era endpoints
// answer {errorCode, errorMessage, data}, the category endpoints answer
// {success, message, data}. Fields from the shape that wasn't used stay at
// their zero values, which is how isFailure tells them apart.
type envelope struct {
	ErrorCode    *int            `json:"errorCode"`
	ErrorMessage string          `json:"errorMessage"`
	Success      *bool           `json:"success"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
}

// isFailure reports whether the envelope itself signals an error, regardless
// of the HTTP status.
func (e *envelope) isFailure() bool {
	if e.ErrorCode != nil && *e.ErrorCode != 0 {
		return true
	}
	if e.Success != nil && !*e.Success {
		return true
	}
	return false
}

// errMessage returns the server-supplied message from whichever shape was
// used, or "" when neither carried one.
func (e *envelope) errMessage() string {
	if e.ErrorMessage != "" {
		return e.ErrorMessage
	}
	return e.Message
}

// decodeEnvelope normalizes a response into either out (the unwrapped data
// field) or a typed *APIError. Every client operation funnels through here so
// the rest of the app never sees the raw envelope shapes.
func decodeEnvelope(res *resty.Response, err error, out any) error {
	if err != nil {
		return networkError(err)
	}

	body := res.Body()
	var env envelope
	if jsonErr := json.Unmarshal(body, &env); jsonErr != nil {
		raw := strings.TrimSpace(string(body))
		if res.IsError() {
			// Non-JSON error pages (proxies, crashed handlers). Keep
			// the body as a plain-text payload.
			return &APIError{
				Kind:       ErrKindServer,
				StatusCode: res.StatusCode(),
				Message:    serverMessage(raw, res.StatusCode()),
				Raw:        raw,
			}
		}
		return &APIError{
			Kind:       ErrKindDecode,
			StatusCode: res.StatusCode(),
			Message:    "unexpected response from server",
			Raw:        raw,
			Err:        jsonErr,
		}
	}

	if res.IsError() || env.isFailure() {
		return &APIError{
			Kind:       ErrKindServer,
			StatusCode: res.StatusCode(),
			Message:    serverMessage(env.errMessage(), res.StatusCode()),
		}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if jsonErr := json.Unmarshal(env.Data, out); jsonErr != nil {
		return &APIError{
			Kind:       ErrKindDecode,
			StatusCode: res.StatusCode(),
			Message:    "unexpected response from server",
			Raw:        string(env.Data),
			Err:        jsonErr,
		}
	}
	return nil
}

// serverMessage surfaces the server-supplied message verbatim, or a generic
// fallback when there isn't one.
func serverMessage(msg string, status int) string {
	if msg != "" {
		return msg
	}
	return fmt.Sprintf("request failed (status %d)", status)
}
