package recommendations

import (
	"errors"
	"fmt"

	"stackadvisor-backend/internal/llm"
)

const malformedMessage = "Invalid recommendations format received"

var (
	ErrCredentialRequired = llm.ErrCredentialRequired
	ErrEmptyResponse      = llm.ErrEmptyResponse
	ErrRequestInProgress  = errors.New("request already in progress")
	ErrCredentialLookup   = errors.New("credential lookup failed")
)

// MalformedResponseError is returned when the completion text cannot be read as a recommendation array.
type MalformedResponseError struct {
	Content string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", malformedMessage, e.Err)
	}
	return malformedMessage
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// failureClass names the error kind for logs and metrics.
func failureClass(err error) string {
	var upstream *llm.UpstreamError
	var malformed *MalformedResponseError
	switch {
	case errors.Is(err, ErrCredentialRequired):
		return "auth"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	case errors.As(err, &malformed):
		return "malformed_response"
	case errors.As(err, &upstream):
		return "upstream"
	default:
		return "unknown"
	}
}
