package live

import "fmt"

// Error represents a protocol or connection error from the realtime endpoint.
type Error struct {
	// Code is the error code (e.g., "connection_failed").
	Code string `json:"code,omitzero"`

	// Message is the human-readable error message.
	Message string `json:"message,omitzero"`

	// HTTPStatus is the HTTP status code from the handshake, if applicable.
	HTTPStatus int `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("live: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("live: %s", e.Message)
}
