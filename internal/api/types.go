package api

import (
	"fmt"
	"net/http"
)

// Format selects how command payloads are encoded on the wire.
type Format string

const (
	FormatForm Format = "form"
	FormatJSON Format = "json"
)

// ParseFormat validates a configured payload format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatForm, FormatJSON:
		return f, nil
	case "":
		return FormatForm, nil
	}
	return "", fmt.Errorf("unknown payload format %q (want form or json)", s)
}

// StatusError is returned for non-2xx responses from the command endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Payload returns the response body, which the terminal shows as output.
// An empty body falls back to the status line.
func (e *StatusError) Payload() string {
	if e.Body == "" {
		return e.Error()
	}
	return e.Body
}
