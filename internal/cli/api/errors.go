package api

import (
	"fmt"
	"net/http"
	"strings"
)

// StatusError — ответ сервера с кодом вне диапазона 2xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server status %d (%s)", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("server status %d: %s", e.Code, e.Body)
}

// IsSuccess reports whether code is in the 2xx range.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// CheckStatus returns *StatusError for a non-2xx response and nil otherwise.
func CheckStatus(resp *http.Response, body []byte) error {
	if IsSuccess(resp.StatusCode) {
		return nil
	}
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
