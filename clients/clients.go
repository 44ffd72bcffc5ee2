// Package clients holds the HTTP clients for the external analyzer
// services. Each analyzer exposes a /detect endpoint: JSON for text,
// multipart file upload for audio and images.
package clients

import (
	"net/http"
	"time"
)

type HTTP struct{ c *http.Client }

func NewHTTP(timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTP{c: &http.Client{Timeout: timeout}}
}
