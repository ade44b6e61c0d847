// Package httpx holds shared HTTP client construction for backend sidecars.
package httpx

import (
	"net/http"
	"time"
)

// NewPooledClient creates an http.Client with connection pooling and tuned
// transport for repeated calls to the same backend host.
func NewPooledClient(poolSize int, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:          poolSize,
			MaxIdleConnsPerHost:   poolSize,
			IdleConnTimeout:       90 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
			ForceAttemptHTTP2:     true,
		},
	}
}
