// Package http provides the outbound HTTP client used for Google and board API calls.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates a client with explicit transport timeouts.
// http.DefaultClient has no timeout, so outbound calls always go through this.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
