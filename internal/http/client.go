// Package http provides shared HTTP plumbing: an optimized client for
// streaming transfers and bounded retry with exponential backoff.
package http

import (
	"crypto/tls"
	nethttp "net/http"
	"os"

	"golang.org/x/net/http2"

	"github.com/disklink/disklink/internal/constants"
)

// CreateOptimizedClient creates an HTTP client tuned for streaming file
// transfers against the Disk API and its transfer URLs.
//
// Key characteristics:
//   - No overall client timeout; per-operation deadlines come from context
//   - Connection reuse across the metadata endpoint and transfer hosts
//   - Disabled compression (file bodies are opaque, often pre-compressed)
//   - HTTP/2 with a runtime toggle (DISABLE_HTTP2 env var)
//
// Proxy configuration follows the standard environment variables via the
// default transport's ProxyFromEnvironment.
func CreateOptimizedClient() *nethttp.Client {
	tr := &nethttp.Transport{
		Proxy: nethttp.ProxyFromEnvironment,

		MaxIdleConns:        128,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     constants.HTTPIdleConnTimeout,

		TLSHandshakeTimeout:   constants.HTTPTLSHandshakeTimeout,
		ExpectContinueTimeout: constants.HTTPExpectContinueTimeout,

		DisableCompression: true,
		ForceAttemptHTTP2:  true,
	}

	_ = http2.ConfigureTransport(tr)

	if os.Getenv("DISABLE_HTTP2") == "true" {
		tr.ForceAttemptHTTP2 = false
		tr.TLSNextProto = make(map[string]func(string, *tls.Conn) nethttp.RoundTripper)
	}

	return &nethttp.Client{
		Transport: tr,
		Timeout:   0,
	}
}
