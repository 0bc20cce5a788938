package httpclient

import (
	"net/http"
	"time"
)

// Shared HTTP client for EDGAR and reference-data fetches. Generous timeout:
// full-submission files run to several megabytes.
var Default = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}
