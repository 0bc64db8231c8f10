package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "go-tours"

// HTTPClient is the outbound client of the third-party adapters. It embeds
// *resty.Client so requests are built with the usual resty API.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL. A zero timeout leaves
// requests unbounded except by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
