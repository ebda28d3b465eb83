package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every request made through [HTTPClient].
const UserAgent = "go-item-keeper-client"

// HTTPClient embeds *resty.Client so that callers configure base URL,
// timeouts and retries with the resty API directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client that accepts JSON and
// identifies itself with [UserAgent].
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", UserAgent)

	return &HTTPClient{Client: client}
}
