package propsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client is an unauthenticated PropertyPlus API client. Use Login (or
// CompleteLogin for 2FA accounts) to obtain a Session for the
// authenticated operations.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
