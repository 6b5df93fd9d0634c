package myhttpclient

import (
	"context"
	"net/http"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
)

//go:generate mockgen -source=api.go -package myhttpclient -destination http_sender_mock.go HTTPSender
type HTTPSender interface {
	Send(c context.Context, method string, url string, body []byte) (int, []byte, error)
}

type Option func(*jsonHTTPClient)

// WithHTTPClient replaces the underlying client, e.g. with the one of an httptest TLS server.
// Redirects stay disabled on the copy that is used.
func WithHTTPClient(client *http.Client) Option {
	return func(c *jsonHTTPClient) {
		cp := *client
		cp.CheckRedirect = noRedirect
		c.client = &cp
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *jsonHTTPClient) {
		c.timeout = timeout
	}
}

func New(opts ...Option) HTTPSender {
	return newJSONHTTPClient(opts...)
}
