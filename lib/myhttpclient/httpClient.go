package myhttpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MarcGrol/shopauth/lib/mylog"
)

type jsonHTTPClient struct {
	client  *http.Client
	timeout time.Duration
	logger  mylog.Logger
}

func newJSONHTTPClient(opts ...Option) *jsonHTTPClient {
	c := &jsonHTTPClient{
		client:  &http.Client{CheckRedirect: noRedirect},
		timeout: defaultTimeout,
		logger:  mylog.New("httpclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// noRedirect hands a redirect back to the caller, so a payload with credentials is never resent to another location.
func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// Send posts a JSON payload; bodies are never logged since they carry credentials.
func (c jsonHTTPClient) Send(ctx context.Context, method string, url string, body []byte) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error creating http request for %s %s: %w", method, url, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	started := time.Now()
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error sending %s %s: %w", method, url, err)
	}
	defer httpResp.Body.Close()

	respPayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error reading response %s %s: %w", method, url, err)
	}

	c.logger.Log(ctx, "", mylog.SeverityInfo, "HTTP call: %s %s -> %d (%s)", method, url, httpResp.StatusCode, time.Since(started))

	return httpResp.StatusCode, respPayload, nil
}
