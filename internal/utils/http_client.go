package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with its own connection pool.
//
// The cookie jar is disabled: callers carry the session cookie explicitly so
// that a stored token can be replayed across process runs. Idempotent GET
// requests are retried twice on transport errors.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetCookieJar(nil).
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil && r.Request != nil && r.Request.Method == resty.MethodGet
		})

	return &HTTPClient{Client: client}
}
