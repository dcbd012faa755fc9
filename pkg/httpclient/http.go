package httpclient

import (
	"context"
	"net/http"
)

type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// HTTPClient sends JSON requests relative to a base URL. When result is not
// nil the response body is decoded into it, for error statuses too.
type HTTPClient interface {
	Get(ctx context.Context, endpoint string, result interface{}) (*Response, error)
	Post(ctx context.Context, endpoint string, body interface{}, result interface{}) (*Response, error)
	Put(ctx context.Context, endpoint string, body interface{}, result interface{}) (*Response, error)
	Delete(ctx context.Context, endpoint string, result interface{}) (*Response, error)
}
