package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type RestyClient struct {
	client *resty.Client
}

func New(baseURL string, timeout time.Duration) HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &RestyClient{client: client}
}

func (rc *RestyClient) Get(ctx context.Context, endpoint string, result interface{}) (*Response, error) {
	return rc.do(ctx, http.MethodGet, endpoint, nil, result)
}

func (rc *RestyClient) Post(ctx context.Context, endpoint string, body interface{}, result interface{}) (*Response, error) {
	return rc.do(ctx, http.MethodPost, endpoint, body, result)
}

func (rc *RestyClient) Put(ctx context.Context, endpoint string, body interface{}, result interface{}) (*Response, error) {
	return rc.do(ctx, http.MethodPut, endpoint, body, result)
}

func (rc *RestyClient) Delete(ctx context.Context, endpoint string, result interface{}) (*Response, error) {
	return rc.do(ctx, http.MethodDelete, endpoint, nil, result)
}

func (rc *RestyClient) do(ctx context.Context, method, endpoint string, body interface{}, result interface{}) (*Response, error) {
	req := rc.client.R().SetContext(ctx)

	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result).SetError(result)
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Headers:    resp.Header(),
	}, nil
}
