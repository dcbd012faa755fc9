package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func TestRestyClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(payload{Code: http.StatusNotFound, Message: "missing"})
		default:
			body, _ := io.ReadAll(r.Body)
			_ = json.NewEncoder(w).Encode(payload{Code: http.StatusOK, Message: r.Method + " " + string(body)})
		}
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	ctx := context.Background()
	postBody := map[string]int{"a": 1}
	putBody := map[string]int{"b": 2}

	tests := []struct {
		name     string
		call     func(result *payload) (*Response, error)
		wantCode int
		wantMsg  string
	}{
		{
			name:     "get",
			call:     func(p *payload) (*Response, error) { return client.Get(ctx, "/ok", p) },
			wantCode: http.StatusOK,
			wantMsg:  "GET ",
		},
		{
			name:     "post with body",
			call:     func(p *payload) (*Response, error) { return client.Post(ctx, "/ok", postBody, p) },
			wantCode: http.StatusOK,
			wantMsg:  `POST {"a":1}`,
		},
		{
			name:     "put with body",
			call:     func(p *payload) (*Response, error) { return client.Put(ctx, "/ok", putBody, p) },
			wantCode: http.StatusOK,
			wantMsg:  `PUT {"b":2}`,
		},
		{
			name:     "delete",
			call:     func(p *payload) (*Response, error) { return client.Delete(ctx, "/ok", p) },
			wantCode: http.StatusOK,
			wantMsg:  "DELETE ",
		},
		{
			name:     "error status still decodes",
			call:     func(p *payload) (*Response, error) { return client.Get(ctx, "/missing", p) },
			wantCode: http.StatusNotFound,
			wantMsg:  "missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result payload
			resp, err := tt.call(&result)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, tt.wantCode, result.Code)
			assert.Equal(t, tt.wantMsg, result.Message)
		})
	}
}

func TestRestyClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).Get(context.Background(), "/", nil)
	assert.Error(t, err)
}
