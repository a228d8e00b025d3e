package lambda

import (
	"context"
	"net/http"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	RequestID   string            `json:"request_id"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// HandlerFunc is a framework-agnostic handler interface
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// Query returns the query parameter value for key, or "" if absent
func (r *Request) Query(key string) string {
	return r.QueryParams[key]
}

// InternalError returns the response sent when a handler fails unexpectedly
func InternalError() *Response {
	return &Response{
		StatusCode: http.StatusInternalServerError,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: []byte(`{"error":"Internal server error"}`),
	}
}
