package lambda

import (
	"fmt"
	"io"
	"net/http"
)

// FromHTTPRequest converts a net/http request to a generic request, reading
// the whole body. Only the first value of repeated headers and query
// parameters is kept.
func FromHTTPRequest(r *http.Request, requestID string) (*Request, error) {
	req := &Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		Headers:     make(map[string]string, len(r.Header)),
		QueryParams: make(map[string]string),
		RequestID:   requestID,
	}

	for k, v := range r.Header {
		if len(v) > 0 {
			req.Headers[k] = v[0]
		}
	}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			req.QueryParams[k] = v[0]
		}
	}

	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return req, fmt.Errorf("failed to read request body: %w", err)
		}
		req.Body = body
	}

	return req, nil
}

// WriteHTTP writes a generic response to a net/http response writer
func WriteHTTP(w http.ResponseWriter, resp *Response) error {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if len(resp.Body) == 0 {
		return nil
	}
	_, err := w.Write(resp.Body)
	return err
}
