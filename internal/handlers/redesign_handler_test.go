package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homedesigns-gateway/internal/hdai"
	"homedesigns-gateway/pkg/lambda"
)

// stubUpstream is a fake HomeDesigns.AI API that records what it receives
type stubUpstream struct {
	server *httptest.Server

	mu       sync.Mutex
	calls    int
	path     string
	auth     string
	form     map[string]string
	status   int
	respBody string
}

func newStubUpstream(t *testing.T, status int, body string) *stubUpstream {
	t.Helper()
	s := &stubUpstream{status: status, respBody: body}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.calls++
		s.path = r.URL.EscapedPath()
		s.auth = r.Header.Get("Authorization")
		if r.Method == http.MethodPost && r.ParseMultipartForm(1<<20) == nil {
			s.form = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				s.form[k] = v[0]
			}
		}

		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.respBody))
	}))
	t.Cleanup(s.server.Close)
	return s
}

func (s *stubUpstream) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubUpstream) received() (path, auth string, form map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path, s.auth, s.form
}

func (s *stubUpstream) handler(apiKey string) *RedesignHandler {
	return NewRedesignHandler(hdai.NewClient(hdai.Options{BaseURL: s.server.URL}), apiKey)
}

func decodeError(t *testing.T, resp *lambda.Response) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body, &e))
	return e
}

func TestPreflight(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, `{}`)

	tests := []struct {
		name    string
		handle  lambda.HandlerFunc
		methods string
	}{
		{name: "submit", handle: stub.handler("key").HandleSubmit, methods: "POST, OPTIONS"},
		{name: "status", handle: stub.handler("key").HandleStatus, methods: "GET, OPTIONS"},
		{name: "submit without key", handle: stub.handler("").HandleSubmit, methods: "POST, OPTIONS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.handle(context.Background(), &lambda.Request{Method: http.MethodOptions})
			require.NoError(t, err)

			assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			assert.Empty(t, resp.Body)
			assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
			assert.Equal(t, tt.methods, resp.Headers["Access-Control-Allow-Methods"])
			assert.Equal(t, "Content-Type", resp.Headers["Access-Control-Allow-Headers"])
		})
	}
	assert.Zero(t, stub.callCount())
}

func TestMethodNotAllowed(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, `{}`)
	h := stub.handler("key")

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		resp, err := h.HandleSubmit(context.Background(), &lambda.Request{Method: method, Body: []byte(`{"imageBase64":"x"}`)})
		require.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, method)
		assert.Equal(t, "Only POST allowed", decodeError(t, resp).Error)
		assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	}

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		resp, err := h.HandleStatus(context.Background(), &lambda.Request{Method: method, QueryParams: map[string]string{"id": "abc"}})
		require.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, method)
		assert.Equal(t, "Only GET allowed", decodeError(t, resp).Error)
	}

	assert.Zero(t, stub.callCount())
}

func TestMissingAPIKey(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, `{}`)
	h := stub.handler("")

	resp, err := h.HandleSubmit(context.Background(), &lambda.Request{Method: http.MethodPost, Body: []byte(`{"imageBase64":"x"}`)})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Server is missing HDAI_API_KEY", decodeError(t, resp).Error)

	resp, err = h.HandleStatus(context.Background(), &lambda.Request{Method: http.MethodGet, QueryParams: map[string]string{"id": "abc"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Server is missing HDAI_API_KEY", decodeError(t, resp).Error)

	assert.Zero(t, stub.callCount())
}

func TestSubmit_InvalidInput(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, `{}`)
	h := stub.handler("key")

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty body", body: "", want: "Invalid JSON body"},
		{name: "malformed json", body: `{"imageBase64":`, want: "Invalid JSON body"},
		{name: "trailing garbage", body: `{"imageBase64":"x"} extra`, want: "Invalid JSON body"},
		{name: "array body", body: `["x"]`, want: "imageBase64 is required"},
		{name: "falsy image", body: `{"imageBase64":0}`, want: "imageBase64 is required"},
		{name: "missing image", body: `{"design_type":"Interior"}`, want: "imageBase64 is required"},
		{name: "empty image", body: `{"imageBase64":""}`, want: "imageBase64 is required"},
		{name: "null body", body: `null`, want: "imageBase64 is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.HandleSubmit(context.Background(), &lambda.Request{Method: http.MethodPost, Body: []byte(tt.body)})
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.want, decodeError(t, resp).Error)
		})
	}
	assert.Zero(t, stub.callCount())
}

func TestSubmit_ForwardsDefaultedForm(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, `{"job_id":"j1"}`)

	resp, err := stub.handler("secret").HandleSubmit(context.Background(), &lambda.Request{
		Method: http.MethodPost,
		Body:   []byte(`{"imageBase64":"aGVsbG8="}`),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	path, auth, form := stub.received()
	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, "/perfect_redesign", path)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, map[string]string{
		"image":                   "aGVsbG8=",
		"design_type":             "Interior",
		"ai_intervention":         "Mid",
		"no_design":               "1",
		"keep_structural_element": "true",
	}, form)
}

func TestSubmit_LooseOptions(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		want  string
	}{
		{name: "no_design as string", body: `{"imageBase64":"x","no_design":"2"}`, field: "no_design", want: "2"},
		{name: "no_design zero", body: `{"imageBase64":"x","no_design":0}`, field: "no_design", want: "0"},
		{name: "keep as string false", body: `{"imageBase64":"x","keep_structural_element":"false"}`, field: "keep_structural_element", want: "true"},
		{name: "keep zero", body: `{"imageBase64":"x","keep_structural_element":0}`, field: "keep_structural_element", want: "false"},
		{name: "keep null", body: `{"imageBase64":"x","keep_structural_element":null}`, field: "keep_structural_element", want: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStubUpstream(t, http.StatusOK, `{"job_id":"j1"}`)

			resp, err := stub.handler("secret").HandleSubmit(context.Background(), &lambda.Request{
				Method: http.MethodPost,
				Body:   []byte(tt.body),
			})
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, 1, stub.callCount())

			_, _, form := stub.received()
			assert.Equal(t, tt.want, form[tt.field])
		})
	}
}

func TestSubmit_RoundTrip(t *testing.T) {
	stub := newStubUpstream(t, http.StatusAccepted, `{"job_id":"xyz"}`)

	resp, err := stub.handler("secret").HandleSubmit(context.Background(), &lambda.Request{
		Method: http.MethodPost,
		Body:   []byte(`{"imageBase64":"img","room_type":"Bedroom","keep_structural_element":false}`),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, `{"job_id":"xyz"}`, string(resp.Body))
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	_, _, form := stub.received()
	assert.Equal(t, "Bedroom", form["room_type"])
	assert.Equal(t, "false", form["keep_structural_element"])
}

func TestSubmit_RelaysUpstreamErrors(t *testing.T) {
	stub := newStubUpstream(t, http.StatusUnprocessableEntity, `{"message":"image too small"}`)

	resp, err := stub.handler("secret").HandleSubmit(context.Background(), &lambda.Request{
		Method: http.MethodPost,
		Body:   []byte(`{"imageBase64":"img"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.JSONEq(t, `{"message":"image too small"}`, string(resp.Body))
}

func TestStatus_MissingID(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, `{}`)
	h := stub.handler("key")

	for _, query := range []map[string]string{nil, {"id": ""}, {"job": "abc"}} {
		resp, err := h.HandleStatus(context.Background(), &lambda.Request{Method: http.MethodGet, QueryParams: query})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Missing id query parameter", decodeError(t, resp).Error)
	}
	assert.Zero(t, stub.callCount())
}

func TestStatus_ForwardsID(t *testing.T) {
	stub := newStubUpstream(t, http.StatusOK, `{"status":"SUCCESS","output_images":["https://x/1.png"]}`)

	resp, err := stub.handler("secret").HandleStatus(context.Background(), &lambda.Request{
		Method:      http.MethodGet,
		QueryParams: map[string]string{"id": "abc123"},
	})
	require.NoError(t, err)

	path, auth, _ := stub.received()
	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, "/perfect_redesign/status_check/abc123", path)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"SUCCESS","output_images":["https://x/1.png"]}`, string(resp.Body))
}

func TestStatus_NonJSONUpstreamBody(t *testing.T) {
	stub := newStubUpstream(t, http.StatusServiceUnavailable, `upstream maintenance`)

	resp, err := stub.handler("secret").HandleStatus(context.Background(), &lambda.Request{
		Method:      http.MethodGet,
		QueryParams: map[string]string{"id": "abc"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, `{}`, string(resp.Body))
}

func TestUpstreamUnreachable(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := dead.URL
	dead.Close()

	h := NewRedesignHandler(hdai.NewClient(hdai.Options{BaseURL: baseURL}), "secret")

	responses := []*lambda.Response{}
	resp, err := h.HandleSubmit(context.Background(), &lambda.Request{Method: http.MethodPost, Body: []byte(`{"imageBase64":"img"}`)})
	require.NoError(t, err)
	responses = append(responses, resp)

	resp, err = h.HandleStatus(context.Background(), &lambda.Request{Method: http.MethodGet, QueryParams: map[string]string{"id": "abc"}})
	require.NoError(t, err)
	responses = append(responses, resp)

	for _, resp := range responses {
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		e := decodeError(t, resp)
		assert.Equal(t, "Upstream error", e.Error)
		assert.NotEmpty(t, e.Details)
		assert.NotContains(t, string(resp.Body), "secret")
	}
}
