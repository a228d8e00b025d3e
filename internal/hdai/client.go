package hdai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"homedesigns-gateway/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const (
	DefaultBaseURL = "https://homedesigns.ai/api/v2"

	submitPath = "/perfect_redesign"
	statusPath = "/perfect_redesign/status_check/"
)

// Response is an upstream reply relayed to the caller unchanged.
// Body is always valid JSON: an unparseable upstream body becomes {}.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// Options configures a Client
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logrus.Entry
}

// Client talks to the HomeDesigns.AI perfect redesign API
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logrus.Entry
}

// NewClient creates a new HomeDesigns.AI API client
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		log:        log.WithField("component", "hdai"),
	}
}

// Submit starts a redesign job. The fields are sent as multipart form data
// in the order given.
func (c *Client) Submit(ctx context.Context, apiKey string, fields []models.FormField) (*Response, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, f := range fields {
		if err := writer.WriteField(f.Name, f.Value); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, apiKey, "submit", logrus.Fields{"form_fields": len(fields)})
}

// Status fetches the state of a previously submitted job
func (c *Client) Status(ctx context.Context, apiKey, jobID string) (*Response, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if jobID == "" {
		return nil, ErrMissingJobID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+statusPath+url.PathEscape(jobID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, apiKey, "status", logrus.Fields{"job_id": jobID})
}

// CloseIdleConnections releases pooled upstream connections
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) do(req *http.Request, apiKey, op string, fields logrus.Fields) (*Response, error) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Accept", "application/json")

	log := c.log.WithFields(fields).WithField("op", op)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Upstream request failed")
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Warn("Failed to read upstream body")
		raw = nil
	}

	log.WithFields(logrus.Fields{
		"upstream_status": resp.StatusCode,
		"latency_ms":      float64(time.Since(start).Nanoseconds()) / 1000000,
	}).Info("Upstream request completed")

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       normalizeBody(raw),
	}, nil
}

// normalizeBody compacts a JSON body, substituting an empty object when the
// upstream did not send valid JSON. A leading byte order mark is dropped and
// invalid UTF-8 is replaced before parsing.
func normalizeBody(raw []byte) json.RawMessage {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	raw = bytes.ToValidUTF8(raw, []byte("\uFFFD"))

	var buf bytes.Buffer
	if len(raw) == 0 || json.Compact(&buf, raw) != nil {
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(buf.Bytes())
}
