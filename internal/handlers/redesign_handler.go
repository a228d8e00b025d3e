package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"homedesigns-gateway/internal/hdai"
	"homedesigns-gateway/internal/middleware"
	"homedesigns-gateway/internal/models"
	"homedesigns-gateway/pkg/lambda"
)

// Upstream is the redesign API the handler forwards to
type Upstream interface {
	Submit(ctx context.Context, apiKey string, fields []models.FormField) (*hdai.Response, error)
	Status(ctx context.Context, apiKey, jobID string) (*hdai.Response, error)
}

// RedesignHandler proxies redesign submissions and status polls to the upstream API
type RedesignHandler struct {
	upstream Upstream
	apiKey   string
}

// NewRedesignHandler creates a new redesign handler. An empty apiKey is
// accepted; every non-preflight request is then rejected with a 500.
func NewRedesignHandler(upstream Upstream, apiKey string) *RedesignHandler {
	return &RedesignHandler{
		upstream: upstream,
		apiKey:   apiKey,
	}
}

// @Summary Submit a redesign job
// @Description Forwards an image and redesign options to HomeDesigns.AI and relays its response
// @Tags redesign
// @Accept json
// @Produce json
// @Param request body models.RedesignRequest true "Image and redesign options"
// @Success 200 {object} object "Upstream response, relayed verbatim"
// @Failure 400 {object} ErrorResponse
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /perfect-redesign [post]
func (h *RedesignHandler) SubmitRedesign(c *gin.Context) {
	serveGin(c, h.HandleSubmit)
}

// @Summary Poll a redesign job
// @Description Fetches the status of a redesign job from HomeDesigns.AI and relays its response
// @Tags redesign
// @Produce json
// @Param id query string true "Job ID returned by the submit call"
// @Success 200 {object} object "Upstream response, relayed verbatim"
// @Failure 400 {object} ErrorResponse
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /perfect-redesign-status [get]
func (h *RedesignHandler) RedesignStatus(c *gin.Context) {
	serveGin(c, h.HandleStatus)
}

// HandleSubmit validates a redesign request and forwards it upstream
func (h *RedesignHandler) HandleSubmit(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if req.Method == http.MethodOptions {
		return preflight(http.MethodPost), nil
	}
	if req.Method != http.MethodPost {
		return methodNotAllowed(http.MethodPost), nil
	}
	if h.apiKey == "" {
		return missingAPIKey(), nil
	}

	body, err := models.ParseRedesignRequest(req.Body)
	if err != nil {
		return badRequest(msgInvalidJSON), nil
	}
	if err := body.Validate(); err != nil {
		return badRequest(err.Error()), nil
	}

	resp, err := h.upstream.Submit(ctx, h.apiKey, body.Options().FormFields())
	return h.relay(req, "submit", resp, err)
}

// HandleStatus forwards a job status poll upstream
func (h *RedesignHandler) HandleStatus(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if req.Method == http.MethodOptions {
		return preflight(http.MethodGet), nil
	}
	if req.Method != http.MethodGet {
		return methodNotAllowed(http.MethodGet), nil
	}
	if h.apiKey == "" {
		return missingAPIKey(), nil
	}

	status := models.StatusRequest{JobID: req.Query("id")}
	if err := status.Validate(); err != nil {
		return badRequest(msgMissingID), nil
	}

	resp, err := h.upstream.Status(ctx, h.apiKey, status.JobID)
	return h.relay(req, "status", resp, err)
}

func (h *RedesignHandler) relay(req *lambda.Request, op string, resp *hdai.Response, err error) (*lambda.Response, error) {
	log := logrus.WithFields(logrus.Fields{
		"request_id": req.RequestID,
		"op":         op,
	})

	if err != nil {
		var te *hdai.TransportError
		if errors.As(err, &te) {
			log.WithError(te.Err).Error("Upstream unreachable")
			return upstreamFailure(te.Err), nil
		}
		log.WithError(err).Error("Upstream call failed")
		return upstreamFailure(err), nil
	}

	log.WithField("upstream_status", resp.StatusCode).Debug("Relaying upstream response")
	return jsonResponse(resp.StatusCode, resp.Body), nil
}

// serveGin runs a framework-agnostic handler behind gin
func serveGin(c *gin.Context, fn lambda.HandlerFunc) {
	req, err := lambda.FromHTTPRequest(c.Request, c.GetString(middleware.RequestIDKey))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeGin(c, errorResponse(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request too large"}))
			return
		}
		_ = c.Error(err)
		// An unreadable body is reported the same way as malformed JSON
		req.Body = nil
	}

	resp, err := fn(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		resp = lambda.InternalError()
	}

	writeGin(c, resp)
}

func writeGin(c *gin.Context, resp *lambda.Response) {
	if err := lambda.WriteHTTP(c.Writer, resp); err != nil {
		_ = c.Error(err)
	}
}
