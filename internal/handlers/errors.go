package handlers

import (
	"encoding/json"
	"net/http"

	"homedesigns-gateway/pkg/lambda"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

const (
	msgMissingAPIKey = "Server is missing HDAI_API_KEY"
	msgInvalidJSON   = "Invalid JSON body"
	msgMissingID     = "Missing id query parameter"
	msgUpstream      = "Upstream error"
)

func jsonResponse(status int, body []byte) *lambda.Response {
	headers := corsHeaders()
	headers["Content-Type"] = "application/json"
	return &lambda.Response{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
	}
}

func errorResponse(status int, errResp ErrorResponse) *lambda.Response {
	body, err := json.Marshal(errResp)
	if err != nil {
		body = []byte(`{"error":"Internal server error"}`)
		status = http.StatusInternalServerError
	}
	return jsonResponse(status, body)
}

func methodNotAllowed(method string) *lambda.Response {
	return errorResponse(http.StatusMethodNotAllowed, ErrorResponse{Error: "Only " + method + " allowed"})
}

func missingAPIKey() *lambda.Response {
	return errorResponse(http.StatusInternalServerError, ErrorResponse{Error: msgMissingAPIKey})
}

func badRequest(message string) *lambda.Response {
	return errorResponse(http.StatusBadRequest, ErrorResponse{Error: message})
}

func upstreamFailure(err error) *lambda.Response {
	return errorResponse(http.StatusInternalServerError, ErrorResponse{
		Error:   msgUpstream,
		Details: err.Error(),
	})
}
