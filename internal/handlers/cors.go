package handlers

import (
	"net/http"
	"strings"

	"homedesigns-gateway/pkg/lambda"
)

func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin": "*",
	}
}

// preflight answers a CORS preflight for an endpoint accepting method
func preflight(method string) *lambda.Response {
	headers := corsHeaders()
	headers["Access-Control-Allow-Methods"] = strings.Join([]string{method, http.MethodOptions}, ", ")
	headers["Access-Control-Allow-Headers"] = "Content-Type"
	return &lambda.Response{
		StatusCode: http.StatusNoContent,
		Headers:    headers,
	}
}
