package lambda

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"
)

// FromAPIGatewayProxyRequest converts an API Gateway event to a generic request
func FromAPIGatewayProxyRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, err
		}
		body = decoded
	}

	query := event.QueryStringParameters
	if len(query) == 0 && len(event.MultiValueQueryStringParameters) > 0 {
		query = make(map[string]string, len(event.MultiValueQueryStringParameters))
		for k, v := range event.MultiValueQueryStringParameters {
			if len(v) > 0 {
				query[k] = v[0]
			}
		}
	}

	requestID := event.RequestContext.RequestID
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		requestID = lc.AwsRequestID
	}

	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: query,
		Body:        body,
		RequestID:   requestID,
	}, nil
}

// ToAPIGatewayProxyResponse converts a generic response to an API Gateway response
func (r *Response) ToAPIGatewayProxyResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}

// ServeAPIGateway runs fn for a single API Gateway event. Handler errors are
// logged and mapped to a generic 500 so the runtime never sees them.
func ServeAPIGateway(ctx context.Context, event events.APIGatewayProxyRequest, fn HandlerFunc) (events.APIGatewayProxyResponse, error) {
	req, err := FromAPIGatewayProxyRequest(ctx, event)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"method": event.HTTPMethod,
			"path":   event.Path,
			"error":  err.Error(),
		}).Warn("Failed to decode request body")
		// Let the handler report the body as invalid JSON
		req = &Request{
			Method:      event.HTTPMethod,
			Path:        event.Path,
			Headers:     event.Headers,
			QueryParams: event.QueryStringParameters,
			RequestID:   event.RequestContext.RequestID,
		}
	}

	resp, err := fn(ctx, req)
	if err != nil || resp == nil {
		logrus.WithFields(logrus.Fields{
			"request_id": req.RequestID,
			"method":     req.Method,
			"path":       req.Path,
			"error":      err,
		}).Error("Handler failed")
		return InternalError().ToAPIGatewayProxyResponse(), nil
	}

	return resp.ToAPIGatewayProxyResponse(), nil
}
