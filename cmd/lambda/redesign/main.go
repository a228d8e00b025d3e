package main

import (
	"context"

	"homedesigns-gateway/internal/config"
	"homedesigns-gateway/internal/handlers"
	"homedesigns-gateway/internal/logging"
	"homedesigns-gateway/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
)

var manager *lambda.ConnectionManager

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logging.Setup(cfg.Log); err != nil {
		panic("Failed to configure logging: " + err.Error())
	}

	manager = lambda.GetConnectionManager()
	if err := manager.Initialize(cfg); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if !manager.IsHealthy() {
		_ = manager.Cleanup()
	}

	container, err := manager.GetContainer(ctx)
	if err != nil {
		logging.Base().WithError(err).Error("Failed to get container")
		return lambda.InternalError().ToAPIGatewayProxyResponse(), nil
	}

	redesignHandler := handlers.NewRedesignHandler(container.HDAI, container.APIKey())
	return lambda.ServeAPIGateway(ctx, event, redesignHandler.HandleSubmit)
}

func main() {
	awslambda.Start(handler)
}
