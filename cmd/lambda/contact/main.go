package main

import (
	"context"

	"site-notify-api/internal/config"
	"site-notify-api/internal/handlers"
	"site-notify-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
)

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Cold start builds the container; warm invocations reuse it
	if err := lambda.GetConnectionManager().Initialize(cfg); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	container, err := lambda.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		return errorResponse(), nil
	}

	req := lambda.FromAPIGatewayRequest(event)
	h := handlers.NewContactHandler(container.ContactService, container.Logger)

	resp, err := h.HandleSubmit(ctx, req)
	if err != nil {
		return errorResponse(), nil
	}

	return lambda.ToAPIGatewayResponse(resp), nil
}

func errorResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: 500,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"error": "Internal server error"}`,
	}
}

func main() {
	awslambda.Start(handler)
}
