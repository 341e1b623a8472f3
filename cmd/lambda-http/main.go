package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"careercraft-backend/internal/bootstrap"
	"careercraft-backend/internal/shared/config"
	"careercraft-backend/internal/shared/telemetry"
)

var (
	initOnce  sync.Once
	initErr   error
	app       *bootstrap.App
	ginLambda *ginadapter.GinLambdaV2
)

func initApp() {
	cfg := config.Load()
	app, initErr = bootstrap.Build(cfg)
	if initErr != nil {
		return
	}
	ginLambda = ginadapter.NewV2(app.Router)
}

// handler serves one API Gateway request. Lambda has no background ticker, so
// pending drafts are flushed after every request.
func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"err": initErr})
		body, _ := json.Marshal(map[string]any{"error": map[string]string{"code": "internal_error", "message": "bootstrap failed"}})
		return events.APIGatewayV2HTTPResponse{
			StatusCode: 500,
			Body:       string(body),
			Headers:    map[string]string{"Content-Type": "application/json"},
		}, initErr
	}

	resp, err := ginLambda.ProxyWithContext(ctx, req)
	if _, ferr := app.Resumes.FlushDrafts(ctx); ferr != nil {
		telemetry.Warn("lambda.flush_failed", map[string]any{"err": ferr})
	}
	return resp, err
}

func main() {
	lambda.Start(handler)
}
