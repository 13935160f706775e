package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/airport-status-service/internal/app/dto"
)

type RunnerService interface {
	Run(ctx context.Context, req dto.RunRequest) (dto.RunReport, error)
}

type RunnerEndpoint struct {
	Run endpoint.Endpoint
}

func MakeRunnerEndpoint(service RunnerService) RunnerEndpoint {
	return RunnerEndpoint{
		Run: makeRunEndpoint(service),
	}
}

func makeRunEndpoint(service RunnerService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.RunRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		report, err := service.Run(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("runner service: %w", err)
		}

		return report, nil
	}
}
