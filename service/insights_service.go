package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

var (
	insightsAPIURL = os.Getenv("INSIGHTS_API_URL")
	insightsAPIKey = os.Getenv("INSIGHTS_API_KEY")
)

// InsightsService forwards property facts to an external generative-text
// API and returns its text verbatim. No retry, no ranking of its own.
type InsightsService struct {
	client *http.Client
	cb     *gobreaker.CircuitBreaker
	tracer trace.Tracer
}

func NewInsightsService(tracer trace.Tracer) *InsightsService {
	return &InsightsService{
		client: &http.Client{Timeout: 20 * time.Second},
		cb:     CircuitBreaker("insightsService"),
		tracer: tracer,
	}
}

type insightsRequest struct {
	Prompt string `json:"prompt"`
}

type insightsResponse struct {
	Text string `json:"text"`
}

func (service *InsightsService) PropertyInsights(ctx context.Context, property *domain.Property, rooms domain.PropertyRooms) (string, error) {
	ctx, span := service.tracer.Start(ctx, "InsightsService.PropertyInsights")
	defer span.End()

	prompt := fmt.Sprintf(
		"Summarize this student housing listing for a prospective tenant. Name: %s. Type: %s. City: %s. Monthly price: %d. Facilities: %v. Rooms: %d.",
		property.Name, property.Type, property.City, property.MonthlyPrice, property.Facilities, len(rooms))

	body, err := json.Marshal(&insightsRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}

	result, breakerErr := service.cb.Execute(func() (interface{}, error) {
		request, err := http.NewRequestWithContext(ctx, "POST", insightsAPIURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("Authorization", "Bearer "+insightsAPIKey)

		response, err := service.client.Do(request)
		if err != nil {
			return nil, err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			payload, _ := io.ReadAll(response.Body)
			return nil, fmt.Errorf("insights api returned %d: %s", response.StatusCode, payload)
		}

		var parsed insightsResponse
		if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
			return nil, err
		}
		return parsed.Text, nil
	})
	if breakerErr != nil {
		span.SetStatus(codes.Error, breakerErr.Error())
		log.Println("insights call failed:", breakerErr)
		return "", breakerErr
	}

	return result.(string), nil
}

func CircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Printf("Circuit Breaker '%s' changed from '%s' to '%s'\n", name, from, to)
			},
		},
	)
}
