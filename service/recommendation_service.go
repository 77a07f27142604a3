package application

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

const recommendationLimit = 5

type RecommendationService struct {
	store  domain.RecommendationStore
	tracer trace.Tracer
}

func NewRecommendationService(store domain.RecommendationStore, tracer trace.Tracer) *RecommendationService {
	return &RecommendationService{
		store:  store,
		tracer: tracer,
	}
}

// Recommend returns the top five properties with descending scores. When
// the graph yields fewer matches than the limit, the list is simply
// shorter.
func (service *RecommendationService) Recommend(ctx context.Context) ([]*domain.ScoredProperty, error) {
	ctx, span := service.tracer.Start(ctx, "RecommendationService.Recommend")
	defer span.End()

	return service.store.TopProperties(ctx, recommendationLimit)
}
