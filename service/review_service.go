package application

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/realtime"
)

type ReviewService struct {
	store  domain.ReviewStore
	feed   *realtime.Feed
	tracer trace.Tracer
}

func NewReviewService(store domain.ReviewStore, feed *realtime.Feed, tracer trace.Tracer) *ReviewService {
	return &ReviewService{
		store:  store,
		feed:   feed,
		tracer: tracer,
	}
}

func (service *ReviewService) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	ctx, span := service.tracer.Start(ctx, "ReviewService.Create")
	defer span.End()

	validate := validator.New()
	if err := validate.Struct(review); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	created, err := service.store.Insert(ctx, review)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := service.feed.Publish("reviews", "INSERT", map[string]interface{}{
		"id":         created.ID.Hex(),
		"propertyId": created.PropertyID,
	}); err != nil {
		log.Println("change feed publish error:", err)
	}

	return created, nil
}

func (service *ReviewService) GetByProperty(ctx context.Context, propertyID string) (domain.Reviews, error) {
	ctx, span := service.tracer.Start(ctx, "ReviewService.GetByProperty")
	defer span.End()

	return service.store.GetByProperty(ctx, propertyID)
}

func (service *ReviewService) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := service.tracer.Start(ctx, "ReviewService.Delete")
	defer span.End()

	return service.store.Delete(ctx, id)
}
