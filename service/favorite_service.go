package application

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

type FavoriteService struct {
	store  domain.FavoriteStore
	tracer trace.Tracer
}

func NewFavoriteService(store domain.FavoriteStore, tracer trace.Tracer) *FavoriteService {
	return &FavoriteService{
		store:  store,
		tracer: tracer,
	}
}

func (service *FavoriteService) Add(ctx context.Context, userID, propertyID string) (*domain.Favorite, error) {
	ctx, span := service.tracer.Start(ctx, "FavoriteService.Add")
	defer span.End()

	return service.store.Insert(ctx, &domain.Favorite{UserID: userID, PropertyID: propertyID})
}

func (service *FavoriteService) Remove(ctx context.Context, userID, propertyID string) error {
	ctx, span := service.tracer.Start(ctx, "FavoriteService.Remove")
	defer span.End()

	return service.store.Delete(ctx, userID, propertyID)
}

func (service *FavoriteService) GetByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	ctx, span := service.tracer.Start(ctx, "FavoriteService.GetByUser")
	defer span.End()

	return service.store.GetByUser(ctx, userID)
}
