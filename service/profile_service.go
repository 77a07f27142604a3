package application

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
)

// mutableProfileFields are the only keys a partial update may set. Identity
// columns (userId, email) and role are written by registration and admin
// flows, never by the owner's own PATCH.
var mutableProfileFields = map[string]bool{
	"fullName":    true,
	"phone":       true,
	"avatarUrl":   true,
	"preferences": true,
}

// ProfileService is also the session manager's ProfileSource.
type ProfileService struct {
	store  domain.ProfileStore
	tracer trace.Tracer
}

func NewProfileService(store domain.ProfileStore, tracer trace.Tracer) *ProfileService {
	return &ProfileService{
		store:  store,
		tracer: tracer,
	}
}

func (service *ProfileService) FetchProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, span := service.tracer.Start(ctx, "ProfileService.FetchProfile")
	defer span.End()

	return service.store.GetByUserID(ctx, userID)
}

// UpdateProfile applies only the submitted fields; the returned profile is
// what the store accepted, never an optimistic local guess. Keys outside
// mutableProfileFields reject the whole update.
func (service *ProfileService) UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) (*domain.Profile, error) {
	ctx, span := service.tracer.Start(ctx, "ProfileService.UpdateProfile")
	defer span.End()

	for key := range fields {
		if !mutableProfileFields[key] {
			return nil, fmt.Errorf(errors.ImmutableProfileField)
		}
	}

	return service.store.UpdateFields(ctx, userID, fields)
}

func (service *ProfileService) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	ctx, span := service.tracer.Start(ctx, "ProfileService.GetAll")
	defer span.End()

	return service.store.GetAll(ctx)
}
