package application

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
)

type fakeProfileStore struct {
	profile *domain.Profile
	updates []map[string]interface{}
}

func (s *fakeProfileStore) Insert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	return profile, nil
}

func (s *fakeProfileStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	return s.profile, nil
}

func (s *fakeProfileStore) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profile, nil
}

func (s *fakeProfileStore) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return s.profile, nil
}

func (s *fakeProfileStore) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	return []*domain.Profile{s.profile}, nil
}

func (s *fakeProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	return nil
}

func (s *fakeProfileStore) UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) (*domain.Profile, error) {
	s.updates = append(s.updates, fields)
	return s.profile, nil
}

func (s *fakeProfileStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func TestUpdateProfileAllowsOwnerFields(t *testing.T) {
	store := &fakeProfileStore{profile: &domain.Profile{UserID: "u1", Role: domain.Student}}
	service := NewProfileService(store, trace.NewNoopTracerProvider().Tracer("test"))

	fields := map[string]interface{}{
		"fullName":    "Asha Rao",
		"phone":       "+919900112233",
		"avatarUrl":   "https://img.example/u1.png",
		"preferences": map[string]string{"city": "Pune"},
	}
	if _, err := service.UpdateProfile(context.Background(), "u1", fields); err != nil {
		t.Fatalf("UpdateProfile returned %v, want nil", err)
	}
	if len(store.updates) != 1 {
		t.Fatalf("store got %d updates, want 1", len(store.updates))
	}
}

func TestUpdateProfileRejectsProtectedFields(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]interface{}
	}{
		{"role escalation", map[string]interface{}{"role": "admin"}},
		{"identity rewrite", map[string]interface{}{"userId": "someone-else"}},
		{"email rewrite", map[string]interface{}{"email": "other@bnoy.in"}},
		{"mixed with allowed key", map[string]interface{}{"fullName": "Asha Rao", "role": "merchant"}},
		{"unknown key", map[string]interface{}{"createdAt": "2020-01-01"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := &fakeProfileStore{profile: &domain.Profile{UserID: "u1", Role: domain.Student}}
			service := NewProfileService(store, trace.NewNoopTracerProvider().Tracer("test"))

			_, err := service.UpdateProfile(context.Background(), "u1", test.fields)
			if err == nil || err.Error() != errors.ImmutableProfileField {
				t.Fatalf("UpdateProfile returned %v, want %q", err, errors.ImmutableProfileField)
			}
			if len(store.updates) != 0 {
				t.Fatalf("store got %d updates, want none", len(store.updates))
			}
		})
	}
}
