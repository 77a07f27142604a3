package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

const (
	profileDatabase   = "user"
	profileCollection = "profiles"
)

type ProfileMongoDBStore struct {
	profiles *mongo.Collection
	tracer   trace.Tracer
}

func NewProfileMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.ProfileStore {
	profiles := client.Database(profileDatabase).Collection(profileCollection)
	return &ProfileMongoDBStore{
		profiles: profiles,
		tracer:   tracer,
	}
}

func (store *ProfileMongoDBStore) Insert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	ctx, span := store.tracer.Start(ctx, "ProfileStore.Insert")
	defer span.End()

	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now().UTC()
	result, err := store.profiles.InsertOne(ctx, profile)
	if err != nil {
		return nil, err
	}
	profile.ID = result.InsertedID.(primitive.ObjectID)
	return profile, nil
}

func (store *ProfileMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	ctx, span := store.tracer.Start(ctx, "ProfileStore.Get")
	defer span.End()

	return store.filterOne(ctx, bson.M{"_id": id})
}

func (store *ProfileMongoDBStore) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, span := store.tracer.Start(ctx, "ProfileStore.GetByUserID")
	defer span.End()

	return store.filterOne(ctx, bson.M{"userId": userID})
}

func (store *ProfileMongoDBStore) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	ctx, span := store.tracer.Start(ctx, "ProfileStore.GetByEmail")
	defer span.End()

	return store.filterOne(ctx, bson.M{"email": email})
}

func (store *ProfileMongoDBStore) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	ctx, span := store.tracer.Start(ctx, "ProfileStore.GetAll")
	defer span.End()

	cursor, err := store.profiles.Find(ctx, bson.D{{}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var all []*domain.Profile
	for cursor.Next(ctx) {
		var profile domain.Profile
		if err := cursor.Decode(&profile); err != nil {
			return nil, err
		}
		all = append(all, &profile)
	}
	return all, cursor.Err()
}

func (store *ProfileMongoDBStore) Update(ctx context.Context, profile *domain.Profile) error {
	ctx, span := store.tracer.Start(ctx, "ProfileStore.Update")
	defer span.End()

	_, err := store.profiles.UpdateOne(ctx, bson.M{"_id": profile.ID}, bson.M{"$set": profile})
	return err
}

// UpdateFields applies a partial update and returns the stored row after
// the write, so callers only cache what the database accepted.
func (store *ProfileMongoDBStore) UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) (*domain.Profile, error) {
	ctx, span := store.tracer.Start(ctx, "ProfileStore.UpdateFields")
	defer span.End()

	update := bson.M{}
	for key, value := range fields {
		update[key] = value
	}

	_, err := store.profiles.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": update})
	if err != nil {
		return nil, err
	}
	return store.GetByUserID(ctx, userID)
}

func (store *ProfileMongoDBStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "ProfileStore.Delete")
	defer span.End()

	_, err := store.profiles.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (store *ProfileMongoDBStore) filterOne(ctx context.Context, filter interface{}) (*domain.Profile, error) {
	result := store.profiles.FindOne(ctx, filter)

	var profile domain.Profile
	if err := result.Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
