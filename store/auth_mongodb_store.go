package store

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

const (
	authDatabase   = "user_credentials"
	authCollection = "credentials"
)

type AuthMongoDBStore struct {
	credentials *mongo.Collection
	tracer      trace.Tracer
}

func NewAuthMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.AuthStore {
	credentials := client.Database(authDatabase).Collection(authCollection)
	return &AuthMongoDBStore{
		credentials: credentials,
		tracer:      tracer,
	}
}

func (store *AuthMongoDBStore) Register(ctx context.Context, credentials *domain.Credentials) error {
	ctx, span := store.tracer.Start(ctx, "AuthStore.Register")
	defer span.End()

	credentials.ID = primitive.NewObjectID()
	result, err := store.credentials.InsertOne(ctx, credentials)
	if err != nil {
		return err
	}
	credentials.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (store *AuthMongoDBStore) GetOneUser(ctx context.Context, email string) (*domain.Credentials, error) {
	ctx, span := store.tracer.Start(ctx, "AuthStore.GetOneUser")
	defer span.End()

	filter := bson.M{"email": email}
	return store.filterOne(ctx, filter)
}

func (store *AuthMongoDBStore) GetOneUserByID(ctx context.Context, id primitive.ObjectID) *domain.Credentials {
	ctx, span := store.tracer.Start(ctx, "AuthStore.GetOneUserByID")
	defer span.End()

	credentials, err := store.filterOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Println("Error fetching credentials:", err)
		return nil
	}
	return credentials
}

func (store *AuthMongoDBStore) GetAll(ctx context.Context) ([]*domain.Credentials, error) {
	ctx, span := store.tracer.Start(ctx, "AuthStore.GetAll")
	defer span.End()

	cursor, err := store.credentials.Find(ctx, bson.D{{}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var all []*domain.Credentials
	for cursor.Next(ctx) {
		var credentials domain.Credentials
		if err := cursor.Decode(&credentials); err != nil {
			return nil, err
		}
		all = append(all, &credentials)
	}
	return all, cursor.Err()
}

func (store *AuthMongoDBStore) UpdateUser(ctx context.Context, credentials *domain.Credentials) error {
	ctx, span := store.tracer.Start(ctx, "AuthStore.UpdateUser")
	defer span.End()

	_, err := store.credentials.UpdateOne(ctx, bson.M{"_id": credentials.ID}, bson.M{"$set": credentials})
	return err
}

func (store *AuthMongoDBStore) filterOne(ctx context.Context, filter interface{}) (*domain.Credentials, error) {
	result := store.credentials.FindOne(ctx, filter)

	var credentials domain.Credentials
	if err := result.Decode(&credentials); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		log.Println("Error decoding credentials:", err)
		return nil, err
	}
	return &credentials, nil
}
