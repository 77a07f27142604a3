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
	reviewDatabase   = "engagement"
	reviewCollection = "reviews"
)

type ReviewMongoDBStore struct {
	reviews *mongo.Collection
	tracer  trace.Tracer
}

func NewReviewMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.ReviewStore {
	reviews := client.Database(reviewDatabase).Collection(reviewCollection)
	return &ReviewMongoDBStore{
		reviews: reviews,
		tracer:  tracer,
	}
}

func (store *ReviewMongoDBStore) Insert(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	ctx, span := store.tracer.Start(ctx, "ReviewStore.Insert")
	defer span.End()

	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now().UTC()
	result, err := store.reviews.InsertOne(ctx, review)
	if err != nil {
		return nil, err
	}
	review.ID = result.InsertedID.(primitive.ObjectID)
	return review, nil
}

func (store *ReviewMongoDBStore) GetByProperty(ctx context.Context, propertyID string) (domain.Reviews, error) {
	ctx, span := store.tracer.Start(ctx, "ReviewStore.GetByProperty")
	defer span.End()

	cursor, err := store.reviews.Find(ctx, bson.M{"propertyId": propertyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews domain.Reviews
	for cursor.Next(ctx) {
		var review domain.Review
		if err := cursor.Decode(&review); err != nil {
			return nil, err
		}
		reviews = append(reviews, &review)
	}
	return reviews, cursor.Err()
}

func (store *ReviewMongoDBStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "ReviewStore.Delete")
	defer span.End()

	_, err := store.reviews.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
