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

const favoriteCollection = "favorites"

type FavoriteMongoDBStore struct {
	favorites *mongo.Collection
	tracer    trace.Tracer
}

func NewFavoriteMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.FavoriteStore {
	favorites := client.Database(reviewDatabase).Collection(favoriteCollection)
	return &FavoriteMongoDBStore{
		favorites: favorites,
		tracer:    tracer,
	}
}

func (store *FavoriteMongoDBStore) Insert(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error) {
	ctx, span := store.tracer.Start(ctx, "FavoriteStore.Insert")
	defer span.End()

	favorite.ID = primitive.NewObjectID()
	favorite.CreatedAt = time.Now().UTC()
	result, err := store.favorites.InsertOne(ctx, favorite)
	if err != nil {
		return nil, err
	}
	favorite.ID = result.InsertedID.(primitive.ObjectID)
	return favorite, nil
}

func (store *FavoriteMongoDBStore) Delete(ctx context.Context, userID, propertyID string) error {
	ctx, span := store.tracer.Start(ctx, "FavoriteStore.Delete")
	defer span.End()

	_, err := store.favorites.DeleteOne(ctx, bson.M{"userId": userID, "propertyId": propertyID})
	return err
}

func (store *FavoriteMongoDBStore) GetByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	ctx, span := store.tracer.Start(ctx, "FavoriteStore.GetByUser")
	defer span.End()

	cursor, err := store.favorites.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var favorites []*domain.Favorite
	for cursor.Next(ctx) {
		var favorite domain.Favorite
		if err := cursor.Decode(&favorite); err != nil {
			return nil, err
		}
		favorites = append(favorites, &favorite)
	}
	return favorites, cursor.Err()
}
