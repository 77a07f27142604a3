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
	propertyDatabase   = "property"
	propertyCollection = "properties"
	roomCollection     = "rooms"
)

type PropertyMongoDBStore struct {
	properties *mongo.Collection
	rooms      *mongo.Collection
	tracer     trace.Tracer
}

func NewPropertyMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.PropertyStore {
	database := client.Database(propertyDatabase)
	return &PropertyMongoDBStore{
		properties: database.Collection(propertyCollection),
		rooms:      database.Collection(roomCollection),
		tracer:     tracer,
	}
}

func (store *PropertyMongoDBStore) Insert(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.Insert")
	defer span.End()

	property.ID = primitive.NewObjectID()
	property.CreatedAt = time.Now().UTC()
	result, err := store.properties.InsertOne(ctx, property)
	if err != nil {
		return nil, err
	}
	property.ID = result.InsertedID.(primitive.ObjectID)
	return property, nil
}

func (store *PropertyMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.Get")
	defer span.End()

	result := store.properties.FindOne(ctx, bson.M{"_id": id})

	var property domain.Property
	if err := result.Decode(&property); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &property, nil
}

func (store *PropertyMongoDBStore) GetAll(ctx context.Context) (domain.Properties, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.GetAll")
	defer span.End()

	return store.filter(ctx, bson.D{{}})
}

func (store *PropertyMongoDBStore) GetByMerchant(ctx context.Context, merchantID string) (domain.Properties, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.GetByMerchant")
	defer span.End()

	return store.filter(ctx, bson.M{"merchantId": merchantID})
}

// Search maps the list-view predicates onto one mongo filter: city is a
// case-insensitive substring, the price ceiling applies to the field that
// matches the requested time frame.
func (store *PropertyMongoDBStore) Search(ctx context.Context, propertyFilter *domain.PropertyFilter) (domain.Properties, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.Search")
	defer span.End()

	filter := bson.M{}
	if propertyFilter.City != "" {
		filter["city"] = bson.M{"$regex": propertyFilter.City, "$options": "i"}
	}
	if propertyFilter.Type != "" {
		filter["type"] = propertyFilter.Type
	}
	if propertyFilter.MaxPrice > 0 {
		priceField := "monthlyPrice"
		if propertyFilter.TimeFrame == domain.Daily {
			priceField = "dailyPrice"
		}
		filter[priceField] = bson.M{"$lte": propertyFilter.MaxPrice}
	}

	return store.filter(ctx, filter)
}

func (store *PropertyMongoDBStore) Update(ctx context.Context, property *domain.Property) error {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.Update")
	defer span.End()

	_, err := store.properties.UpdateOne(ctx, bson.M{"_id": property.ID}, bson.M{"$set": property})
	return err
}

func (store *PropertyMongoDBStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.Delete")
	defer span.End()

	_, err := store.properties.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (store *PropertyMongoDBStore) InsertRoom(ctx context.Context, room *domain.PropertyRoom) (*domain.PropertyRoom, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.InsertRoom")
	defer span.End()

	room.ID = primitive.NewObjectID()
	result, err := store.rooms.InsertOne(ctx, room)
	if err != nil {
		return nil, err
	}
	room.ID = result.InsertedID.(primitive.ObjectID)
	return room, nil
}

func (store *PropertyMongoDBStore) GetRoom(ctx context.Context, id primitive.ObjectID) (*domain.PropertyRoom, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.GetRoom")
	defer span.End()

	result := store.rooms.FindOne(ctx, bson.M{"_id": id})

	var room domain.PropertyRoom
	if err := result.Decode(&room); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (store *PropertyMongoDBStore) GetRooms(ctx context.Context, propertyID string) (domain.PropertyRooms, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.GetRooms")
	defer span.End()

	cursor, err := store.rooms.Find(ctx, bson.M{"propertyId": propertyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rooms domain.PropertyRooms
	for cursor.Next(ctx) {
		var room domain.PropertyRoom
		if err := cursor.Decode(&room); err != nil {
			return nil, err
		}
		rooms = append(rooms, &room)
	}
	return rooms, cursor.Err()
}

func (store *PropertyMongoDBStore) filter(ctx context.Context, filter interface{}) (domain.Properties, error) {
	cursor, err := store.properties.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties domain.Properties
	for cursor.Next(ctx) {
		var property domain.Property
		if err := cursor.Decode(&property); err != nil {
			return nil, err
		}
		properties = append(properties, &property)
	}
	return properties, cursor.Err()
}
