package application

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/cache"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/realtime"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/storage"
)

type PropertyService struct {
	store      domain.PropertyStore
	images     *storage.FileStorage
	imageCache *cache.ImageCache
	feed       *realtime.Feed
	tracer     trace.Tracer
}

func NewPropertyService(store domain.PropertyStore, images *storage.FileStorage, imageCache *cache.ImageCache, feed *realtime.Feed, tracer trace.Tracer) *PropertyService {
	return &PropertyService{
		store:      store,
		images:     images,
		imageCache: imageCache,
		feed:       feed,
		tracer:     tracer,
	}
}

func (service *PropertyService) Create(ctx context.Context, merchantID string, property *domain.Property) (*domain.Property, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.Create")
	defer span.End()

	property.MerchantID = merchantID
	created, err := service.store.Insert(ctx, property)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := service.feed.Publish("properties", "INSERT", map[string]interface{}{
		"id": created.ID.Hex(),
	}); err != nil {
		log.Println("change feed publish error:", err)
	}

	return created, nil
}

func (service *PropertyService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.Get")
	defer span.End()

	return service.store.Get(ctx, id)
}

func (service *PropertyService) GetAll(ctx context.Context) (domain.Properties, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.GetAll")
	defer span.End()

	return service.store.GetAll(ctx)
}

func (service *PropertyService) GetByMerchant(ctx context.Context, merchantID string) (domain.Properties, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.GetByMerchant")
	defer span.End()

	return service.store.GetByMerchant(ctx, merchantID)
}

func (service *PropertyService) Search(ctx context.Context, filter *domain.PropertyFilter) (domain.Properties, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.Search")
	defer span.End()

	return service.store.Search(ctx, filter)
}

func (service *PropertyService) Update(ctx context.Context, merchantID string, property *domain.Property) error {
	ctx, span := service.tracer.Start(ctx, "PropertyService.Update")
	defer span.End()

	existing, err := service.store.Get(ctx, property.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf(errors.PropertyNotFoundError)
	}
	if existing.MerchantID != merchantID {
		return fmt.Errorf("property belongs to another merchant")
	}

	if err := service.store.Update(ctx, property); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := service.feed.Publish("properties", "UPDATE", map[string]interface{}{
		"id": property.ID.Hex(),
	}); err != nil {
		log.Println("change feed publish error:", err)
	}
	return nil
}

func (service *PropertyService) Delete(ctx context.Context, merchantID string, id primitive.ObjectID) error {
	ctx, span := service.tracer.Start(ctx, "PropertyService.Delete")
	defer span.End()

	existing, err := service.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf(errors.PropertyNotFoundError)
	}
	if existing.MerchantID != merchantID {
		return fmt.Errorf("property belongs to another merchant")
	}

	if err := service.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := service.feed.Publish("properties", "DELETE", map[string]interface{}{
		"id": id.Hex(),
	}); err != nil {
		log.Println("change feed publish error:", err)
	}
	return nil
}

func (service *PropertyService) AddRoom(ctx context.Context, room *domain.PropertyRoom) (*domain.PropertyRoom, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.AddRoom")
	defer span.End()

	created, err := service.store.InsertRoom(ctx, room)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := service.feed.Publish("rooms", "INSERT", map[string]interface{}{
		"id":         created.ID.Hex(),
		"propertyId": created.PropertyID,
	}); err != nil {
		log.Println("change feed publish error:", err)
	}
	return created, nil
}

func (service *PropertyService) GetRooms(ctx context.Context, propertyID string) (domain.PropertyRooms, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.GetRooms")
	defer span.End()

	return service.store.GetRooms(ctx, propertyID)
}

// UploadImage writes to HDFS first and then warms the cache; a cache miss
// later falls back to HDFS.
func (service *PropertyService) UploadImage(ctx context.Context, propertyID, imageName string, content []byte) (string, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.UploadImage")
	defer span.End()

	if err := service.images.SaveImage(ctx, propertyID, imageName, content); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	if err := service.imageCache.Post(ctx, propertyID, imageName, content); err != nil {
		log.Println("image cache error:", err)
	}

	return service.images.PublicURL(propertyID, imageName), nil
}

func (service *PropertyService) GetImage(ctx context.Context, propertyID, imageName string) ([]byte, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.GetImage")
	defer span.End()

	if service.imageCache.Exists(propertyID, imageName) {
		return service.imageCache.Get(ctx, propertyID, imageName)
	}

	content, err := service.images.GetImageContent(ctx, propertyID, imageName)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := service.imageCache.Post(ctx, propertyID, imageName, content); err != nil {
		log.Println("image cache error:", err)
	}
	return content, nil
}

func (service *PropertyService) GetImageURLs(ctx context.Context, propertyID string) ([]string, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.GetImageURLs")
	defer span.End()

	if urls, err := service.imageCache.GetUrls(ctx, propertyID); err == nil && len(urls) > 0 {
		return urls, nil
	}

	names, err := service.images.GetImageNames(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(names))
	for _, name := range names {
		urls = append(urls, service.images.PublicURL(propertyID, name))
	}

	if err := service.imageCache.PostUrls(ctx, propertyID, urls); err != nil {
		log.Println("image cache error:", err)
	}
	return urls, nil
}
