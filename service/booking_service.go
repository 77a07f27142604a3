package application

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/gocql/gocql"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/realtime"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/session"
)

type BookingService struct {
	bookings        domain.BookingStore
	properties      domain.PropertyStore
	recommendations domain.RecommendationStore
	feed            *realtime.Feed
	tracer          trace.Tracer

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewBookingService(bookings domain.BookingStore, properties domain.PropertyStore, recommendations domain.RecommendationStore, feed *realtime.Feed, tracer trace.Tracer) *BookingService {
	return &BookingService{
		bookings:        bookings,
		properties:      properties,
		recommendations: recommendations,
		feed:            feed,
		tracer:          tracer,
		inFlight:        make(map[string]bool),
	}
}

// PriceDraft resolves the room (when one is referenced), re-runs the price
// derivation and returns the draft with its selected room populated. Called
// by the form view on every date or room change.
func (service *BookingService) PriceDraft(ctx context.Context, draft *domain.BookingDraft) (*domain.BookingDraft, int, int, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.PriceDraft")
	defer span.End()

	if err := service.resolveRoom(ctx, draft); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, 0, err
	}

	total, err := draft.TotalAmount()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, 0, err
	}
	payable, err := draft.TotalPayable()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, 0, err
	}

	return draft, total, payable, nil
}

// Submit converts a draft into a persisted booking exactly once. The only
// duplicate protection is the per-user in-flight flag, mirroring a disabled
// submit control.
func (service *BookingService) Submit(ctx context.Context, userID string, draft *domain.BookingDraft) (*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.Submit")
	defer span.End()

	if userID == "" {
		span.SetStatus(codes.Error, errors.UnauthenticatedError)
		return nil, session.ErrUnauthenticated
	}

	if !service.beginSubmit(userID, draft.PropertyID) {
		return nil, fmt.Errorf("a booking submission is already in flight")
	}
	defer service.endSubmit(userID, draft.PropertyID)

	if err := service.resolveRoom(ctx, draft); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	hasRooms, err := service.propertyHasRooms(ctx, draft.PropertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := draft.Validate(hasRooms); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	booking, err := draft.ToBooking(userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	created, err := service.bookings.Insert(ctx, booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := service.recommendations.RecordBooking(ctx, userID, draft.PropertyID); err != nil {
		// The booking stands; the graph catches up on the next one.
		log.Println("recommendation record error:", err)
	}

	if err := service.feed.Publish("bookings", "INSERT", map[string]interface{}{
		"id":         created.ID.String(),
		"userId":     created.UserID,
		"propertyId": created.PropertyID,
	}); err != nil {
		log.Println("change feed publish error:", err)
	}

	return created, nil
}

// Get re-fetches a booking row for the confirmation view.
func (service *BookingService) Get(ctx context.Context, userID string, id gocql.UUID) (*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.Get")
	defer span.End()

	return service.bookings.Get(ctx, userID, id)
}

func (service *BookingService) GetByUser(ctx context.Context, userID string) (domain.Bookings, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.GetByUser")
	defer span.End()

	return service.bookings.GetByUser(ctx, userID)
}

func (service *BookingService) GetByProperty(ctx context.Context, propertyID string) (domain.Bookings, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.GetByProperty")
	defer span.End()

	return service.bookings.GetByProperty(ctx, propertyID)
}

func (service *BookingService) Cancel(ctx context.Context, userID string, id gocql.UUID) error {
	ctx, span := service.tracer.Start(ctx, "BookingService.Cancel")
	defer span.End()

	err := service.bookings.Cancel(ctx, userID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := service.feed.Publish("bookings", "UPDATE", map[string]interface{}{
		"id":     id.String(),
		"userId": userID,
		"status": string(domain.BookingCancelled),
	}); err != nil {
		log.Println("change feed publish error:", err)
	}
	return nil
}

// resolveRoom loads the referenced room into the draft when a room id is
// set but no room is attached yet.
func (service *BookingService) resolveRoom(ctx context.Context, draft *domain.BookingDraft) error {
	if draft.RoomID == "" || draft.SelectedRoom != nil {
		return nil
	}

	roomID, err := primitive.ObjectIDFromHex(draft.RoomID)
	if err != nil {
		return err
	}

	room, err := service.properties.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return fmt.Errorf(errors.RoomNotAvailableError)
	}
	if !room.Available {
		return fmt.Errorf(errors.RoomNotAvailableError)
	}

	draft.SelectedRoom = room
	return nil
}

func (service *BookingService) propertyHasRooms(ctx context.Context, propertyID string) (bool, error) {
	rooms, err := service.properties.GetRooms(ctx, propertyID)
	if err != nil {
		return false, err
	}
	return len(rooms) > 0, nil
}

func (service *BookingService) beginSubmit(userID, propertyID string) bool {
	key := userID + ":" + propertyID
	service.mu.Lock()
	defer service.mu.Unlock()
	if service.inFlight[key] {
		return false
	}
	service.inFlight[key] = true
	return true
}

func (service *BookingService) endSubmit(userID, propertyID string) {
	key := userID + ":" + propertyID
	service.mu.Lock()
	defer service.mu.Unlock()
	delete(service.inFlight, key)
}
