package application

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/go-redis/redis"
	"github.com/gocql/gocql"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/realtime"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/session"
)

type fakeBookingStore struct {
	inserted []*domain.Booking
	block    chan struct{}
}

func (s *fakeBookingStore) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if s.block != nil {
		<-s.block
	}
	s.inserted = append(s.inserted, booking)
	return booking, nil
}

func (s *fakeBookingStore) Get(ctx context.Context, userID string, id gocql.UUID) (*domain.Booking, error) {
	return nil, nil
}

func (s *fakeBookingStore) GetByUser(ctx context.Context, userID string) (domain.Bookings, error) {
	return nil, nil
}

func (s *fakeBookingStore) GetByProperty(ctx context.Context, propertyID string) (domain.Bookings, error) {
	return nil, nil
}

func (s *fakeBookingStore) Cancel(ctx context.Context, userID string, id gocql.UUID) error {
	return nil
}

type fakePropertyStore struct {
	rooms domain.PropertyRooms
}

func (s *fakePropertyStore) Insert(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	return property, nil
}

func (s *fakePropertyStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	return nil, nil
}

func (s *fakePropertyStore) GetAll(ctx context.Context) (domain.Properties, error) {
	return nil, nil
}

func (s *fakePropertyStore) GetByMerchant(ctx context.Context, merchantID string) (domain.Properties, error) {
	return nil, nil
}

func (s *fakePropertyStore) Search(ctx context.Context, filter *domain.PropertyFilter) (domain.Properties, error) {
	return nil, nil
}

func (s *fakePropertyStore) Update(ctx context.Context, property *domain.Property) error {
	return nil
}

func (s *fakePropertyStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (s *fakePropertyStore) InsertRoom(ctx context.Context, room *domain.PropertyRoom) (*domain.PropertyRoom, error) {
	return room, nil
}

func (s *fakePropertyStore) GetRoom(ctx context.Context, id primitive.ObjectID) (*domain.PropertyRoom, error) {
	for _, room := range s.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return nil, nil
}

func (s *fakePropertyStore) GetRooms(ctx context.Context, propertyID string) (domain.PropertyRooms, error) {
	return s.rooms, nil
}

type fakeRecommendationStore struct {
	recorded int
}

func (s *fakeRecommendationStore) RecordBooking(ctx context.Context, userID, propertyID string) error {
	s.recorded++
	return nil
}

func (s *fakeRecommendationStore) TopProperties(ctx context.Context, limit int) ([]*domain.ScoredProperty, error) {
	return nil, nil
}

func testFeed() *realtime.Feed {
	// Points at nothing; publish errors are logged and swallowed.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	return realtime.NewFeed(client, log.New(io.Discard, "", 0))
}

func newTestBookingService(bookings domain.BookingStore, properties domain.PropertyStore) (*BookingService, *fakeRecommendationStore) {
	recommendations := &fakeRecommendationStore{}
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	return NewBookingService(bookings, properties, recommendations, testFeed(), tracer), recommendations
}

func monthlyDraft(propertyID string) *domain.BookingDraft {
	return &domain.BookingDraft{
		PropertyID:     propertyID,
		TimeFrame:      domain.Monthly,
		CheckInDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		NumberOfGuests: 1,
		BasePrice:      6000,
	}
}

func TestSubmitRequiresAuthentication(t *testing.T) {
	bookings := &fakeBookingStore{}
	service, _ := newTestBookingService(bookings, &fakePropertyStore{})

	_, err := service.Submit(context.Background(), "", monthlyDraft("p1"))
	if err != session.ErrUnauthenticated {
		t.Fatalf("Submit() error = %v, want ErrUnauthenticated", err)
	}
	if len(bookings.inserted) != 0 {
		t.Errorf("unauthenticated submit reached the store: %d inserts", len(bookings.inserted))
	}
}

func TestSubmitPersistsAndRecords(t *testing.T) {
	bookings := &fakeBookingStore{}
	service, recommendations := newTestBookingService(bookings, &fakePropertyStore{})

	booking, err := service.Submit(context.Background(), "u1", monthlyDraft("p1"))
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if booking.Status != domain.BookingPending {
		t.Errorf("Status = %q, want pending", booking.Status)
	}
	if booking.TotalAmount != 6000 {
		t.Errorf("TotalAmount = %d, want 6000", booking.TotalAmount)
	}
	if len(bookings.inserted) != 1 {
		t.Fatalf("inserted %d bookings, want 1", len(bookings.inserted))
	}
	if recommendations.recorded != 1 {
		t.Errorf("recorded %d graph bookings, want 1", recommendations.recorded)
	}
}

func TestSubmitResolvesRoom(t *testing.T) {
	roomID := primitive.NewObjectID()
	properties := &fakePropertyStore{
		rooms: domain.PropertyRooms{
			{ID: roomID, PropertyID: "p1", MonthlyPrice: 8000, Capacity: 2, SecurityDeposit: 2000, Available: true},
		},
	}
	bookings := &fakeBookingStore{}
	service, _ := newTestBookingService(bookings, properties)

	draft := monthlyDraft("p1")
	draft.RoomID = roomID.Hex()

	booking, err := service.Submit(context.Background(), "u1", draft)
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if booking.TotalAmount != 8000 {
		t.Errorf("TotalAmount = %d, want room monthly price 8000", booking.TotalAmount)
	}
}

func TestSubmitRejectsUnavailableRoom(t *testing.T) {
	roomID := primitive.NewObjectID()
	properties := &fakePropertyStore{
		rooms: domain.PropertyRooms{
			{ID: roomID, PropertyID: "p1", MonthlyPrice: 8000, Capacity: 2, Available: false},
		},
	}
	bookings := &fakeBookingStore{}
	service, _ := newTestBookingService(bookings, properties)

	draft := monthlyDraft("p1")
	draft.RoomID = roomID.Hex()

	if _, err := service.Submit(context.Background(), "u1", draft); err == nil {
		t.Fatal("Submit() accepted an unavailable room")
	}
	if len(bookings.inserted) != 0 {
		t.Errorf("rejected submit reached the store: %d inserts", len(bookings.inserted))
	}
}

func TestSubmitRequiresRoomWhenPropertyHasThem(t *testing.T) {
	properties := &fakePropertyStore{
		rooms: domain.PropertyRooms{
			{ID: primitive.NewObjectID(), PropertyID: "p1", MonthlyPrice: 8000, Capacity: 2, Available: true},
		},
	}
	bookings := &fakeBookingStore{}
	service, _ := newTestBookingService(bookings, properties)

	_, err := service.Submit(context.Background(), "u1", monthlyDraft("p1"))
	if err != domain.ErrRoomRequired {
		t.Fatalf("Submit() error = %v, want ErrRoomRequired", err)
	}
}

func TestSubmitDeduplicatesInFlight(t *testing.T) {
	bookings := &fakeBookingStore{block: make(chan struct{})}
	service, _ := newTestBookingService(bookings, &fakePropertyStore{})

	first := make(chan error, 1)
	go func() {
		_, err := service.Submit(context.Background(), "u1", monthlyDraft("p1"))
		first <- err
	}()

	// Wait until the first submission holds the in-flight flag.
	for i := 0; i < 100; i++ {
		service.mu.Lock()
		held := service.inFlight["u1:p1"]
		service.mu.Unlock()
		if held {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := service.Submit(context.Background(), "u1", monthlyDraft("p1")); err == nil {
		t.Fatal("second submit was not rejected while the first was in flight")
	}

	close(bookings.block)
	if err := <-first; err != nil {
		t.Fatalf("first Submit() error: %v", err)
	}
	if len(bookings.inserted) != 1 {
		t.Errorf("inserted %d bookings, want exactly 1", len(bookings.inserted))
	}
}

func TestPriceDraft(t *testing.T) {
	roomID := primitive.NewObjectID()
	properties := &fakePropertyStore{
		rooms: domain.PropertyRooms{
			{ID: roomID, PropertyID: "p1", MonthlyPrice: 8000, DailyPrice: 500, Capacity: 2, SecurityDeposit: 2000, Available: true},
		},
	}
	service, _ := newTestBookingService(&fakeBookingStore{}, properties)

	checkOut := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
	draft := &domain.BookingDraft{
		PropertyID:     "p1",
		RoomID:         roomID.Hex(),
		TimeFrame:      domain.Daily,
		CheckInDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:   &checkOut,
		NumberOfGuests: 2,
	}

	priced, total, payable, err := service.PriceDraft(context.Background(), draft)
	if err != nil {
		t.Fatalf("PriceDraft() error: %v", err)
	}
	if priced.SelectedRoom == nil {
		t.Fatal("PriceDraft() did not resolve the room")
	}
	if total != 1500 {
		t.Errorf("total = %d, want 1500", total)
	}
	if payable != 3500 {
		t.Errorf("payable = %d, want 3500", payable)
	}
}
