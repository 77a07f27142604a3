package store

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gocql/gocql"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

// Bookings live in Cassandra under two query tables, one keyed by user and
// one by property, written together on every insert.
type BookingCassandraStore struct {
	session *gocql.Session
	logger  *log.Logger
	tracer  trace.Tracer
}

func NewBookingCassandraStore(tracer trace.Tracer, logger *log.Logger) (*BookingCassandraStore, error) {
	db := os.Getenv("BOOKINGS_DB_HOST")

	// Connect to default keyspace
	cluster := gocql.NewCluster(db)
	cluster.Keyspace = "system"
	session, err := cluster.CreateSession()
	if err != nil {
		logger.Println(err)
		return nil, err
	}

	// Create 'booking' keyspace
	err = session.Query(
		fmt.Sprintf(`CREATE KEYSPACE IF NOT EXISTS %s
					WITH replication = {
						'class' : 'SimpleStrategy',
						'replication_factor' : %d
					}`, "booking", 1)).Exec()
	if err != nil {
		logger.Println(err)
	}
	session.Close()

	// Connect to booking keyspace
	cluster.Keyspace = "booking"
	cluster.Consistency = gocql.One
	session, err = cluster.CreateSession()
	if err != nil {
		logger.Println(err)
		return nil, err
	}

	return &BookingCassandraStore{
		session: session,
		logger:  logger,
		tracer:  tracer,
	}, nil
}

// Disconnect from database
func (store *BookingCassandraStore) CloseSession() {
	store.session.Close()
}

// Create tables
func (store *BookingCassandraStore) CreateTables() {
	columns := `(by_userId text, booking_id UUID, property_id text, room_id text,
				check_in_date TIMESTAMP, check_out_date TIMESTAMP,
				check_in_time text, check_out_time text, time_frame text,
				unit_price int, total_amount int, guests int,
				special_requests text, status text, payment_status text, created_at TIMESTAMP,`

	err := store.session.Query(
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s %s
					PRIMARY KEY ((by_userId), booking_id))
					WITH CLUSTERING ORDER BY (booking_id ASC)`, "booking_by_user", columns)).Exec()
	if err != nil {
		store.logger.Println(err)
	}

	err = store.session.Query(
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s %s
					PRIMARY KEY ((property_id), booking_id))
					WITH CLUSTERING ORDER BY (booking_id ASC)`, "booking_by_property", columns)).Exec()
	if err != nil {
		store.logger.Println(err)
	}
}

func (store *BookingCassandraStore) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Insert")
	defer span.End()

	bookingID, _ := gocql.RandomUUID()
	booking.ID = bookingID

	for _, table := range []string{"booking_by_user", "booking_by_property"} {
		err := store.session.Query(
			fmt.Sprintf(`INSERT INTO %s (by_userId, booking_id, property_id, room_id,
				check_in_date, check_out_date, check_in_time, check_out_time, time_frame,
				unit_price, total_amount, guests, special_requests, status, payment_status, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, table),
			booking.UserID, booking.ID, booking.PropertyID, booking.RoomID,
			booking.CheckInDate, booking.CheckOutDate, booking.CheckInTime, booking.CheckOutTime,
			string(booking.TimeFrame), booking.UnitPrice, booking.TotalAmount, booking.NumberOfGuests,
			booking.SpecialRequests, string(booking.Status), booking.PaymentStatus, booking.CreatedAt).Exec()
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			store.logger.Println(err)
			return nil, err
		}
	}

	return booking, nil
}

func (store *BookingCassandraStore) Get(ctx context.Context, userID string, id gocql.UUID) (*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Get")
	defer span.End()

	scanner := store.session.Query(
		`SELECT by_userId, booking_id, property_id, room_id, check_in_date, check_out_date,
			check_in_time, check_out_time, time_frame, unit_price, total_amount, guests,
			special_requests, status, payment_status, created_at
		FROM booking_by_user WHERE by_userId = ? AND booking_id = ?`,
		userID, id).Iter().Scanner()

	for scanner.Next() {
		booking, err := scanBooking(scanner)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		return booking, nil
	}
	if err := scanner.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return nil, nil
}

func (store *BookingCassandraStore) GetByUser(ctx context.Context, userID string) (domain.Bookings, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.GetByUser")
	defer span.End()

	scanner := store.session.Query(
		`SELECT by_userId, booking_id, property_id, room_id, check_in_date, check_out_date,
			check_in_time, check_out_time, time_frame, unit_price, total_amount, guests,
			special_requests, status, payment_status, created_at
		FROM booking_by_user WHERE by_userId = ?`,
		userID).Iter().Scanner()

	return collectBookings(scanner, store.logger)
}

func (store *BookingCassandraStore) GetByProperty(ctx context.Context, propertyID string) (domain.Bookings, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.GetByProperty")
	defer span.End()

	scanner := store.session.Query(
		`SELECT by_userId, booking_id, property_id, room_id, check_in_date, check_out_date,
			check_in_time, check_out_time, time_frame, unit_price, total_amount, guests,
			special_requests, status, payment_status, created_at
		FROM booking_by_property WHERE property_id = ?`,
		propertyID).Iter().Scanner()

	return collectBookings(scanner, store.logger)
}

// Cancel only flips the status; every other transition belongs to the back
// office.
func (store *BookingCassandraStore) Cancel(ctx context.Context, userID string, id gocql.UUID) error {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Cancel")
	defer span.End()

	booking, err := store.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("booking not found")
	}

	err = store.session.Query(
		`UPDATE booking_by_user SET status = ? WHERE by_userId = ? AND booking_id = ?`,
		string(domain.BookingCancelled), userID, id).Exec()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = store.session.Query(
		`UPDATE booking_by_property SET status = ? WHERE property_id = ? AND booking_id = ?`,
		string(domain.BookingCancelled), booking.PropertyID, id).Exec()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func collectBookings(scanner gocql.Scanner, logger *log.Logger) (domain.Bookings, error) {
	var bookings domain.Bookings
	for scanner.Next() {
		booking, err := scanBooking(scanner)
		if err != nil {
			logger.Println(err)
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := scanner.Err(); err != nil {
		logger.Println(err)
		return nil, err
	}
	return bookings, nil
}

func scanBooking(scanner gocql.Scanner) (*domain.Booking, error) {
	var booking domain.Booking
	var timeFrame, status string
	err := scanner.Scan(&booking.UserID, &booking.ID, &booking.PropertyID, &booking.RoomID,
		&booking.CheckInDate, &booking.CheckOutDate, &booking.CheckInTime, &booking.CheckOutTime,
		&timeFrame, &booking.UnitPrice, &booking.TotalAmount, &booking.NumberOfGuests,
		&booking.SpecialRequests, &status, &booking.PaymentStatus, &booking.CreatedAt)
	if err != nil {
		return nil, err
	}
	booking.TimeFrame = domain.TimeFrame(timeFrame)
	booking.Status = domain.BookingStatus(status)
	return &booking, nil
}
