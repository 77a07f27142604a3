package domain

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gocql/gocql"
)

type TimeFrame string

const (
	Daily   TimeFrame = "daily"
	Monthly TimeFrame = "monthly"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingCompleted  BookingStatus = "completed"
	BookingProcessing BookingStatus = "processing"
	BookingRefunded   BookingStatus = "refunded"
)

const (
	PaymentPending = "pending"

	DefaultCheckInTime  = "12:00"
	DefaultCheckOutTime = "10:00"
)

var (
	ErrNoDailyRate     = errors.New("selected room has no daily rate")
	ErrCheckOutMissing = errors.New("check-out date is required for daily bookings")
	ErrGuestOverflow   = errors.New("number of guests exceeds room capacity")
	ErrRoomRequired    = errors.New("room selection is required for this property")
)

// BookingDraft is the client-side candidate booking under construction. It is
// never persisted; ToBooking converts it into a row exactly once, on submit.
type BookingDraft struct {
	PropertyID      string        `json:"propertyId" validate:"required"`
	RoomID          string        `json:"roomId,omitempty"`
	CheckInDate     time.Time     `json:"checkInDate" validate:"required"`
	CheckOutDate    *time.Time    `json:"checkOutDate,omitempty"`
	CheckInTime     string        `json:"checkInTime,omitempty"`
	CheckOutTime    string        `json:"checkOutTime,omitempty"`
	NumberOfGuests  int           `json:"numberOfGuests" validate:"gte=1"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	TimeFrame       TimeFrame     `json:"timeFrame" validate:"required,oneof=daily monthly"`
	BasePrice       int           `json:"basePrice" validate:"gte=0"`
	SelectedRoom    *PropertyRoom `json:"selectedRoom,omitempty"`
}

// UnitPrice resolves the price per billing unit. A selected room wins over
// the property-level base price; a room without a daily rate cannot be
// booked daily.
func (d *BookingDraft) UnitPrice() (int, error) {
	if d.SelectedRoom == nil {
		return d.BasePrice, nil
	}
	if d.TimeFrame == Monthly {
		return d.SelectedRoom.MonthlyPrice, nil
	}
	if d.SelectedRoom.DailyPrice == 0 {
		return 0, ErrNoDailyRate
	}
	return d.SelectedRoom.DailyPrice, nil
}

// Units is the billing-unit count. Monthly bookings are always one unit.
// Daily bookings count whole days between check-in and check-out, rounded
// up, never less than one. The difference is taken as an absolute value, so
// an inverted range yields a positive count instead of an error; the pickers
// upstream are expected to prevent that ordering.
func (d *BookingDraft) Units() int {
	if d.TimeFrame == Monthly {
		return 1
	}
	if d.CheckOutDate == nil {
		return 1
	}
	days := math.Abs(d.CheckOutDate.Sub(d.CheckInDate).Hours() / 24)
	units := int(math.Ceil(days))
	if units < 1 {
		units = 1
	}
	return units
}

// TotalAmount is the persisted booking total: unit price times unit count.
// The security deposit is never part of it.
func (d *BookingDraft) TotalAmount() (int, error) {
	unitPrice, err := d.UnitPrice()
	if err != nil {
		return 0, err
	}
	return unitPrice * d.Units(), nil
}

// TotalPayable is the display figure: the booking total plus the selected
// room's security deposit, when there is one.
func (d *BookingDraft) TotalPayable() (int, error) {
	total, err := d.TotalAmount()
	if err != nil {
		return 0, err
	}
	if d.SelectedRoom != nil {
		total += d.SelectedRoom.SecurityDeposit
	}
	return total, nil
}

// Validate enforces the submission rules. propertyHasRooms tells whether the
// property carries a room list; when it does a room must be selected.
func (d *BookingDraft) Validate(propertyHasRooms bool) error {
	validate := validator.New()
	if err := validate.Struct(d); err != nil {
		return err
	}

	if d.TimeFrame == Daily && (d.CheckOutDate == nil || d.CheckOutDate.IsZero()) {
		return ErrCheckOutMissing
	}

	if propertyHasRooms && d.SelectedRoom == nil {
		return ErrRoomRequired
	}

	if d.SelectedRoom != nil && d.SelectedRoom.Capacity >= 1 && d.NumberOfGuests > d.SelectedRoom.Capacity {
		return ErrGuestOverflow
	}

	if _, err := d.UnitPrice(); err != nil {
		return err
	}

	return nil
}

// ToBooking builds the persisted row for the given user. Dates are reduced
// to date-only UTC values; a missing check-out date is substituted with the
// day after check-in; unset times fall back to the house defaults; status
// and payment status are always forced to pending.
func (d *BookingDraft) ToBooking(userID string) (*Booking, error) {
	unitPrice, err := d.UnitPrice()
	if err != nil {
		return nil, err
	}
	total, err := d.TotalAmount()
	if err != nil {
		return nil, err
	}

	checkIn := dateOnly(d.CheckInDate)
	var checkOut time.Time
	if d.CheckOutDate != nil && !d.CheckOutDate.IsZero() {
		checkOut = dateOnly(*d.CheckOutDate)
	} else {
		checkOut = checkIn.AddDate(0, 0, 1)
	}

	checkInTime := d.CheckInTime
	if checkInTime == "" {
		checkInTime = DefaultCheckInTime
	}
	checkOutTime := d.CheckOutTime
	if checkOutTime == "" {
		checkOutTime = DefaultCheckOutTime
	}

	return &Booking{
		UserID:          userID,
		PropertyID:      d.PropertyID,
		RoomID:          d.RoomID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		CheckInTime:     checkInTime,
		CheckOutTime:    checkOutTime,
		TimeFrame:       d.TimeFrame,
		UnitPrice:       unitPrice,
		TotalAmount:     total,
		NumberOfGuests:  d.NumberOfGuests,
		SpecialRequests: d.SpecialRequests,
		Status:          BookingPending,
		PaymentStatus:   PaymentPending,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// cassandra
type Booking struct {
	ID              gocql.UUID    `json:"id" db:"booking_id"`
	UserID          string        `json:"userId" db:"by_userId"`
	PropertyID      string        `json:"propertyId" db:"property_id"`
	RoomID          string        `json:"roomId,omitempty" db:"room_id"`
	CheckInDate     time.Time     `json:"checkInDate" db:"check_in_date"`
	CheckOutDate    time.Time     `json:"checkOutDate" db:"check_out_date"`
	CheckInTime     string        `json:"checkInTime" db:"check_in_time"`
	CheckOutTime    string        `json:"checkOutTime" db:"check_out_time"`
	TimeFrame       TimeFrame     `json:"timeFrame" db:"time_frame"`
	UnitPrice       int           `json:"unitPrice" db:"unit_price"`
	TotalAmount     int           `json:"totalAmount" db:"total_amount"`
	NumberOfGuests  int           `json:"numberOfGuests" db:"guests"`
	SpecialRequests string        `json:"specialRequests,omitempty" db:"special_requests"`
	Status          BookingStatus `json:"status" db:"status"`
	PaymentStatus   string        `json:"paymentStatus" db:"payment_status"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
}

type Bookings []*Booking

func (o *Bookings) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Booking) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *BookingDraft) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}
