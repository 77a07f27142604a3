package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func testRoom() *PropertyRoom {
	return &PropertyRoom{
		Name:            "Deluxe",
		MonthlyPrice:    8000,
		DailyPrice:      500,
		Capacity:        2,
		SecurityDeposit: 2000,
		Available:       true,
	}
}

func TestUnitsDaily(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut *time.Time
		want     int
	}{
		{"three nights", date(2024, 6, 1), datePtr(2024, 6, 4), 3},
		{"single night", date(2024, 6, 1), datePtr(2024, 6, 2), 1},
		{"same day floors to one", date(2024, 6, 1), datePtr(2024, 6, 1), 1},
		{"missing check-out defaults to one", date(2024, 6, 1), nil, 1},
		{"inverted range counts forward", date(2024, 6, 4), datePtr(2024, 6, 1), 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			draft := &BookingDraft{
				PropertyID:   "p1",
				TimeFrame:    Daily,
				CheckInDate:  c.checkIn,
				CheckOutDate: c.checkOut,
			}
			if got := draft.Units(); got != c.want {
				t.Errorf("Units() = %d, want %d", got, c.want)
			}
		})
	}
}

func TestUnitsMonthlyIgnoresDates(t *testing.T) {
	draft := &BookingDraft{
		PropertyID:   "p1",
		TimeFrame:    Monthly,
		CheckInDate:  date(2024, 6, 1),
		CheckOutDate: datePtr(2024, 9, 15),
	}
	if got := draft.Units(); got != 1 {
		t.Errorf("Units() = %d, want 1", got)
	}
}

func TestTotalAmountDaily(t *testing.T) {
	draft := &BookingDraft{
		PropertyID:   "p1",
		TimeFrame:    Daily,
		CheckInDate:  date(2024, 6, 1),
		CheckOutDate: datePtr(2024, 6, 4),
		SelectedRoom: testRoom(),
	}

	total, err := draft.TotalAmount()
	if err != nil {
		t.Fatalf("TotalAmount() error: %v", err)
	}
	if total != 1500 {
		t.Errorf("TotalAmount() = %d, want 1500", total)
	}

	payable, err := draft.TotalPayable()
	if err != nil {
		t.Fatalf("TotalPayable() error: %v", err)
	}
	if payable != 3500 {
		t.Errorf("TotalPayable() = %d, want 3500", payable)
	}
}

func TestTotalAmountMonthlyIsFlat(t *testing.T) {
	for _, checkOut := range []*time.Time{nil, datePtr(2024, 6, 2), datePtr(2025, 1, 1)} {
		draft := &BookingDraft{
			PropertyID:   "p1",
			TimeFrame:    Monthly,
			CheckInDate:  date(2024, 6, 1),
			CheckOutDate: checkOut,
			SelectedRoom: testRoom(),
		}
		total, err := draft.TotalAmount()
		if err != nil {
			t.Fatalf("TotalAmount() error: %v", err)
		}
		if total != 8000 {
			t.Errorf("TotalAmount() = %d, want 8000", total)
		}
	}
}

func TestUnitPriceRoomWinsOverBasePrice(t *testing.T) {
	draft := &BookingDraft{
		PropertyID:   "p1",
		TimeFrame:    Daily,
		CheckInDate:  date(2024, 6, 1),
		BasePrice:    900,
		SelectedRoom: testRoom(),
	}
	price, err := draft.UnitPrice()
	if err != nil {
		t.Fatalf("UnitPrice() error: %v", err)
	}
	if price != 500 {
		t.Errorf("UnitPrice() = %d, want 500", price)
	}
}

func TestUnitPriceFallsBackToBasePrice(t *testing.T) {
	draft := &BookingDraft{
		PropertyID:  "p1",
		TimeFrame:   Daily,
		CheckInDate: date(2024, 6, 1),
		BasePrice:   900,
	}
	price, err := draft.UnitPrice()
	if err != nil {
		t.Fatalf("UnitPrice() error: %v", err)
	}
	if price != 900 {
		t.Errorf("UnitPrice() = %d, want 900", price)
	}
}

func TestUnitPriceNoDailyRate(t *testing.T) {
	room := testRoom()
	room.DailyPrice = 0
	draft := &BookingDraft{
		PropertyID:   "p1",
		TimeFrame:    Daily,
		CheckInDate:  date(2024, 6, 1),
		CheckOutDate: datePtr(2024, 6, 3),
		SelectedRoom: room,
	}

	if _, err := draft.UnitPrice(); err != ErrNoDailyRate {
		t.Errorf("UnitPrice() error = %v, want ErrNoDailyRate", err)
	}

	// Monthly on the same room is fine.
	draft.TimeFrame = Monthly
	price, err := draft.UnitPrice()
	if err != nil {
		t.Fatalf("UnitPrice() error: %v", err)
	}
	if price != 8000 {
		t.Errorf("UnitPrice() = %d, want 8000", price)
	}
}

func TestValidate(t *testing.T) {
	base := func() *BookingDraft {
		return &BookingDraft{
			PropertyID:     "p1",
			TimeFrame:      Daily,
			CheckInDate:    date(2024, 6, 1),
			CheckOutDate:   datePtr(2024, 6, 4),
			NumberOfGuests: 1,
			SelectedRoom:   testRoom(),
		}
	}

	cases := []struct {
		name     string
		mutate   func(*BookingDraft)
		hasRooms bool
		want     error
	}{
		{"valid", func(d *BookingDraft) {}, true, nil},
		{"daily without check-out", func(d *BookingDraft) { d.CheckOutDate = nil }, true, ErrCheckOutMissing},
		{"rooms listed but none selected", func(d *BookingDraft) { d.SelectedRoom = nil }, true, ErrRoomRequired},
		{"no rooms listed none required", func(d *BookingDraft) { d.SelectedRoom = nil }, false, nil},
		{"guest overflow", func(d *BookingDraft) { d.NumberOfGuests = 3 }, true, ErrGuestOverflow},
		{"capacity one blocks extras", func(d *BookingDraft) {
			d.SelectedRoom.Capacity = 1
			d.NumberOfGuests = 3
		}, true, ErrGuestOverflow},
		{"no daily rate surfaces", func(d *BookingDraft) { d.SelectedRoom.DailyPrice = 0 }, true, ErrNoDailyRate},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			draft := base()
			c.mutate(draft)
			if got := draft.Validate(c.hasRooms); got != c.want {
				t.Errorf("Validate() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestValidateRejectsZeroGuests(t *testing.T) {
	draft := &BookingDraft{
		PropertyID:   "p1",
		TimeFrame:    Daily,
		CheckInDate:  date(2024, 6, 1),
		CheckOutDate: datePtr(2024, 6, 2),
	}
	if err := draft.Validate(false); err == nil {
		t.Error("Validate() accepted zero guests")
	}
}

func TestToBookingDefaults(t *testing.T) {
	draft := &BookingDraft{
		PropertyID:     "p1",
		TimeFrame:      Monthly,
		CheckInDate:    time.Date(2024, 6, 1, 17, 45, 3, 0, time.UTC),
		NumberOfGuests: 1,
		SelectedRoom:   testRoom(),
	}

	booking, err := draft.ToBooking("u1")
	if err != nil {
		t.Fatalf("ToBooking() error: %v", err)
	}

	if booking.Status != BookingPending {
		t.Errorf("Status = %q, want %q", booking.Status, BookingPending)
	}
	if booking.PaymentStatus != PaymentPending {
		t.Errorf("PaymentStatus = %q, want %q", booking.PaymentStatus, PaymentPending)
	}
	if booking.CheckInTime != DefaultCheckInTime {
		t.Errorf("CheckInTime = %q, want %q", booking.CheckInTime, DefaultCheckInTime)
	}
	if booking.CheckOutTime != DefaultCheckOutTime {
		t.Errorf("CheckOutTime = %q, want %q", booking.CheckOutTime, DefaultCheckOutTime)
	}
	if !booking.CheckInDate.Equal(date(2024, 6, 1)) {
		t.Errorf("CheckInDate = %v, want date-only 2024-06-01", booking.CheckInDate)
	}
	// Missing check-out becomes the day after check-in.
	if !booking.CheckOutDate.Equal(date(2024, 6, 2)) {
		t.Errorf("CheckOutDate = %v, want 2024-06-02", booking.CheckOutDate)
	}
	if booking.TotalAmount != 8000 {
		t.Errorf("TotalAmount = %d, want 8000", booking.TotalAmount)
	}
	if booking.UserID != "u1" {
		t.Errorf("UserID = %q, want %q", booking.UserID, "u1")
	}
}

func TestToBookingKeepsExplicitTimes(t *testing.T) {
	draft := &BookingDraft{
		PropertyID:     "p1",
		TimeFrame:      Daily,
		CheckInDate:    date(2024, 6, 1),
		CheckOutDate:   datePtr(2024, 6, 4),
		CheckInTime:    "14:00",
		CheckOutTime:   "09:00",
		NumberOfGuests: 2,
		SelectedRoom:   testRoom(),
	}

	booking, err := draft.ToBooking("u1")
	if err != nil {
		t.Fatalf("ToBooking() error: %v", err)
	}
	if booking.CheckInTime != "14:00" {
		t.Errorf("CheckInTime = %q, want 14:00", booking.CheckInTime)
	}
	if booking.CheckOutTime != "09:00" {
		t.Errorf("CheckOutTime = %q, want 09:00", booking.CheckOutTime)
	}
	if booking.TotalAmount != 1500 {
		t.Errorf("TotalAmount = %d, want 1500", booking.TotalAmount)
	}
}
