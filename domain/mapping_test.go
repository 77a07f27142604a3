package domain

import (
	"testing"
	"time"
)

func TestMapRecordToDraft(t *testing.T) {
	record := map[string]interface{}{
		"propertyId":     "p1",
		"roomId":         "r1",
		"checkInDate":    "2024-06-01",
		"checkOutDate":   "2024-06-04T00:00:00Z",
		"numberOfGuests": float64(2),
		"timeFrame":      "daily",
		"basePrice":      float64(500),
		"selectedRoom": map[string]interface{}{
			"propertyId":   "p1",
			"name":         "Deluxe",
			"dailyPrice":   float64(500),
			"monthlyPrice": float64(8000),
			"capacity":     float64(2),
			"available":    true,
		},
	}

	draft := MapRecordToDraft(record)

	if draft.PropertyID != "p1" || draft.RoomID != "r1" {
		t.Errorf("ids = %q/%q, want p1/r1", draft.PropertyID, draft.RoomID)
	}
	if !draft.CheckInDate.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("CheckInDate = %v", draft.CheckInDate)
	}
	if draft.CheckOutDate == nil || !draft.CheckOutDate.Equal(time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("CheckOutDate = %v", draft.CheckOutDate)
	}
	if draft.NumberOfGuests != 2 {
		t.Errorf("NumberOfGuests = %d, want 2", draft.NumberOfGuests)
	}
	if draft.SelectedRoom == nil {
		t.Fatal("SelectedRoom not mapped")
	}
	if draft.SelectedRoom.DailyPrice != 500 || !draft.SelectedRoom.Available {
		t.Errorf("SelectedRoom = %+v", draft.SelectedRoom)
	}

	// A mapped draft feeds straight into the derivation.
	if got := draft.Units(); got != 3 {
		t.Errorf("Units() = %d, want 3", got)
	}
}

func TestMapRecordToDraftMissingFields(t *testing.T) {
	draft := MapRecordToDraft(map[string]interface{}{})

	if draft.PropertyID != "" || draft.RoomID != "" {
		t.Errorf("unexpected ids: %q/%q", draft.PropertyID, draft.RoomID)
	}
	if !draft.CheckInDate.IsZero() {
		t.Errorf("CheckInDate = %v, want zero", draft.CheckInDate)
	}
	if draft.CheckOutDate != nil {
		t.Errorf("CheckOutDate = %v, want nil", draft.CheckOutDate)
	}
	if draft.SelectedRoom != nil {
		t.Errorf("SelectedRoom = %+v, want nil", draft.SelectedRoom)
	}
}

func TestMapRecordToProfile(t *testing.T) {
	record := map[string]interface{}{
		"userId":   "u1",
		"email":    "s@test.com",
		"fullName": "Asha",
		"role":     "student",
		"preferences": map[string]interface{}{
			"city":  "Pune",
			"count": 3,
		},
	}

	profile := MapRecordToProfile(record)

	if profile.UserID != "u1" || profile.Role != Student {
		t.Errorf("profile = %+v", profile)
	}
	if profile.Preferences["city"] != "Pune" {
		t.Errorf("Preferences = %v", profile.Preferences)
	}
	// Non-string preference values are dropped, not coerced.
	if _, ok := profile.Preferences["count"]; ok {
		t.Error("non-string preference survived mapping")
	}
}

func TestMapRecordToRoomCoercesNumbers(t *testing.T) {
	room := MapRecordToRoom(map[string]interface{}{
		"monthlyPrice": float64(8000),
		"capacity":     int64(2),
		"available":    "yes",
	})

	if room.MonthlyPrice != 8000 || room.Capacity != 2 {
		t.Errorf("room = %+v", room)
	}
	if room.Available {
		t.Error("non-bool available coerced to true")
	}
}
