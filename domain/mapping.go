package domain

import "time"

// Untyped records arrive from partial-update requests and realtime change
// payloads. Nothing past these mappers may see the raw maps: every field is
// read defensively and given a default.

func MapRecordToProfile(record map[string]interface{}) *Profile {
	profile := &Profile{
		UserID:      stringField(record, "userId"),
		Email:       stringField(record, "email"),
		FullName:    stringField(record, "fullName"),
		Phone:       stringField(record, "phone"),
		AvatarURL:   stringField(record, "avatarUrl"),
		Role:        Role(stringField(record, "role")),
		Preferences: map[string]string{},
	}

	if prefs, ok := record["preferences"].(map[string]interface{}); ok {
		for key, value := range prefs {
			if s, ok := value.(string); ok {
				profile.Preferences[key] = s
			}
		}
	}

	return profile
}

func MapRecordToRoom(record map[string]interface{}) *PropertyRoom {
	return &PropertyRoom{
		PropertyID:      stringField(record, "propertyId"),
		Name:            stringField(record, "name"),
		DailyPrice:      intField(record, "dailyPrice"),
		MonthlyPrice:    intField(record, "monthlyPrice"),
		Capacity:        intField(record, "capacity"),
		SecurityDeposit: intField(record, "securityDeposit"),
		Available:       boolField(record, "available"),
	}
}

func MapRecordToDraft(record map[string]interface{}) *BookingDraft {
	draft := &BookingDraft{
		PropertyID:      stringField(record, "propertyId"),
		RoomID:          stringField(record, "roomId"),
		CheckInTime:     stringField(record, "checkInTime"),
		CheckOutTime:    stringField(record, "checkOutTime"),
		NumberOfGuests:  intField(record, "numberOfGuests"),
		SpecialRequests: stringField(record, "specialRequests"),
		TimeFrame:       TimeFrame(stringField(record, "timeFrame")),
		BasePrice:       intField(record, "basePrice"),
	}

	if checkIn, ok := dateField(record, "checkInDate"); ok {
		draft.CheckInDate = checkIn
	}
	if checkOut, ok := dateField(record, "checkOutDate"); ok {
		draft.CheckOutDate = &checkOut
	}
	if room, ok := record["selectedRoom"].(map[string]interface{}); ok {
		draft.SelectedRoom = MapRecordToRoom(room)
	}

	return draft
}

func stringField(record map[string]interface{}, key string) string {
	if value, ok := record[key].(string); ok {
		return value
	}
	return ""
}

func intField(record map[string]interface{}, key string) int {
	switch value := record[key].(type) {
	case int:
		return value
	case int32:
		return int(value)
	case int64:
		return int(value)
	case float64:
		return int(value)
	default:
		return 0
	}
}

func boolField(record map[string]interface{}, key string) bool {
	if value, ok := record[key].(bool); ok {
		return value
	}
	return false
}

func dateField(record map[string]interface{}, key string) (time.Time, bool) {
	switch value := record[key].(type) {
	case time.Time:
		return value, true
	case string:
		if parsed, err := time.Parse("2006-01-02", value); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
