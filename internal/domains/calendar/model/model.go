package model

import (
	"pmsconsole/shared/model"
)

const (
	EntityName = "calendar"

	PathAvailability = "/calendar/availability"
	PathBookings     = "/calendar/bookings"

	OpAvailability = "availability"
	OpBookings     = "bookings"

	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldRoomTypeID = "room_type_id"
)

// Availability summarises one room type over a date range.
type Availability struct {
	RoomTypeID     int64             `json:"room_type_id"`
	RoomTypeName   string            `json:"room_type_name"`
	StartDate      model.Date        `json:"start_date"`
	EndDate        model.Date        `json:"end_date"`
	MinAvailable   int               `json:"min_available"`
	TotalPrice     model.Money       `json:"total_price"`
	DailyBreakdown []DayAvailability `json:"daily_breakdown"`
}

type DayAvailability struct {
	Date           model.Date  `json:"date"`
	AvailableRooms int         `json:"available_rooms"`
	Price          model.Money `json:"price"`
}

// Day returns the breakdown of date, if the backend reported it.
func (a Availability) Day(date model.Date) (DayAvailability, bool) {
	for _, day := range a.DailyBreakdown {
		if day.Date.Equal(date.Time) {
			return day, true
		}
	}

	return DayAvailability{}, false
}

// SoldOut reports whether no room of the type is free on some night of the range.
func (a Availability) SoldOut() bool {
	return a.MinAvailable <= 0
}
