package model

import (
	"pmsconsole/shared/model"
)

const (
	EntityName = "analytics"

	PathOverview  = "/analytics/overview"
	PathRevenue   = "/analytics/revenue"
	PathRoomTypes = "/analytics/room-types"
	PathBookings  = "/analytics/bookings"

	OpOverview  = "overview"
	OpRevenue   = "revenue"
	OpRoomTypes = "room_types"
	OpBookings  = "bookings"

	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
)

type Overview struct {
	TotalBookings     int         `json:"total_bookings"`
	ConfirmedBookings int         `json:"confirmed_bookings"`
	CancelledBookings int         `json:"cancelled_bookings"`
	TotalRevenue      model.Money `json:"total_revenue"`
	OccupancyRate     float64     `json:"occupancy_rate"`
	AverageDailyRate  model.Money `json:"average_daily_rate"`
	StartDate         model.Date  `json:"start_date"`
	EndDate           model.Date  `json:"end_date"`
}

// RevenuePoint is one day of the revenue trend.
type RevenuePoint struct {
	Date     model.Date  `json:"date"`
	Revenue  model.Money `json:"revenue"`
	Bookings int         `json:"bookings"`
}

type RoomTypePerformance struct {
	RoomTypeID    int64       `json:"room_type_id"`
	RoomTypeName  string      `json:"room_type_name"`
	Bookings      int         `json:"bookings"`
	Revenue       model.Money `json:"revenue"`
	OccupancyRate float64     `json:"occupancy_rate"`
}

type BookingStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Trend    []BookingPoint `json:"trend"`
}

type BookingPoint struct {
	Date     model.Date `json:"date"`
	Bookings int        `json:"bookings"`
}

// PeakRevenue is the largest day of the trend, the scale of the revenue chart.
func PeakRevenue(points []RevenuePoint) model.Money {
	var peak model.Money

	for _, point := range points {
		if point.Revenue > peak {
			peak = point.Revenue
		}
	}

	return peak
}
