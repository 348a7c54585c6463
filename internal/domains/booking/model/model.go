package model

import (
	"pmsconsole/shared/model"
)

const (
	EntityName = "booking"
	Path       = "/bookings"

	OpList = "list"
	OpGet  = "get"

	FieldStatusFilter = "status_filter"
	FieldFromDate     = "from_date"
	FieldToDate       = "to_date"
)

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"
)

// Statuses lists the lifecycle in the order staff move a booking through it.
var Statuses = []string{StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled}

// Booking is the flat booking record returned by the backend.
type Booking struct {
	ID            int64       `json:"id"`
	CustomerID    int64       `json:"customer_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	RoomTypeID    int64       `json:"room_type_id"`
	RoomTypeName  string      `json:"room_type_name"`
	CheckIn       model.Date  `json:"check_in"`
	CheckOut      model.Date  `json:"check_out"`
	NumRooms      int         `json:"num_rooms"`
	Adults        int         `json:"adults"`
	Children      int         `json:"children"`
	TotalAmount   model.Money `json:"total_amount"`
	AmountPaid    model.Money `json:"amount_paid"`
	BalanceDue    model.Money `json:"balance_due"`
	Status        string      `json:"status"`
	Notes         string      `json:"notes"`
	model.Metadata
}

func (b Booking) Nights() int {
	return b.CheckIn.Nights(b.CheckOut)
}

// Closed reports whether the booking can no longer be changed.
func (b Booking) Closed() bool {
	return b.Status == StatusCancelled || b.Status == StatusCheckedOut
}
