package dto

import (
	"net/http"
	"net/url"
	"slices"

	"pmsconsole/internal/domains/booking/model"
	customerDto "pmsconsole/internal/domains/customer/model/dto"
	gDto "pmsconsole/shared/dto"
	"pmsconsole/shared/failure"
	gModel "pmsconsole/shared/model"
	"pmsconsole/shared/validator"
)

const (
	FieldStatus   = "status"
	FieldFromDate = "from_date"
	FieldToDate   = "to_date"
)

const checkOutMessage = "Check-out must be after check-in"

// CreateBookingForm is the new booking form and the body of POST /bookings.
// The backend gets or creates the customer by email.
type CreateBookingForm struct {
	CheckIn    gModel.Date      `form:"check_in"     json:"check_in"     validate:"required"`
	CheckOut   gModel.Date      `form:"check_out"    json:"check_out"    validate:"required,gtfield=CheckIn"`
	RoomTypeID int64            `form:"room_type_id" json:"room_type_id" validate:"required"`
	NumRooms   int              `form:"num_rooms"    json:"num_rooms"    validate:"gte=1"`
	Adults     int              `form:"adults"       json:"adults"       validate:"gte=0"`
	Children   int              `form:"children"     json:"children"     validate:"gte=0"`
	AmountPaid gModel.Money     `form:"amount_paid"  json:"amount_paid"  validate:"gte=0"`
	Notes      string           `form:"notes"        json:"notes"        validate:"max=500"`
	Customer   customerDto.Form `form:"customer"     json:"customer"`
}

// NewCreateBookingForm returns the defaults of an empty booking form.
func NewCreateBookingForm() CreateBookingForm {
	return CreateBookingForm{NumRooms: 1, Adults: 1}
}

func (f *CreateBookingForm) FromForm(r *http.Request) validator.FieldErrors {
	reader := gDto.NewFormReader(r)

	f.CheckIn = reader.Date("check_in")
	f.CheckOut = reader.Date("check_out")
	f.RoomTypeID = reader.Int64("room_type_id")
	f.NumRooms = reader.Int("num_rooms")
	f.Adults = reader.Int("adults")
	f.Children = reader.Int("children")
	f.AmountPaid = reader.Money("amount_paid")
	f.Notes = reader.String("notes")
	f.Customer.Read(reader, "customer.")

	return reader.Errors()
}

func (CreateBookingForm) Messages() map[string]string {
	return map[string]string{
		"check_out.gtfield":     checkOutMessage,
		"room_type_id.required": "Select a room type",
		"num_rooms.gte":         "Book at least one room",
		"customer.email.email":  "Enter a valid email address",
	}
}

// UpdateBookingForm edits payment, status and notes. Body of PUT /bookings/{id}.
type UpdateBookingForm struct {
	AmountPaid gModel.Money `form:"amount_paid" json:"amount_paid"      validate:"gte=0"`
	Status     string       `form:"status"      json:"status,omitempty" validate:"omitempty,oneof=pending confirmed checked_in checked_out cancelled"`
	Notes      string       `form:"notes"       json:"notes"            validate:"max=500"`
}

func NewUpdateBookingForm(b model.Booking) UpdateBookingForm {
	return UpdateBookingForm{
		AmountPaid: b.AmountPaid,
		Status:     b.Status,
		Notes:      b.Notes,
	}
}

func (f *UpdateBookingForm) FromForm(r *http.Request) validator.FieldErrors {
	reader := gDto.NewFormReader(r)

	f.AmountPaid = reader.Money("amount_paid")
	f.Status = reader.String("status")
	f.Notes = reader.String("notes")

	return reader.Errors()
}

// ModifyBookingForm changes dates, room type or rooms. Body of PUT /bookings/{id}/modify.
type ModifyBookingForm struct {
	CheckIn    gModel.Date `form:"check_in"     json:"check_in"     validate:"required"`
	CheckOut   gModel.Date `form:"check_out"    json:"check_out"    validate:"required,gtfield=CheckIn"`
	RoomTypeID int64       `form:"room_type_id" json:"room_type_id" validate:"required"`
	NumRooms   int         `form:"num_rooms"    json:"num_rooms"    validate:"gte=1"`
}

func NewModifyBookingForm(b model.Booking) ModifyBookingForm {
	return ModifyBookingForm{
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		RoomTypeID: b.RoomTypeID,
		NumRooms:   b.NumRooms,
	}
}

func (f *ModifyBookingForm) FromForm(r *http.Request) validator.FieldErrors {
	reader := gDto.NewFormReader(r)

	f.CheckIn = reader.Date("check_in")
	f.CheckOut = reader.Date("check_out")
	f.RoomTypeID = reader.Int64("room_type_id")
	f.NumRooms = reader.Int("num_rooms")

	return reader.Errors()
}

func (ModifyBookingForm) Messages() map[string]string {
	return map[string]string{
		"check_out.gtfield":     checkOutMessage,
		"room_type_id.required": "Select a room type",
		"num_rooms.gte":         "Book at least one room",
	}
}

// CancelBookingForm is the body of POST /bookings/{id}/cancel.
type CancelBookingForm struct {
	Reason string `form:"reason" json:"reason" validate:"required,max=500"`
}

func (f *CancelBookingForm) FromForm(r *http.Request) validator.FieldErrors {
	reader := gDto.NewFormReader(r)
	f.Reason = reader.String("reason")

	return reader.Errors()
}

func (CancelBookingForm) Messages() map[string]string {
	return map[string]string{
		"reason.required": "Give a reason for the cancellation",
	}
}

// ListRequest holds the filters of the bookings page.
type ListRequest struct {
	Status     string
	From       gModel.Date
	To         gModel.Date
	Pagination gDto.Pagination
}

func (l *ListRequest) FromRequest(r *http.Request) error {
	queryParams := r.URL.Query()

	l.Pagination.FromRequest(r)

	l.Status = queryParams.Get(FieldStatus)
	if l.Status != "" && !slices.Contains(model.Statuses, l.Status) {
		return failure.BadRequestFromString("Unknown booking status " + l.Status)
	}

	var err error

	if l.From, err = gModel.ParseDate(queryParams.Get(FieldFromDate)); err != nil {
		return failure.InvalidDateParam
	}

	if l.To, err = gModel.ParseDate(queryParams.Get(FieldToDate)); err != nil {
		return failure.InvalidDateParam
	}

	if !l.From.IsZero() && !l.To.IsZero() && l.To.Before(l.From.Time) {
		return failure.BadRequestFromString("End date must not be before start date")
	}

	return nil
}

// Values is the backend query of GET /bookings.
func (l ListRequest) Values() url.Values {
	values := url.Values{}
	l.Pagination.Encode(values)

	if l.Status != "" {
		values.Set(model.FieldStatusFilter, l.Status)
	}

	if !l.From.IsZero() {
		values.Set(model.FieldFromDate, l.From.String())
	}

	if !l.To.IsZero() {
		values.Set(model.FieldToDate, l.To.String())
	}

	return values
}

// Filters are the page URL parameters kept across pager links.
func (l ListRequest) Filters() url.Values {
	return url.Values{
		FieldStatus:   {l.Status},
		FieldFromDate: {l.From.String()},
		FieldToDate:   {l.To.String()},
	}
}

type ListResponse struct {
	Bookings []model.Booking
	Page     gDto.PageMeta
}
