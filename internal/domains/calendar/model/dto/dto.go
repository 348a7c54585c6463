package dto

import (
	"net/http"
	"net/url"
	"strconv"

	bookingModel "pmsconsole/internal/domains/booking/model"
	"pmsconsole/internal/domains/calendar/model"
	gDto "pmsconsole/shared/dto"
	"pmsconsole/shared/failure"
	gModel "pmsconsole/shared/model"
)

const (
	FieldFrom     = "from"
	FieldTo       = "to"
	FieldRoomType = "room_type_id"

	DefaultDays = 14
	MaxDays     = 62
)

// Request is the range shown on the calendar page, optionally narrowed to one room type.
type Request struct {
	Range      gDto.DateRange
	RoomTypeID int64
}

func (c *Request) FromRequest(r *http.Request) error {
	queryParams := r.URL.Query()

	if queryParams.Get(FieldFrom) == "" && queryParams.Get(FieldTo) == "" {
		c.Range = gDto.Forward(DefaultDays)
	} else if err := c.Range.FromRequest(r, FieldFrom, FieldTo, DefaultDays); err != nil {
		return err
	}

	if c.Range.From.Nights(c.Range.To) > MaxDays {
		return failure.BadRequestFromString("The calendar shows at most " + strconv.Itoa(MaxDays) + " days")
	}

	if raw := queryParams.Get(FieldRoomType); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			return failure.BadRequestFromString("invalid room type parameter")
		}

		c.RoomTypeID = id
	}

	return nil
}

// RangeValues is the backend query of both calendar calls.
func (c Request) RangeValues() url.Values {
	return url.Values{
		model.FieldStartDate: {c.Range.From.String()},
		model.FieldEndDate:   {c.Range.To.String()},
	}
}

func (c Request) AvailabilityValues() url.Values {
	values := c.RangeValues()
	if c.RoomTypeID != 0 {
		values.Set(model.FieldRoomTypeID, strconv.FormatInt(c.RoomTypeID, 10))
	}

	return values
}

// Days lists every night of the range.
func (c Request) Days() []gModel.Date {
	nights := c.Range.From.Nights(c.Range.To)
	days := make([]gModel.Date, 0, nights)

	for i := 0; i < nights; i++ {
		days = append(days, c.Range.From.AddDays(i))
	}

	return days
}

// Response is everything the calendar page renders.
type Response struct {
	Request      Request
	Days         []gModel.Date
	Availability []model.Availability
	Bookings     []bookingModel.Booking
}

// Cell is one room type on one night of the grid. Known is false when the
// backend did not report the night.
type Cell struct {
	Date      gModel.Date
	Available int
	Price     gModel.Money
	Known     bool
}

type Row struct {
	RoomTypeID   int64
	RoomTypeName string
	MinAvailable int
	SoldOut      bool
	Cells        []Cell
}

// Rows lays the availability out as one row per room type and one cell per night.
func (r Response) Rows() []Row {
	rows := make([]Row, 0, len(r.Availability))

	for _, availability := range r.Availability {
		row := Row{
			RoomTypeID:   availability.RoomTypeID,
			RoomTypeName: availability.RoomTypeName,
			MinAvailable: availability.MinAvailable,
			SoldOut:      availability.SoldOut(),
			Cells:        make([]Cell, 0, len(r.Days)),
		}

		for _, day := range r.Days {
			cell := Cell{Date: day}
			if breakdown, ok := availability.Day(day); ok {
				cell.Available = breakdown.AvailableRooms
				cell.Price = breakdown.Price
				cell.Known = true
			}

			row.Cells = append(row.Cells, cell)
		}

		rows = append(rows, row)
	}

	return rows
}

// Arrivals lists the bookings checking in on date.
func (r Response) Arrivals(date gModel.Date) []bookingModel.Booking {
	var arrivals []bookingModel.Booking

	for _, booking := range r.Bookings {
		if booking.CheckIn.Equal(date.Time) {
			arrivals = append(arrivals, booking)
		}
	}

	return arrivals
}
