package dto

import (
	"net/http"
	"net/url"

	"pmsconsole/internal/domains/analytics/model"
	gDto "pmsconsole/shared/dto"
)

const (
	FieldFrom = "from"
	FieldTo   = "to"

	DefaultDays = 30
)

// Request is the date range of the dashboard.
type Request struct {
	Range gDto.DateRange
}

func (a *Request) FromRequest(r *http.Request) error {
	return a.Range.FromRequest(r, FieldFrom, FieldTo, DefaultDays)
}

// Values is the backend query every analytics call takes.
func (a Request) Values() url.Values {
	return url.Values{
		model.FieldStartDate: {a.Range.From.String()},
		model.FieldEndDate:   {a.Range.To.String()},
	}
}

// Dashboard is everything the dashboard renders. A section that failed to load
// carries its error message and leaves the rest of the page intact.
type Dashboard struct {
	Request   Request
	Overview  model.Overview
	Revenue   []model.RevenuePoint
	RoomTypes []model.RoomTypePerformance
	Bookings  model.BookingStats
	Errors    map[string]string
}

func (d Dashboard) Failed(section string) string {
	return d.Errors[section]
}
