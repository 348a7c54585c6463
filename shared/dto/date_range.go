package dto

import (
	"net/http"

	"pmsconsole/shared/failure"
	"pmsconsole/shared/model"
	"pmsconsole/shared/timezone"
)

// DateRange is an inclusive day range read from a page URL.
type DateRange struct {
	From model.Date
	To   model.Date
}

// FromRequest reads fromKey and toKey. Missing bounds default to the window of
// defaultDays days ending today; when only one bound is given the other is derived from it.
func (d *DateRange) FromRequest(r *http.Request, fromKey, toKey string, defaultDays int) error {
	queryParams := r.URL.Query()

	from, err := model.ParseDate(queryParams.Get(fromKey))
	if err != nil {
		return failure.InvalidDateParam
	}

	to, err := model.ParseDate(queryParams.Get(toKey))
	if err != nil {
		return failure.InvalidDateParam
	}

	switch {
	case from.IsZero() && to.IsZero():
		to = model.DateOf(timezone.Today())
		from = to.AddDays(-defaultDays)
	case from.IsZero():
		from = to.AddDays(-defaultDays)
	case to.IsZero():
		to = from.AddDays(defaultDays)
	}

	if to.Before(from.Time) {
		return failure.BadRequestFromString("End date must not be before start date")
	}

	d.From = from
	d.To = to

	return nil
}

// Forward builds a range of days days starting today, used by the calendar.
func Forward(days int) DateRange {
	from := model.DateOf(timezone.Today())

	return DateRange{From: from, To: from.AddDays(days)}
}
