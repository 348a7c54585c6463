package dto

import (
	"net/http"
	"net/url"
	"strconv"

	"pmsconsole/shared/constant"
	"pmsconsole/shared/failure"

	"github.com/go-chi/chi/v5"
)

// Pagination is the page-number pagination pages expose in their URL.
// The backend takes limit and offset, see Limit and Offset.
type Pagination struct {
	Page     int `json:"page"      validate:"omitempty,gte=1"`
	PageSize int `json:"page_size" validate:"omitempty,gte=1,lte=100"`
}

// FromRequest populates Pagination from the HTTP request.
// Missing or invalid values fall back to the defaults, and page_size is capped.
//
//	p := &dto.Pagination{}
//	p.FromRequest(req)
func (p *Pagination) FromRequest(r *http.Request) {
	queryParams := r.URL.Query()

	p.Page = constant.DefaultValuePage
	p.PageSize = constant.DefaultValuePageSize

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			p.Page = pageInt
		}
	}

	if size := queryParams.Get(constant.RequestParamPageSize); size != "" {
		if sizeInt, err := strconv.Atoi(size); err == nil && sizeInt > 0 {
			p.PageSize = min(sizeInt, constant.MaxValuePageSize)
		}
	}
}

func (p Pagination) Limit() int {
	return p.PageSize
}

func (p Pagination) Offset() int {
	if p.Page <= 1 {
		return 0
	}

	return (p.Page - 1) * p.PageSize
}

// Encode writes the pagination into the wire query the backend expects.
func (p Pagination) Encode(values url.Values) {
	values.Set(constant.RequestParamLimit, strconv.Itoa(p.Limit()))
	values.Set(constant.RequestParamOffset, strconv.Itoa(p.Offset()))
}

// IDParam reads the {id} route parameter. Anything but a positive integer is a missing page.
func IDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.NotFound("Page not found")
	}

	return id, nil
}
