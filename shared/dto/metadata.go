package dto

import (
	"net/url"
	"strconv"

	"pmsconsole/shared/constant"
)

// PageMeta describes the position of a list page for rendering pager links.
type PageMeta struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Count    int  `json:"count"`
	HasPrev  bool `json:"has_prev"`
	HasNext  bool `json:"has_next"`
}

// NewPageMeta derives the pager for a page that returned count items.
// A full page implies there may be more.
func NewPageMeta(p Pagination, count int) PageMeta {
	return PageMeta{
		Page:     p.Page,
		PageSize: p.PageSize,
		Count:    count,
		HasPrev:  p.Page > 1,
		HasNext:  count >= p.PageSize,
	}
}

// Link returns the query string for page, keeping the other filters in base.
func (m PageMeta) Link(base url.Values, page int) string {
	values := url.Values{}

	for key, vals := range base {
		for _, v := range vals {
			if v != "" {
				values.Add(key, v)
			}
		}
	}

	values.Set(constant.RequestParamPage, strconv.Itoa(page))
	values.Set(constant.RequestParamPageSize, strconv.Itoa(m.PageSize))

	return "?" + values.Encode()
}
