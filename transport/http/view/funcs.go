package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	bookingModel "pmsconsole/internal/domains/booking/model"
	gDto "pmsconsole/shared/dto"
	gModel "pmsconsole/shared/model"
	"pmsconsole/shared/validator"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

const dateLayout = "02 Jan 2006"

// Raw HTML in notes is omitted, WithUnsafe stays off.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

type Badge struct {
	Label string
	Color string
}

var badges = map[string]Badge{
	bookingModel.StatusPending:    {Label: "Pending", Color: "warning"},
	bookingModel.StatusConfirmed:  {Label: "Confirmed", Color: "primary"},
	bookingModel.StatusCheckedIn:  {Label: "Checked in", Color: "success"},
	bookingModel.StatusCheckedOut: {Label: "Checked out", Color: "secondary"},
	bookingModel.StatusCancelled:  {Label: "Cancelled", Color: "danger"},
}

// StatusBadge maps a booking status to its badge. Unknown statuses keep their
// own name on a neutral badge.
func StatusBadge(status string) Badge {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(status), "-", "_"))
	if badge, ok := badges[normalized]; ok {
		return badge
	}

	return Badge{Label: validator.Humanize(normalized), Color: "neutral"}
}

func FormatMoney(amount gModel.Money) string {
	return "$" + amount.String()
}

func FormatDate(date gModel.Date) string {
	if date.IsZero() {
		return "-"
	}

	return date.Format(dateLayout)
}

// FormatPercent renders a rate the backend reports on a 0 to 100 scale.
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

func Markdown(source string) template.HTML {
	var buf bytes.Buffer

	if err := markdown.Convert([]byte(source), &buf); err != nil {
		log.Warn().Err(err).Msg("failed to render markdown")

		return template.HTML(template.HTMLEscapeString(source)) //nolint:gosec
	}

	return template.HTML(buf.String()) //nolint:gosec
}

// BarWidth is the width, in percent of the chart, of a bar worth value when the
// tallest bar is worth peak. Non-zero values always stay visible.
func BarWidth(value, peak gModel.Money) int {
	if peak <= 0 || value <= 0 {
		return 0
	}

	width := int(value.Cents() * 100 / peak.Cents())

	return min(100, max(1, width))
}

// Pager holds the links of a list page.
type Pager struct {
	gDto.PageMeta
	Prev string
	Next string
}

func NewPager(meta gDto.PageMeta, filters url.Values) Pager {
	pager := Pager{PageMeta: meta}

	if meta.HasPrev {
		pager.Prev = meta.Link(filters, meta.Page-1)
	}

	if meta.HasNext {
		pager.Next = meta.Link(filters, meta.Page+1)
	}

	return pager
}

// Option is one entry of a select box.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// StatusOptions lists the booking statuses with current selected.
func StatusOptions(current string) []Option {
	options := make([]Option, 0, len(bookingModel.Statuses))

	for _, status := range bookingModel.Statuses {
		options = append(options, Option{Value: status, Label: StatusBadge(status).Label, Selected: status == current})
	}

	return options
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"statusBadge":   StatusBadge,
		"statusOptions": StatusOptions,
		"money":         FormatMoney,
		"date":          FormatDate,
		"percent":       FormatPercent,
		"markdown":      Markdown,
		"barWidth":      BarWidth,
		"fieldError": func(errs validator.FieldErrors, field string) string {
			return errs[field]
		},
		"selected": func(a, b int64) bool {
			return a == b
		},
	}
}
