package dto

import (
	"net/http"

	"pmsconsole/internal/domains/roomtype/model"
	gDto "pmsconsole/shared/dto"
	gModel "pmsconsole/shared/model"
	"pmsconsole/shared/validator"
)

// Form is the room type form and the body of create and update calls.
type Form struct {
	Name        string       `form:"name"        json:"name"        validate:"required,max=100"`
	Description string       `form:"description" json:"description" validate:"max=1000"`
	BasePrice   gModel.Money `form:"base_price"  json:"base_price"  validate:"gte=0"`
	TotalRooms  int          `form:"total_rooms" json:"total_rooms" validate:"gte=0"`
}

func NewForm(r model.RoomType) Form {
	return Form{
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   r.BasePrice,
		TotalRooms:  r.TotalRooms,
	}
}

func (f *Form) FromForm(r *http.Request) validator.FieldErrors {
	reader := gDto.NewFormReader(r)

	f.Name = reader.String("name")
	f.Description = reader.String("description")
	f.BasePrice = reader.Money("base_price")
	f.TotalRooms = reader.Int("total_rooms")

	return reader.Errors()
}

func (Form) Messages() map[string]string {
	return map[string]string{
		"base_price.gte":  "Base price must not be negative",
		"total_rooms.gte": "Total rooms must not be negative",
	}
}
