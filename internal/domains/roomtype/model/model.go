package model

import (
	"pmsconsole/shared/model"
)

const (
	EntityName = "room_type"
	Path       = "/room-types"

	OpList = "list"
	OpGet  = "get"
)

type RoomType struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	BasePrice   model.Money `json:"base_price"`
	TotalRooms  int         `json:"total_rooms"`
	model.Metadata
}
