package models

import "hbs/src/types"

// Room is a bookable room type with an aggregate count of physical
// units, not a single physical room.
type Room struct {
	ID            uint             `gorm:"primarykey" json:"id"`
	RoomType      string           `json:"room_type,omitempty"`
	Slug          string           `json:"slug,omitempty"`
	Beds          int              `json:"beds,omitempty"`
	Capacity      int              `json:"capacity,omitempty"`
	Price         float64          `json:"price,omitempty"`
	Description   string           `json:"description,omitempty"`
	Images        types.JSONBArray `gorm:"type:jsonb" json:"images,omitempty"`
	TotalCapacity int              `gorm:"default:1" json:"total_capacity,omitempty"`

	types.Timestamps
}

// ImageKeys returns the stored S3 object keys.
func (r *Room) ImageKeys() []string {
	keys := make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		if s, ok := img.(string); ok {
			keys = append(keys, s)
		}
	}
	return keys
}
