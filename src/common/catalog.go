package common

import (
	"context"
	"errors"
	"log"

	"hbs/src/models"
	"hbs/src/types"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ImageStore is the media collaborator: accepts image files, returns
// stable URLs for stored keys.
type ImageStore interface {
	Upload(ctx context.Context, key string, filepath string) error
	SignedURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// RoomImage is an uploaded photo staged on local disk, ready to be
// pushed to the image store under Key.
type RoomImage struct {
	Key  string
	Path string
}

// Catalog owns Room records and their image assets.
type Catalog struct {
	db     *gorm.DB
	images ImageStore
}

func NewCatalog(db *gorm.DB, images ImageStore) *Catalog {
	return &Catalog{db: db, images: images}
}

func (c *Catalog) CreateRoom(ctx context.Context, body *types.CreateRoomRequestBody, images []RoomImage) (*models.Room, error) {
	if body.RoomType == "" || body.Beds == nil || body.Capacity == nil || body.Price == nil {
		return nil, NewValidationError("roomType, beds, capacity and price are required")
	}
	if len(images) == 0 {
		return nil, NewValidationError("at least one room image is required")
	}
	totalCapacity := 1
	if body.TotalCapacity != nil {
		totalCapacity = *body.TotalCapacity
	}
	if totalCapacity < 0 {
		return nil, NewValidationError("totalCapacity must not be negative")
	}

	keys, err := c.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}
	room := models.Room{
		RoomType:      body.RoomType,
		Slug:          slug.Make(body.RoomType),
		Beds:          *body.Beds,
		Capacity:      *body.Capacity,
		Price:         *body.Price,
		Description:   body.Description,
		Images:        keys,
		TotalCapacity: totalCapacity,
	}
	if err := c.db.WithContext(ctx).Create(&room).Error; err != nil {
		return nil, &StorageError{Err: err}
	}
	return &room, nil
}

// UpdateRoom merges only the supplied fields. A new image set
// replaces the previous one entirely and releases the old assets.
func (c *Catalog) UpdateRoom(ctx context.Context, id uint, body *types.UpdateRoomRequestBody, images []RoomImage) (*models.Room, error) {
	room, err := c.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if body.RoomType != nil {
		updates["room_type"] = *body.RoomType
		updates["slug"] = slug.Make(*body.RoomType)
	}
	if body.Beds != nil {
		updates["beds"] = *body.Beds
	}
	if body.Capacity != nil {
		updates["capacity"] = *body.Capacity
	}
	if body.Price != nil {
		updates["price"] = *body.Price
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.TotalCapacity != nil {
		if *body.TotalCapacity < 0 {
			return nil, NewValidationError("totalCapacity must not be negative")
		}
		updates["total_capacity"] = *body.TotalCapacity
	}
	if len(images) > 0 {
		keys, err := c.uploadImages(ctx, images)
		if err != nil {
			return nil, err
		}
		c.releaseImages(ctx, room)
		updates["images"] = keys
	}
	if len(updates) == 0 {
		return room, nil
	}

	if err := c.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", id).
		Updates(updates).
		Error; err != nil {
		return nil, &StorageError{Err: err}
	}
	return c.GetRoom(ctx, id)
}

// DeleteRoom removes the room unconditionally. Existing bookings keep
// their room id and resolve to "room unavailable" at read time.
func (c *Catalog) DeleteRoom(ctx context.Context, id uint) error {
	room, err := c.GetRoom(ctx, id)
	if err != nil {
		return err
	}
	c.releaseImages(ctx, room)
	if err := c.db.WithContext(ctx).Delete(&models.Room{}, id).Error; err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

func (c *Catalog) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := c.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", id).
		First(&room).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Err: err}
	}
	return &room, nil
}

func (c *Catalog) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := c.db.WithContext(ctx).
		Model(&models.Room{}).
		Order("created_at DESC").
		Find(&rooms).
		Error; err != nil {
		return nil, &StorageError{Err: err}
	}
	return rooms, nil
}

func (c *Catalog) uploadImages(ctx context.Context, images []RoomImage) (types.JSONBArray, error) {
	keys := make(types.JSONBArray, 0, len(images))
	for _, img := range images {
		if err := c.images.Upload(ctx, img.Key, img.Path); err != nil {
			return nil, &StorageError{Err: err}
		}
		keys = append(keys, img.Key)
	}
	return keys, nil
}

func (c *Catalog) releaseImages(ctx context.Context, room *models.Room) {
	for _, key := range room.ImageKeys() {
		if err := c.images.Delete(ctx, key); err != nil {
			log.Printf("Could not release image asset [%s]: %s\n", key, err.Error())
		}
	}
}
