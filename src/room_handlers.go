package main

import (
	"log"
	"net/http"
	"sync"
	"time"

	"hbs/src/common"
	"hbs/src/models"
	"hbs/src/types"
	"hbs/src/utils"

	"github.com/gin-gonic/gin"
)

func roomHandlers(g *gin.Engine, catalog *common.Catalog, availability *common.Availability, store common.ImageStore) *gin.RouterGroup {
	apiv1 := apiv1Group(g)

	apiv1.GET("/rooms", func(ctx *gin.Context) {
		checkIn, checkOut, err := stayWindowFromQuery(ctx)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rooms, err := catalog.ListRooms(ctx.Request.Context())
		if err != nil {
			respondError(ctx, err)
			return
		}

		items := make([]types.RoomListItem, len(rooms))
		var wg sync.WaitGroup
		for i := range rooms {
			wg.Add(1)
			go func(i int, room models.Room) {
				defer wg.Done()
				units, err := availability.AvailableUnits(ctx.Request.Context(), &room, checkIn, checkOut)
				if err != nil {
					log.Printf("Error computing availability for room [%d]: %s\n", room.ID, err.Error())
					units = 0
				}
				items[i] = roomListItem(ctx, &room, units, store)
			}(i, rooms[i])
		}
		wg.Wait()
		ctx.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
	})

	staff := apiv1.Group("/rooms")
	staff.Use(authMiddlewareFunc, staffMiddlewareFunc)
	staff.
		POST("", func(ctx *gin.Context) {
			var body types.CreateRoomRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			form, err := ctx.MultipartForm()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			images, err := utils.StageRoomImages(ctx, form.File["images"])
			if err != nil {
				respondError(ctx, err)
				return
			}
			room, err := catalog.CreateRoom(ctx.Request.Context(), &body, images)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": room})
		}).
		PUT("/:id", func(ctx *gin.Context) {
			id, err := common.ParseID(ctx.Param("id"))
			if err != nil {
				respondError(ctx, err)
				return
			}
			var body types.UpdateRoomRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var images []common.RoomImage
			if form, err := ctx.MultipartForm(); err == nil && form != nil {
				images, err = utils.StageRoomImages(ctx, form.File["images"])
				if err != nil {
					respondError(ctx, err)
					return
				}
			}
			room, err := catalog.UpdateRoom(ctx.Request.Context(), id, &body, images)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": room})
		}).
		DELETE("/:id", func(ctx *gin.Context) {
			id, err := common.ParseID(ctx.Param("id"))
			if err != nil {
				respondError(ctx, err)
				return
			}
			if err := catalog.DeleteRoom(ctx.Request.Context(), id); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return apiv1
}

func roomListItem(ctx *gin.Context, room *models.Room, units int, store common.ImageStore) types.RoomListItem {
	keys := room.ImageKeys()
	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		url, err := store.SignedURL(ctx.Request.Context(), key)
		if err != nil {
			log.Printf("Could not sign image URL for [%s]: %s\n", key, err.Error())
			url = key
		}
		urls = append(urls, url)
	}
	return types.RoomListItem{
		ID:             room.ID,
		RoomType:       room.RoomType,
		Slug:           room.Slug,
		Beds:           room.Beds,
		Capacity:       room.Capacity,
		Price:          room.Price,
		Description:    room.Description,
		Images:         urls,
		TotalCapacity:  room.TotalCapacity,
		AvailableUnits: units,
		CreatedAt:      room.CreatedAt,
	}
}

func stayWindowFromQuery(ctx *gin.Context) (*time.Time, *time.Time, error) {
	inParam := ctx.Query("checkIn")
	outParam := ctx.Query("checkOut")
	if inParam == "" || outParam == "" {
		return nil, nil, nil
	}
	in, err := common.ParseDate(inParam)
	if err != nil {
		return nil, nil, err
	}
	out, err := common.ParseDate(outParam)
	if err != nil {
		return nil, nil, err
	}
	if !out.After(in) {
		return nil, nil, common.NewValidationError("checkOut must be after checkIn")
	}
	return &in, &out, nil
}
