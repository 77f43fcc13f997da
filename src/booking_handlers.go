package main

import (
	"errors"
	"net/http"

	"hbs/src/common"
	"hbs/src/models"
	"hbs/src/types"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.Engine, orchestrator *common.Orchestrator) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	bookings := apiv1.Group("/bookings")

	bookings.POST("/create-payment-intent", func(ctx *gin.Context) {
		var body types.CreatePaymentIntentRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		intent, err := orchestrator.CreatePaymentIntent(ctx.Request.Context(), &body)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"clientSecret":    intent.ClientSecret,
			"paymentIntentId": intent.ID,
		})
	})

	bookings.POST("/confirm-booking", func(ctx *gin.Context) {
		var body types.ConfirmBookingRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		booking, err := orchestrator.ConfirmBooking(ctx.Request.Context(), &body)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "bookingId": booking.ID})
	})

	auth := apiv1.Group("/bookings")
	auth.Use(authMiddlewareFunc)
	auth.
		GET("", staffMiddlewareFunc, func(ctx *gin.Context) {
			all, err := orchestrator.GetAllBookings(ctx.Request.Context())
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookingViews(all), "count": len(all)})
		}).
		GET("/:id", func(ctx *gin.Context) {
			id, err := common.ParseID(ctx.Param("id"))
			if err != nil {
				respondError(ctx, err)
				return
			}
			booking, err := orchestrator.GetBooking(ctx.Request.Context(), id)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookingView(booking)})
		}).
		GET("/user/:userId", func(ctx *gin.Context) {
			userId, err := common.ParseID(ctx.Param("userId"))
			if err != nil {
				respondError(ctx, err)
				return
			}
			list, err := orchestrator.GetUserBookings(ctx.Request.Context(), userId)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookingViews(list), "count": len(list)})
		}).
		DELETE("/:id", func(ctx *gin.Context) {
			id, err := common.ParseID(ctx.Param("id"))
			if err != nil {
				respondError(ctx, err)
				return
			}
			if err := orchestrator.CancelBooking(ctx.Request.Context(), id); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		})
	return apiv1
}

// bookingView resolves a missing room reference as "room unavailable"
// rather than failing the read; rooms are deleted without cascading
// to their bookings.
func bookingView(booking *models.Booking) gin.H {
	view := gin.H{"booking": booking}
	if booking.Room == nil {
		view["room"] = "room unavailable"
	} else {
		view["room"] = booking.Room
	}
	return view
}

func bookingViews(bookings []models.Booking) []gin.H {
	views := make([]gin.H, 0, len(bookings))
	for i := range bookings {
		views = append(views, bookingView(&bookings[i]))
	}
	return views
}

func respondError(ctx *gin.Context, err error) {
	var validationErr *common.ValidationError
	var providerErr *common.PaymentProviderError
	var storageErr *common.StorageError
	switch {
	case errors.Is(err, common.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrInvalidID),
		errors.Is(err, common.ErrSoldOut),
		errors.Is(err, common.ErrPaymentNotComplete),
		errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &providerErr):
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "payment provider error, please try again"})
	case errors.As(err, &storageErr):
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
	}
}
