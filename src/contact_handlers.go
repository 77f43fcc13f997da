package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/types"

	"github.com/gin-gonic/gin"
)

func contactHandlers(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)

	apiv1.POST("/contact", func(ctx *gin.Context) {
		var body types.ContactRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		subject := body.Subject
		if subject == "" {
			subject = fmt.Sprintf("Contact form message from %s", body.Name)
		}
		err := lib.SendMail(&lib.SendMailInput{
			From:     os.Getenv("MAIL_FROM"),
			FromName: body.Name,
			To:       []string{os.Getenv("CONTACT_INBOX")},
			ReplyTo:  body.Email,
			Subject:  subject,
			Body:     body.Message,
		})
		if err != nil {
			log.Printf("Error relaying contact message: %s\n", err.Error())
			ctx.JSON(http.StatusBadGateway, gin.H{"error": "could not send message, please try again"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true})
	})

	apiv1.POST("/feedback", func(ctx *gin.Context) {
		var body types.CreateFeedbackRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		feedback := models.Feedback{
			Name:    body.Name,
			Email:   body.Email,
			Rating:  body.Rating,
			Comment: body.Comment,
		}
		db := db.GetDb()
		if err := db.Create(&feedback).Error; err != nil {
			log.Printf("Error saving feedback: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
			return
		}
		ctx.JSON(http.StatusCreated, gin.H{"data": feedback})
	})

	apiv1.GET("/feedback", func(ctx *gin.Context) {
		var feedback []models.Feedback
		db := db.GetDb()
		if err := db.
			Model(&models.Feedback{}).
			Order("created_at DESC").
			Find(&feedback).
			Error; err != nil {
			log.Printf("Error listing feedback: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": feedback, "count": len(feedback)})
	})

	return apiv1
}
