package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"reflect"
	"regexp"
	"time"

	"hbs/src/boot"
	"hbs/src/common"
	"hbs/src/config"
	"hbs/src/controllers"
	"hbs/src/db"
	"hbs/src/lib"
	awslib "hbs/src/lib/aws"
	"hbs/src/middlewares"
	"hbs/src/utils"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	apiPrefix string = "/api/v1"
)

var authMiddlewareFunc gin.HandlerFunc = middlewares.AuthMiddleware
var staffMiddlewareFunc gin.HandlerFunc = middlewares.StaffMiddleware

var stayDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	return err == nil
}

// gtdate requires the field's date to be strictly after the date in
// the named sibling field. An absent sibling passes; the half-open
// window check happens again inside the orchestrator.
var gtdate validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	parent := fl.Parent()
	if parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	other := parent.FieldByName(fl.Param())
	if !other.IsValid() {
		return true
	}
	if other.Kind() == reflect.Ptr {
		if other.IsNil() {
			return true
		}
		other = other.Elem()
	}
	otherValue, ok := other.Interface().(string)
	if !ok || otherValue == "" {
		return true
	}
	t, err := time.Parse(config.DATE_PARSE_FORMAT, value)
	if err != nil {
		return false
	}
	otherT, err := time.Parse(config.DATE_PARSE_FORMAT, otherValue)
	if err != nil {
		return false
	}
	return t.After(otherT)
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("staydate", stayDateValidatorFunc)
		v.RegisterValidation("gtdate", gtdate)
	}
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	return g.Group(apiPrefix)
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func authRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	auth := apiv1.Group("/auth")
	auth.POST("/register", controllers.AuthRegister)
	auth.POST("/login", controllers.AuthLogin)
	auth.GET("/me", authMiddlewareFunc, controllers.AuthMe)
	return apiv1
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	boot.InitDb()

	router := setupRouter()
	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	registerValidators()

	d := db.GetDb()
	store := awslib.NewAssetStore()
	catalog := common.NewCatalog(d, store)
	ledger := common.NewLedger(d)
	availability := common.NewAvailability(ledger)
	orchestrator := common.NewOrchestrator(catalog, ledger, availability, lib.NewStripeProvider())
	orchestrator.OnConfirm(utils.SendBookingConfirmation)

	roomHandlers(router, catalog, availability, store)
	bookingHandlers(router, orchestrator)
	stripeWebhookRoute(router)
	contactHandlers(router)
	authRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server error: %s\n", err.Error())
	}
}
