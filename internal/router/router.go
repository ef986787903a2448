package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/piciu1221/firesignal/internal/cache"
	"github.com/piciu1221/firesignal/internal/dispatch"
	"github.com/piciu1221/firesignal/internal/handlers"
	"github.com/piciu1221/firesignal/internal/middleware"
	"github.com/piciu1221/firesignal/internal/notifier"
	"github.com/piciu1221/firesignal/internal/types"
)

// Dependencies is everything the composition root wires into the router: the
// one process-wide notifier registry shared by dispatch and subscriptions,
// and the optional Redis response cache.
type Dependencies struct {
	Registry   *notifier.Registry
	Dispatcher *dispatch.Dispatcher
	Cache      *cache.Cache
}

func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	subscriptions := &handlers.SubscribeHandler{Registry: deps.Registry}
	alarms := &handlers.AlarmHandler{Dispatcher: deps.Dispatcher}
	assignments := &handlers.AssignmentHandler{Cache: deps.Cache}

	listCache := middleware.CacheResponse(deps.Cache, 30*time.Second)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.GET("/subscribe/:username", middleware.AuthMiddleware(), subscriptions.Subscribe)
		api.GET("/ws/:username", middleware.AuthMiddleware(), subscriptions.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.RegisterUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		departments := api.Group("/fire-departments", middleware.AuthMiddleware())
		{
			departments.GET("", listCache, handlers.ListDepartments)
			departments.GET("/all", listCache, handlers.ListAllDepartments)
			departments.POST("", handlers.CreateDepartment)
			departments.DELETE("/:id", handlers.DeleteDepartment)
		}

		firefighters := api.Group("/firefighters", middleware.AuthMiddleware())
		{
			firefighters.GET("", handlers.ListFirefighters)
			firefighters.POST("", handlers.CreateFirefighter)
			firefighters.DELETE("/:id", handlers.DeleteFirefighter)
			firefighters.GET("/name/:username", handlers.GetFirefighterName)
		}

		alarmRoutes := api.Group("/alarms", middleware.AuthMiddleware())
		{
			alarmRoutes.POST("/dispatch", alarms.Dispatch)
			alarmRoutes.GET("", handlers.ListAlarms)
			alarmRoutes.GET("/firefighter/:username", handlers.ListAlarmsForFirefighter)
			alarmRoutes.POST("/accept", assignments.AcceptAlarm)
			alarmRoutes.POST("/decline", assignments.DeclineAlarm)
			alarmRoutes.POST("/consolidated-info", assignments.ConsolidatedAlarmInfo)
		}
	}

	return r
}
