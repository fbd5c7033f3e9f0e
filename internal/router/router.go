package router

import (
	"Campus_Hub/internal/config"
	"Campus_Hub/internal/handler"
	"Campus_Hub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 按配置选择认证模式，整个服务只用一种，不按接口混用
func InitRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	var auth middleware.Authenticator
	if cfg.AuthMode == config.AuthModeHeader {
		auth = &middleware.HeaderAuthenticator{}
	} else {
		auth = middleware.NewTokenAuthenticator()
	}

	user := handler.NewUserHandler()
	club := handler.NewClubHandler()
	event := handler.NewEventHandler()
	flag := handler.NewFlagHandler()
	admin := handler.NewAdminHandler()

	// 开放接口
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", user.Register)
		authGroup.POST("/login", user.Login)
	}
	r.POST("/api/token/refresh", user.TokenRefresh)

	// 登录态接口
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(auth))
	{
		api.POST("/auth/logout", user.Logout)

		clubs := api.Group("/clubs")
		{
			clubs.GET("", club.List)
			clubs.GET("/mine", club.Mine)
			clubs.GET("/:id", club.Detail)
			clubs.POST("", club.Create)
			clubs.POST("/:id/join", club.Join)
			clubs.POST("/:id/leave", club.Leave)
			clubs.POST("/:id/members/:email/approve", club.ApproveMember)
			clubs.POST("/:id/announcements", club.CreateAnnouncement)
			clubs.POST("/:id/events", club.CreateEvent)
		}

		events := api.Group("/events")
		{
			events.GET("", event.List)
			events.GET("/trending", event.Trending)
			events.POST("", event.Create)
			events.DELETE("/:id", event.Delete)
		}

		registrations := api.Group("/registrations")
		{
			registrations.POST("", event.Register)
			registrations.DELETE("/:event_id", event.Unregister)
			registrations.GET("/mine", event.MyRegistrations)
		}

		api.POST("/flags", flag.Create)

		adminGroup := api.Group("/admin")
		{
			adminGroup.GET("/flags", admin.ListFlags)
			adminGroup.POST("/flags/:id/resolve", admin.ResolveFlag)
			adminGroup.GET("/clubs/pending", admin.PendingClubs)
			adminGroup.POST("/clubs/:id/approve", admin.ApproveClub)
			adminGroup.GET("/leaders/pending", admin.PendingLeaders)
			adminGroup.POST("/leaders/:id/approve", admin.ApproveLeader)
		}
	}

	return r
}
