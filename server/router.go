package server

import (
	"net/http"
	"time"

	httpHandler "omnipost/interfaces/http"
	"omnipost/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	userHandler httpHandler.IUserHandler,
	accountHandler httpHandler.IAccountHandler,
	publishHandler httpHandler.IPublishHandler,
	aiHandler httpHandler.IAIHandler,
	youtubeOAuthHandler httpHandler.IOAuthHandler,
	instagramOAuthHandler httpHandler.IOAuthHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:5173", "https://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/login", userHandler.Login)
	router.POST("/register", userHandler.Register)
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Provider callbacks carry no Authorization header; identity comes from
	// the consumed oauth state.
	router.GET("/auth/youtube/callback", youtubeOAuthHandler.HandleCallback)
	router.GET("/auth/instagram/callback", instagramOAuthHandler.HandleCallback)

	api := router.Group("api")
	api.Use(middleware.Auth())

	api.GET("/auth/youtube", youtubeOAuthHandler.GetAuthURL)
	api.GET("/auth/instagram", instagramOAuthHandler.GetAuthURL)

	api.PUT("/credentials/:platform", accountHandler.SaveCredentials)
	api.GET("/credentials/:platform", accountHandler.GetCredentials)

	api.GET("/accounts", accountHandler.ListAccounts)
	api.DELETE("/accounts/:accountId", accountHandler.Disconnect)
	api.POST("/accounts/twitter", accountHandler.ConnectTwitter)

	api.POST("/publish/:platform", publishHandler.Publish)
	api.GET("/publish/history", publishHandler.History)

	ai := api.Group("/ai")
	{
		ai.POST("/caption", aiHandler.Caption)
		ai.POST("/script", aiHandler.Script)
		ai.POST("/hashtags", aiHandler.Hashtags)
		ai.POST("/ideas", aiHandler.CampaignIdeas)
	}

	return router
}
