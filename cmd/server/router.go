package main

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/everchat/internal/handlers"
	"github.com/thereayou/everchat/internal/middleware"
	"github.com/thereayou/everchat/pkg/auth"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Post      *handlers.PostHandler
	Message   *handlers.MessageHandler
	Assistant *handlers.AssistantHandler
	Safety    *handlers.SafetyHandler
	Media     *handlers.MediaHandler
}

func APIEndpoints(r *gin.Engine, jwtMgr *auth.JWTManager, revocations auth.Revocations, h Handlers) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	r.GET("/uploads/:filename", h.Media.Serve)
	r.GET("/profile/:username", h.User.GetProfile)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtMgr, revocations))
	{
		protected.POST("/auth/logout", h.Auth.Logout)

		protected.GET("/me", h.User.GetMe)
		protected.PUT("/me", h.User.UpdateMe)
		protected.DELETE("/me", h.User.DeleteMe)
		protected.POST("/me/avatar", h.User.UploadAvatar)

		// Feed
		protected.GET("/feed", h.Post.Feed)
		protected.POST("/create_post", h.Post.CreatePost)
		protected.POST("/like_post/:postId", h.Post.LikePost)
		protected.POST("/add_comment/:postId", h.Post.AddComment)
		protected.GET("/posts/:postId/comments", h.Post.ListComments)

		// Direct messages
		protected.GET("/chat", h.Message.Chat)
		protected.POST("/send_message", h.Message.SendMessage)
	}

	api := protected.Group("/api")
	{
		api.GET("/messages/:userId", h.Message.GetThread)
		api.POST("/messages/:userId", h.Message.GetThread)

		api.POST("/gpt-chat", h.Assistant.Chat)
		api.POST("/process-gpt-command", h.Assistant.ProcessCommand)
		api.GET("/assistant/history", h.Assistant.History)

		api.POST("/send-sos", h.Safety.SendSOS)
		api.GET("/emergency-contacts", h.Safety.ListEmergencyContacts)
		api.POST("/emergency-contacts", h.Safety.AddEmergencyContact)
		api.GET("/offline-maps", h.Safety.ListOfflineMaps)
		api.POST("/offline-maps", h.Safety.SaveOfflineMap)
	}
}
