package routes

import (
	"clinicrecord-backend/internal/handlers"
	"clinicrecord-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	api := r.Group("/api/v1")
	{
		// Public: account registration and login
		auth := api.Group("/auth/user")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/verify-email", handlers.VerifyEmail)
			auth.POST("/resend-verify-email", handlers.ResendVerifyEmail)
		}

		// Everything below needs a valid token
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			user := protected.Group("/user/me")
			{
				user.GET("", handlers.GetMe)
				user.PUT("", handlers.UpdateMe)
				user.DELETE("", handlers.DeleteMe)
			}

			records := protected.Group("/medical-records")
			{
				records.GET("", handlers.ListRecords)
				records.POST("", handlers.CreateRecord)
				records.GET("/:id", handlers.GetRecord)
				records.PUT("/:id", handlers.UpdateRecord)
				records.DELETE("/:id", handlers.DeleteRecord)
				records.GET("/:id/versions", handlers.ListVersions)
				records.GET("/:id/version/:history_id", handlers.GetVersion)
			}

			permissions := protected.Group("/medical-record")
			{
				permissions.POST("/request-permission", handlers.RequestPermission)
				permissions.PUT("/permission-request/respond", handlers.RespondPermission)
				permissions.DELETE("/delete-requests-to-patient", handlers.DeleteRequestsToPatient)
			}

			messages := protected.Group("/messages")
			{
				messages.POST("/send", handlers.SendMessage)
				messages.GET("", handlers.ListMessages)
				messages.GET("/from/:sender_email", handlers.ListMessages)
				messages.POST("/read/:id", handlers.MarkMessageRead)
			}
		}
	}
}
