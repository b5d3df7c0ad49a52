package main

import (
	"log"
	"os"
	"time"

	"clinicrecord-backend/internal/config"
	"clinicrecord-backend/internal/handlers"
	"clinicrecord-backend/internal/repositories"
	"clinicrecord-backend/internal/routes"
	"clinicrecord-backend/internal/services"
	"clinicrecord-backend/pkg/mailer"
	"clinicrecord-backend/pkg/otp"
	"clinicrecord-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Connect DB
	config.ConnectDB()

	// Init Firebase
	utils.InitFCM()

	// 3. Wire repositories and services
	users := repositories.NewUserRepository(config.DB)
	records := repositories.NewMedicalRecordRepository(config.DB)
	requests := repositories.NewPermissionRequestRepository(config.DB)
	messages := repositories.NewMessageRepository(config.DB)

	otps := otp.NewStore(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"), 5*time.Minute)

	permissionService := services.NewPermissionService(users, records, requests)
	handlers.Setup(
		services.NewAccountService(users, otps, mailer.FromEnv()),
		services.NewRecordService(users, records, permissionService),
		permissionService,
		services.NewMessageService(users, messages),
	)

	// 4. Init Router (CORS + rate limit live in SetupRoutes)
	r := gin.Default()
	routes.SetupRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		utils.APIResponse(c, 200, true, "Server OK!", nil)
	})

	// 5. Run Server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server listening on port " + port)
	r.Run(":" + port)
}
