package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lingo-quest-service/handlers"
	"lingo-quest-service/middleware"
	"lingo-quest-service/models"
	"lingo-quest-service/services"
	"lingo-quest-service/utils"
	"lingo-quest-service/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.UserLanguageProgress{},
		&models.DailyQuest{},
		&models.ActivityEvent{},
		&models.Lesson{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	progressService := services.NewProgressService(db)
	activityService := services.NewActivityService(db, progressService)
	questService := services.NewQuestService(db, progressService, activityService)

	// --- CONFIGURE Generation Service (lesson text + audio synthesis) ---
	generationURL := os.Getenv("GENERATION_SERVICE_URL")
	if generationURL == "" {
		log.Fatal("GENERATION_SERVICE_URL environment variable not set")
	}
	generationToken := os.Getenv("GENERATION_SERVICE_TOKEN")
	if generationToken == "" {
		log.Fatal("GENERATION_SERVICE_TOKEN environment variable not set")
	}
	generationClient := services.NewGenerationClient(generationURL, generationToken)
	// --- END CONFIG ---

	lessonService := services.NewLessonService(db, generationClient)

	audioClient := workers.NewAudioSyncClient(db, generationClient)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workers.PollLessonAudio(ctx, audioClient, 30*time.Second)

	progressService.StartStreakScheduler()

	// ✅ Setup routes — enforced Gateway auth + consistent /s/ prefix
	handlers.SetupProgressRoutes(app, progressService, activityService)
	handlers.SetupQuestRoutes(app, questService)
	handlers.SetupLessonRoutes(app, lessonService, activityService)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Lesson audio polling running (every 30s)")
	log.Println("✅ Streak maintenance scheduler running (hourly)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
