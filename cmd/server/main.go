package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/foodbridge-app/foodbridge-backend/internal/config"
	"github.com/foodbridge-app/foodbridge-backend/internal/database"
	"github.com/foodbridge-app/foodbridge-backend/internal/handlers"
	"github.com/foodbridge-app/foodbridge-backend/internal/media"
	"github.com/foodbridge-app/foodbridge-backend/internal/middleware"
	"github.com/foodbridge-app/foodbridge-backend/internal/notify"
	"github.com/foodbridge-app/foodbridge-backend/internal/routes"
	"github.com/foodbridge-app/foodbridge-backend/internal/services"
	"github.com/foodbridge-app/foodbridge-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// The signing key must be present at boot, not discovered missing at
	// the first login attempt.
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set. Generate one with: openssl rand -base64 32")
	}

	// Email is a hard dependency of the recovery flow.
	if !cfg.HasMailgun() {
		log.Fatal("Mailgun is not configured. Set MAILGUN_DOMAIN, MAILGUN_API_KEY and MAIL_FROM.")
	}
	mailer := notify.NewMailgunMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom)
	log.Println("✅ Mailgun mailer configured")

	// SMS alerts are best-effort; missing credentials degrade to a no-op.
	var smsSender notify.SMSSender
	if cfg.HasTwilio() {
		smsSender = notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.AlertToNumber)
		log.Println("✅ Twilio SMS sender configured")
	} else {
		smsSender = notify.NoopSender{}
		log.Println("Warning: Twilio credentials not found. New-listing SMS alerts disabled")
	}

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Connect to Redis (OTP ledger)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Ensure the unique email index backing the uniqueness invariant
	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.EnsureUserIndexes(indexCtx, database.DB); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure user indexes: %v", err)
	} else {
		log.Println("✅ MongoDB user indexes ensured")
	}
	cancel()

	// Media intake: Cloudinary when configured, local disk otherwise
	var mediaStore media.Store
	uploadDir := ""
	if cfg.HasCloudinary() {
		cld, err := media.NewCloudinaryStore(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "foodbridge")
		if err != nil {
			log.Fatal("Failed to initialize Cloudinary:", err)
		}
		mediaStore = cld
		log.Println("✅ Cloudinary media store initialized")
	} else {
		disk, err := media.NewDiskStore(cfg.UploadDir, "http://localhost:"+cfg.Port+"/uploads")
		if err != nil {
			log.Fatal("Failed to initialize upload directory:", err)
		}
		mediaStore = disk
		uploadDir = cfg.UploadDir
		log.Println("Warning: Cloudinary credentials not found. Storing uploads on local disk")
	}

	// Wire stores and services
	userStore := store.NewMongoUserStore(database.DB)
	donationStore := store.NewMongoDonationStore(database.DB)
	otpLedger := store.NewRedisOTPLedger(database.RedisClient)

	accountService := services.NewAccountService(userStore)
	recoveryService := services.NewRecoveryService(userStore, otpLedger, mailer)
	donationService := services.NewDonationService(donationStore, mediaStore, smsSender)

	handlers.Init(accountService, recoveryService, donationService, mediaStore, []byte(cfg.JWTSecret), cfg.IsProduction())

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authn := middleware.Authenticator(accountService, []byte(cfg.JWTSecret))
	routes.SetupRoutes(r, authn, uploadDir)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/register")
	log.Println("  POST /api/auth/login")
	log.Println("  POST /api/auth/logout")
	log.Println("  GET  /api/auth/check-auth")
	log.Println("  POST /api/auth/update-profile")
	log.Println("  GET  /api/auth/get-image/{email}")
	log.Println("  POST /api/auth/forgot-password")
	log.Println("  POST /api/auth/reset-password")
	log.Println("  PUT  /api/auth/update-password")
	log.Println("  POST /api/donate/donation")
	log.Println("  GET  /api/donate/fetch")
	log.Println("  GET  /api/donate/fetches/{id}")

	log.Printf("🚀 FoodBridge backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
