package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/escotech/escotech-api/pkg/auth"
	"github.com/escotech/escotech-api/pkg/config"
	"github.com/escotech/escotech-api/pkg/database"
	"github.com/escotech/escotech-api/pkg/handlers"
	"github.com/escotech/escotech-api/pkg/mailer"
	"github.com/escotech/escotech-api/pkg/media"
	"github.com/escotech/escotech-api/pkg/middleware"
	"github.com/escotech/escotech-api/pkg/repositories"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// A missing .env is fine in deployed environments where real env
	// vars are set.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml", Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("port", cfg.Port),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("database", cfg.Database.Database))

	ctx := context.Background()

	if err := database.Migrate(cfg.Database.ConnectionString(), cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, cfg.Database.ConnectionString(), cfg.Database.MaxConnections)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	adminRepo := repositories.NewAdminRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	teamRepo := repositories.NewTeamMemberRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	uploader, err := media.NewCloudinaryUploader(
		cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		logger.Fatal("Failed to create media uploader", zap.Error(err))
	}

	mail := mailer.NewSMTPMailer(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.AdminEmail)

	tokenService := auth.NewService(cfg.JWTSecret, adminRepo)
	authMiddleware := auth.NewMiddleware(tokenService, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(logger).RegisterRoutes(mux)
	handlers.NewAuthHandler(adminRepo, tokenService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewProjectsHandler(projectRepo, uploader, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewTeamHandler(teamRepo, uploader, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewServicesHandler(serviceRepo, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewContactHandler(messageRepo, mail, logger).RegisterRoutes(mux)
	handlers.NewMessagesHandler(messageRepo, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewUploadHandler(uploader, logger).RegisterRoutes(mux, authMiddleware)

	// Legacy images uploaded before the move to the media provider.
	mux.Handle("GET /uploads/",
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	mux.HandleFunc("/", handlers.NotFoundHandler)

	handler := middleware.Recover(logger, cfg.IsProduction())(
		middleware.RequestID()(
			middleware.RequestLogger(logger)(
				middleware.CORS(cfg.FrontendURL)(mux))))

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting escotech-api",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))

	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a production JSON logger or a human-readable
// development logger depending on the configured environment.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
