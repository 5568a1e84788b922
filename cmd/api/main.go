package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"unidomus/internal/config"
	"unidomus/internal/database"
	"unidomus/internal/middleware"
	"unidomus/internal/modules/auth"
	"unidomus/internal/modules/chat"
	"unidomus/internal/modules/listing"
	"unidomus/internal/modules/match"
	"unidomus/internal/modules/moderation"
	"unidomus/internal/modules/notification"
	"unidomus/internal/modules/report"
	"unidomus/internal/modules/user"
	"unidomus/internal/pkg/geocode"
	jwtsvc "unidomus/internal/pkg/jwt"
	"unidomus/internal/pkg/mailer"
	"unidomus/internal/repository"
)

const tokenCleanupInterval = time.Hour

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	listingRepo := repository.NewListingRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	} else {
		log.Println("SMTP_HOST not set, emails go to the console")
		mail = mailer.DevConsoleMailer{}
	}

	notificationService := notification.NewService(notificationRepo, userRepo, mail)
	notificationHandler := notification.NewHandler(notificationService)

	moderationService := moderation.NewService(userRepo, listingRepo, notificationService)
	moderationHandler := moderation.NewHandler(moderationService)

	authService := auth.NewService(
		userRepo, tokenRepo,
		auth.NewGoogleTokenVerifier(),
		j, mail,
		cfg.VerificationTokenTTL, cfg.AppURL,
	)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	listingService := listing.NewService(listingRepo, userRepo, geocode.New(cfg.GeocodeBaseURL), notificationService)
	listingHandler := listing.NewHandler(listingService, moderationService)

	hub := chat.NewHub()
	matchService := match.NewService(matchRepo, userRepo, notificationService, hub)
	matchHandler := match.NewHandler(matchService)
	chatHandler := chat.NewHandler(hub, matchService, matchService)

	reportService := report.NewService(reportRepo, userRepo, listingRepo, matchRepo)
	reportHandler := report.NewHandler(reportService)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// listing reads are public but banned listings stay visible to admins
		public := v1.Group("/")
		public.Use(middleware.OptionalAuth(j))
		{
			listingHandler.RegisterPublicRoutes(public)
		}

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			userHandler.RegisterRoutes(protected)
			matchHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			listingHandler.RegisterProtectedRoutes(protected, middleware.AdminOnly())
			notificationHandler.RegisterRoutes(protected, middleware.AdminOnly())
			reportHandler.RegisterRoutes(protected, middleware.AdminOnly())

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				moderationHandler.RegisterRoutes(admin)
			}
		}
	}

	go cleanupExpiredTokens(tokenRepo)

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("shutting down")
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// cleanupExpiredTokens periodically drops verification tokens past their
// grace window so abandoned registrations do not pile up.
func cleanupExpiredTokens(tokens *repository.TokenRepository) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := tokens.DeleteExpired(ctx, time.Now())
		cancel()
		if err != nil {
			log.Printf("token cleanup failed: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("token cleanup removed %d expired tokens", n)
		}
	}
}
