package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"dressup/internal/config"
	"dressup/internal/database"
	"dressup/internal/domain"
	"dressup/internal/middleware"
	"dressup/internal/modules/admin"
	"dressup/internal/modules/auth"
	"dressup/internal/modules/closet"
	"dressup/internal/modules/payment"
	"dressup/internal/modules/product"
	"dressup/internal/modules/upload"
	"dressup/internal/modules/user"
	jwtsvc "dressup/internal/pkg/jwt"
	"dressup/internal/pkg/mailer"
	"dressup/internal/repository"
)

const uploadDir = "./uploads"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Contact{},
		&domain.RefreshToken{},
		&domain.Product{},
		&domain.Category{},
		&domain.ProductCategory{},
		&domain.ProductRating{},
		&domain.ProductReview{},
		&domain.Closet{},
		&domain.ClosetItem{},
		&domain.Subscription{},
		&domain.PaymentHistory{},
	); err != nil {
		log.Fatal("migrate failed:", err)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	productRepo := repository.NewProductRepository(db)
	closetRepo := repository.NewClosetRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	accessJWT := jwtsvc.New(cfg.JWTSecret, cfg.AccessTTL)
	actionJWT := jwtsvc.New(cfg.JWTExtraSecret, cfg.ActivateTTL)

	var m mailer.Mailer
	if cfg.SenderEmail != "" && cfg.SenderPass != "" {
		m = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderEmail, cfg.SenderPass)
	} else {
		log.Println("SENDER_EMAIL not set, emails go to the log")
		m = mailer.NewDevConsoleMailer(true)
	}

	authService := auth.NewService(
		userRepo,
		refreshRepo,
		accessJWT,
		actionJWT,
		auth.NewGoogleVerifier(cfg.GoogleClientID),
		m,
		cfg.SiteDomain,
		cfg.ActivateTTL,
		cfg.ResetTTL,
		cfg.RefreshTTL,
	)
	authHandler := auth.NewHandler(authService, cfg.RefreshTokenKey, cfg.RefreshTTL, cfg.SecureCookies)

	userHandler := user.NewHandler(user.NewService(userRepo))
	productHandler := product.NewHandler(product.NewService(productRepo))
	closetHandler := closet.NewHandler(closet.NewService(closetRepo, productRepo))
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo))
	adminHandler := admin.NewHandler(admin.NewService(adminRepo, userRepo))
	uploadHandler := upload.NewHandler(uploadDir)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())
	r.Static("/static", uploadDir)

	v1 := r.Group("/api/v1")
	{
		// public; an optional token personalizes catalog responses
		public := v1.Group("/")
		public.Use(middleware.OptionalAuth(accessJWT))
		{
			authHandler.RegisterPublicRoutes(public)
			productHandler.RegisterPublicRoutes(public)
		}

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(accessJWT))
		{
			authHandler.RegisterProtectedRoutes(protected)
			userHandler.RegisterProtectedRoutes(protected)
			productHandler.RegisterProtectedRoutes(protected)
			closetHandler.RegisterProtectedRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			uploadHandler.RegisterProtectedRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
