package main

import (
	"context"
	"log"
	"time"

	"github.com/andrianpratama/member-auth-service/config"
	"github.com/andrianpratama/member-auth-service/db"
	"github.com/andrianpratama/member-auth-service/internal/auth/handler"
	repo "github.com/andrianpratama/member-auth-service/internal/auth/repository/postgres"
	"github.com/andrianpratama/member-auth-service/internal/auth/service"
	"github.com/andrianpratama/member-auth-service/internal/mailer"
	"github.com/andrianpratama/member-auth-service/internal/ratelimit"
	"github.com/andrianpratama/member-auth-service/pkg/constant"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	memberRepo := repo.NewPostgresRepository(dbPool)

	var (
		lockout ratelimit.LockoutTracker
		limiter ratelimit.RecoveryLimiter
	)
	switch cfg.CounterBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		lockout = ratelimit.NewRedisLockoutTracker(rdb, constant.MaxLoginAttempts, constant.LockoutWindow)
		limiter = ratelimit.NewRedisRecoveryLimiter(rdb, constant.OTPMaxRequests, constant.OTPRequestWindow)
	default:
		lockout = ratelimit.NewMemoryLockoutTracker(constant.MaxLoginAttempts, constant.LockoutWindow)
		limiter = ratelimit.NewMemoryRecoveryLimiter(constant.OTPMaxRequests, constant.OTPRequestWindow)
	}

	var mail mailer.Mailer
	switch cfg.MailProvider {
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("aws config: %v", err)
		}
		mail = mailer.NewSESMailer(ses.NewFromConfig(awsCfg), cfg.MailFrom)
	default:
		mail = mailer.NewConsoleMailer()
	}

	tokenService := service.NewTokenService(cfg.TokenSecret, time.Duration(cfg.TokenExpiryHrs)*time.Hour)
	otpManager := service.NewOTPManager(memberRepo)
	authService := service.NewAuthService(memberRepo, tokenService, otpManager, lockout, limiter, mail)
	authHandler := handler.NewAuthHandler(authService, tokenService)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
