package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/adewale/walletapp/internal/config"
	"github.com/adewale/walletapp/internal/database"
	"github.com/adewale/walletapp/internal/handler"
	"github.com/adewale/walletapp/internal/mailer"
	"github.com/adewale/walletapp/internal/payment"
	"github.com/adewale/walletapp/internal/queue"
	"github.com/adewale/walletapp/internal/repository"
	"github.com/adewale/walletapp/internal/router"
	"github.com/adewale/walletapp/internal/view"
)

func main() {
	// Load .env when present; real deployments set the environment
	// directly and have no file.
	_ = godotenv.Load()

	cfg := config.Load()

	// Document store for accounts and consumed payment references.
	client, err := database.Open(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongodb connect failed: %v", err)
	}
	db := client.Database(cfg.MongoDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatalf("mongodb index setup failed: %v", err)
	}
	cancel()

	// Redis holds the session map; without it nobody can log in, so a
	// failed connection is fatal rather than a degraded mode.
	redisClient := config.NewRedisClient()
	if redisClient == nil {
		log.Fatal("redis connect failed")
	}

	accounts := repository.NewAccountRepo(db)
	payments := repository.NewPaymentRepo(db)
	sessions := repository.NewRedisSessionRepo(redisClient)

	mail := mailer.NewClient(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom)
	verifier := payment.NewClient(cfg.PaystackBase, cfg.PaystackKey)

	authHandler := handler.NewAuthHandler(cfg, accounts, sessions)
	passwordHandler := handler.NewPasswordHandler(cfg, accounts, mail)
	paymentHandler := handler.NewPaymentHandler(accounts, payments, verifier)

	// Background consumer that appends credited payments to the audit
	// log. It reconnects on its own; failures never affect requests.
	go func() {
		if err := queue.StartPaymentConsumer(); err != nil {
			log.Printf("payment consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Renderer = view.New()
	router.RegisterRoutes(e, authHandler, passwordHandler)
	router.RegisterProtected(e, authHandler, paymentHandler, cfg.SessionSecret, sessions, accounts)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
