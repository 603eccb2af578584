package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"smartmail/config"
	"smartmail/internal/api"
	"smartmail/internal/cache"
	"smartmail/internal/db"
	"smartmail/internal/genai"
	"smartmail/internal/mailbox"
	"smartmail/internal/mailer"
	"smartmail/internal/mq"
	redisclient "smartmail/internal/redis"
	"smartmail/internal/repository"
	"smartmail/internal/service"
	"smartmail/pkg/logger"
)

func main() {
	// 1. Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	// 2. Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := db.EnsureSchema(context.Background(), dbConn); err != nil {
		log.Fatal("Schema setup failed", zap.Error(err))
	}

	// 3. Init Redis (cache store; requests degrade to miss if it is down)
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	emailCache := cache.New(
		cache.NewRedisStore(rdb),
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		log,
	)

	// 4. Init RabbitMQ producer (optional)
	var producer service.Publisher
	if cfg.MQ.URL != "" {
		p, err := mq.NewProducer(cfg.MQ.URL)
		if err != nil {
			log.Fatal("failed to init producer", zap.Error(err))
		}
		defer p.Close()
		producer = p
	}

	// 5. Init repositories
	emailRepo := repository.NewEmailRepository(dbConn)

	// 6. Init services
	remoteMailbox := mailbox.NewMailbox(cfg.IMAP, log)
	ingestService := service.NewIngestService(emailRepo, remoteMailbox, producer, cfg.IMAP.User, log)
	emailService := service.NewEmailService(emailRepo, ingestService, emailCache, log)

	// 7. Init handlers
	emailHandler := api.NewEmailHandler(emailService)
	sendHandler := api.NewSendHandler(mailer.NewMailer(cfg.SMTP, log))
	generateHandler := api.NewGenerateHandler(genai.NewClient(cfg.GenAI))

	// 8. Init router
	router := api.NewRouter(emailHandler, sendHandler, generateHandler, emailCache)

	// 9. Run server
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}
