package main

import (
	"context"
	"log"
	"math/rand"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/config"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/delivery/telegram"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/delivery/web"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/infra/postgres"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/infra/postgres/repository"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/logger"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, _ := cfg.DB.DSN()
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Fatal("unable to connect to database", zap.Error(err))
	}
	defer pool.Close()

	notifier, err := telegram.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ModeratorChatID, lg)
	if err != nil {
		lg.Warn("moderator notifications disabled", zap.Error(err))
		notifier = service.NopNotifier{}
	}

	questionRepo := repository.NewQuestionRepository(pool, lg)
	questionService := service.NewQuestionService(questionRepo, notifier, lg)

	handler := web.NewHandler(questionService, rand.Shuffle, lg)
	router, err := web.NewRouter(handler, lg)
	if err != nil {
		lg.Fatal("unable to build router", zap.Error(err))
	}

	srv := web.NewServer(":"+strconv.Itoa(cfg.Port), router, lg)
	if err := srv.Run(ctx); err != nil {
		lg.Error("server stopped", zap.Error(err))
		return
	}

	lg.Info("server stopped")
}
