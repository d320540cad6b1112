package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/config"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/infra/postgres"
	pgrepo "github.com/vefforritun/vef2-2025-v2-synilausn/internal/infra/postgres/repository"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/logger"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/parser"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/repository"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/service"
)

func main() {
	os.Exit(run())
}

// run resets the schema and loads the corpus. It returns the exit code.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Println(err)
		return 1
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Println(err)
		return 1
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lg.Info("starting setup")

	dsn, _ := cfg.DB.DSN()
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Error("unable to connect to database", zap.Error(err))
		return 1
	}
	defer pool.Close()

	if err := postgres.Reset(ctx, postgres.NewTransactor(pool), pool); err != nil {
		lg.Error("error setting up database from files", zap.Error(err))
		return 1
	}
	lg.Info("schema created")

	corpus := repository.NewCorpusRepository(cfg.DataDir, parser.New(lg))
	loader := service.NewLoader(corpus, pgrepo.NewQuestionRepository(pool, lg), lg)

	report, err := loader.Load(ctx)
	if err != nil {
		lg.Error("error reading data from files", zap.Error(err))
		return 1
	}

	lg.Info("setup complete",
		zap.Int("files_read", report.FilesRead),
		zap.Int("files_skipped", report.FilesSkipped),
		zap.Int("categories_inserted", report.CategoriesInserted),
		zap.Int("categories_reused", report.CategoriesReused),
		zap.Int("categories_skipped", report.CategoriesSkipped),
		zap.Int("questions_inserted", report.QuestionsInserted),
		zap.Int("questions_failed", report.QuestionsFailed),
		zap.Int("answers_inserted", report.AnswersInserted),
	)
	return 0
}
