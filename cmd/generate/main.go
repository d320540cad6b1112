package main

import (
	"log"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/config"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/logger"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/parser"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/repository"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/view"
)

func main() {
	cfg, err := config.LoadStatic()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	templates, err := view.Templates()
	if err != nil {
		lg.Fatal("unable to load templates", zap.Error(err))
	}

	corpus := repository.NewCorpusRepository(cfg.DataDir, parser.New(lg))
	generator := view.NewGenerator(corpus, templates, cfg.OutputDir, rand.Shuffle, lg)

	lg.Info("starting to generate", zap.String("data_dir", cfg.DataDir), zap.String("output_dir", cfg.OutputDir))

	written, err := generator.Generate()
	if err != nil {
		lg.Error("error generating", zap.Error(err))
		_ = lg.Sync()
		os.Exit(1)
	}

	lg.Info("finished generating", zap.Int("category_pages", written))
}
