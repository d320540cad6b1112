package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/sanitize"
)

// LoadReport summarizes a bulk load.
type LoadReport struct {
	FilesRead          int
	FilesSkipped       int
	CategoriesInserted int
	CategoriesReused   int
	CategoriesSkipped  int
	QuestionsInserted  int
	QuestionsFailed    int
	AnswersInserted    int
}

// Loader copies the question corpus into the database.
type Loader struct {
	corpus Corpus
	repo   LoaderRepository
	logger *zap.Logger
}

// NewLoader creates a new Loader.
func NewLoader(corpus Corpus, repo LoaderRepository, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{corpus: corpus, repo: repo, logger: logger}
}

// Load reads the index and every category file it lists, then inserts
// categories, questions and answers. Bad files and failed rows are logged and
// skipped; only an unreadable index or a cancelled context aborts the load.
// Nothing is rolled back on partial failure.
func (l *Loader) Load(ctx context.Context) (LoadReport, error) {
	var report LoadReport

	items, err := l.corpus.Index()
	if err != nil {
		l.logger.Error("unable to read index file", zap.Error(err))
		return report, fmt.Errorf("read index: %w", err)
	}
	l.logger.Info("index file read", zap.Int("entries", len(items)))

	categories := make([]entities.QuestionCategory, 0, len(items))
	for _, item := range items {
		category, err := l.corpus.Category(item)
		if err != nil {
			l.logger.Error("unable to read category file",
				zap.String("title", item.Title),
				zap.String("file", item.File),
				zap.Error(err),
			)
			report.FilesSkipped++
			continue
		}
		report.FilesRead++
		categories = append(categories, category)
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if len(c.Questions) > 0 {
			names = append(names, c.Title)
		}
	}

	inserted := make(map[string]entities.Category)
	for _, c := range l.repo.InsertCategories(ctx, names) {
		inserted[c.Name] = c
	}
	// A row created in this run counts as inserted for the first file that
	// resolves to it and as reused for every later one.
	claimed := make(map[int]bool, len(inserted))

	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if len(category.Questions) == 0 {
			l.logger.Error("no questions found for category", zap.String("file", category.File))
			report.CategoriesSkipped++
			continue
		}

		dbCategory, ok := l.resolveCategory(ctx, category, inserted)
		if !ok {
			report.CategoriesSkipped++
			continue
		}
		if _, fresh := inserted[dbCategory.Name]; fresh && !claimed[dbCategory.ID] {
			report.CategoriesInserted++
		} else {
			report.CategoriesReused++
		}
		claimed[dbCategory.ID] = true

		for _, q := range category.Questions {
			stored, err := l.repo.InsertQuestion(ctx, q, dbCategory.ID)
			if err != nil {
				l.logger.Error("unable to insert question",
					zap.String("category", category.Title),
					zap.Error(err),
				)
				report.QuestionsFailed++
				continue
			}
			report.QuestionsInserted++

			answers := l.repo.InsertAnswers(ctx, q.Answers, stored.ID)
			if len(answers) == 0 {
				l.logger.Error("unable to insert answers", zap.Int("question_id", stored.ID))
			}
			report.AnswersInserted += len(answers)
		}

		l.logger.Info("inserted questions and answers for category",
			zap.String("category", category.Title),
			zap.Int("questions", len(category.Questions)),
		)
	}

	return report, nil
}

// resolveCategory finds the row for category among the rows inserted in this
// run, falling back to a slug lookup for rows that existed beforehand.
func (l *Loader) resolveCategory(
	ctx context.Context,
	category entities.QuestionCategory,
	inserted map[string]entities.Category,
) (entities.Category, bool) {
	if c, ok := inserted[sanitize.CategoryName(category.Title)]; ok {
		return c, true
	}

	c, err := l.repo.GetCategoryBySlug(ctx, sanitize.CategorySlug(category.Title))
	if err != nil {
		l.logger.Error("unable to find category",
			zap.String("category", category.Title),
			zap.Error(err),
		)
		return entities.Category{}, false
	}
	return c, true
}
