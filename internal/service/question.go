package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/infra/postgres/repository"
)

// ErrCategoryNotFound is returned when a category page has nothing to show.
var ErrCategoryNotFound = errors.New("category not found")

// QuestionService serves categories and accepts new questions.
type QuestionService struct {
	repo      QuestionRepository
	notifier  Notifier
	validator *FormValidator
	logger    *zap.Logger
}

// NewQuestionService creates a new QuestionService. A nil notifier disables
// moderator notifications.
func NewQuestionService(repo QuestionRepository, notifier Notifier, logger *zap.Logger) *QuestionService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionService{
		repo:      repo,
		notifier:  notifier,
		validator: NewFormValidator(),
		logger:    logger,
	}
}

func (s *QuestionService) Categories(ctx context.Context) ([]entities.Category, error) {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return categories, nil
}

// Category returns the questions of the category with the given slug.
// ErrCategoryNotFound covers bad slugs, unknown slugs and empty categories.
func (s *QuestionService) Category(ctx context.Context, slug string) (entities.QuestionCategory, error) {
	category, err := s.repo.GetQuestionsAndAnswersByCategory(ctx, slug)
	switch {
	case err == nil:
		return category, nil
	case errors.Is(err, repository.ErrInvalidSlug),
		errors.Is(err, repository.ErrNoQuestions),
		errors.Is(err, repository.ErrCategoryNotFound):
		return entities.QuestionCategory{}, ErrCategoryNotFound
	default:
		return entities.QuestionCategory{}, fmt.Errorf("get category %q: %w", slug, err)
	}
}

// Submit validates and stores a question sent through the form. Invalid
// input yields ValidationErrors and nothing is written. On success the
// category the question was filed under is returned.
func (s *QuestionService) Submit(ctx context.Context, form SubmissionForm) (entities.Category, error) {
	form = form.Clean()
	errs := s.validator.Validate(form)

	categories, err := s.Categories(ctx)
	if err != nil {
		return entities.Category{}, err
	}

	category, ok := findCategory(categories, form.Category)
	if !ok {
		errs.add(FieldCategory, MessageCategory)
	}
	if len(errs) > 0 {
		return entities.Category{}, errs
	}

	correct, _ := strconv.Atoi(form.Correct)

	question, err := s.repo.CreateQuestion(ctx, form.Question, category.ID, form.Answers, correct)
	if err != nil {
		return entities.Category{}, fmt.Errorf("create question: %w", err)
	}

	s.logger.Info("question submitted",
		zap.Int("question_id", question.ID),
		zap.String("category", category.Slug),
	)

	submission := Submission{
		QuestionID: question.ID,
		Question:   form.Question,
		Category:   category,
		Answers:    form.Answers,
		Correct:    correct,
	}
	if err := s.notifier.QuestionSubmitted(ctx, submission); err != nil {
		s.logger.Warn("unable to notify moderators",
			zap.Int("question_id", question.ID),
			zap.Error(err),
		)
	}

	return category, nil
}

func findCategory(categories []entities.Category, id string) (entities.Category, bool) {
	for _, c := range categories {
		if strconv.Itoa(c.ID) == id {
			return c, true
		}
	}
	return entities.Category{}, false
}
