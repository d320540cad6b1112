package service

import (
	"context"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
)

// Corpus reads the question files that seed the database.
type Corpus interface {
	Index() ([]entities.FileItem, error)
	Category(item entities.FileItem) (entities.QuestionCategory, error)
}

// LoaderRepository is the part of the question store used by the bulk loader.
type LoaderRepository interface {
	InsertCategories(ctx context.Context, names []string) []entities.Category
	GetCategoryBySlug(ctx context.Context, slug string) (entities.Category, error)
	InsertQuestion(ctx context.Context, q entities.Question, categoryID int) (entities.StoredQuestion, error)
	InsertAnswers(ctx context.Context, answers []entities.Answer, questionID int) []entities.StoredAnswer
}

// QuestionRepository is the part of the question store used when serving
// and accepting questions.
type QuestionRepository interface {
	GetCategories(ctx context.Context) ([]entities.Category, error)
	GetQuestionsAndAnswersByCategory(ctx context.Context, slug string) (entities.QuestionCategory, error)
	CreateQuestion(
		ctx context.Context,
		text string,
		categoryID int,
		answers []string,
		correctIndex int,
	) (entities.StoredQuestion, error)
}

// Notifier tells moderators about accepted submissions.
type Notifier interface {
	QuestionSubmitted(ctx context.Context, s Submission) error
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) QuestionSubmitted(context.Context, Submission) error { return nil }
