package repository

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/infra/postgres"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/sanitize"
)

// MaxSlugLength is the longest slug, in characters, GetCategoryBySlug will
// look up.
const MaxSlugLength = 100

const foreignKeyViolation = "23503"

var (
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidSlug      = errors.New("invalid category slug")
	ErrNoQuestions      = errors.New("category has no questions")
)

// QuestionRepository stores categories, questions and answers.
// Every read goes to the database; nothing is cached.
type QuestionRepository struct {
	db     postgres.DBTX
	logger *zap.Logger
}

// NewQuestionRepository creates a QuestionRepository on db. Failures inside
// batch inserts are reported to logger.
func NewQuestionRepository(db postgres.DBTX, logger *zap.Logger) *QuestionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionRepository{db: db, logger: logger}
}

// InsertCategory inserts a category unless one with the same slug exists.
// ErrCategoryExists is returned when the insert was a no-op.
func (r *QuestionRepository) InsertCategory(ctx context.Context, name string) (entities.Category, error) {
	query := `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
		RETURNING id, name, slug
	`

	safeName := sanitize.CategoryName(name)
	slug := sanitize.Slugify(safeName)

	var c entities.Category
	err := r.db.QueryRow(ctx, query, safeName, slug).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Category{}, ErrCategoryExists
		}
		return entities.Category{}, fmt.Errorf("insert category: %w", err)
	}

	return c, nil
}

// InsertCategories inserts names one at a time and returns the rows that were
// created, in input order. Failures are logged and skipped.
func (r *QuestionRepository) InsertCategories(ctx context.Context, names []string) []entities.Category {
	inserted := make([]entities.Category, 0, len(names))
	for _, name := range names {
		c, err := r.InsertCategory(ctx, name)
		if err != nil {
			r.logger.Warn("unable to insert category",
				zap.String("category", name),
				zap.Error(err),
			)
			continue
		}
		inserted = append(inserted, c)
	}

	return inserted
}

// InsertQuestion stores q's text, formatted and sanitized, under categoryID.
// Its answers are not stored.
func (r *QuestionRepository) InsertQuestion(ctx context.Context, q entities.Question, categoryID int) (entities.StoredQuestion, error) {
	query := `
		INSERT INTO questions (text, category_id)
		VALUES ($1, $2)
		RETURNING id, text, category_id
	`

	var sq entities.StoredQuestion
	err := r.db.QueryRow(ctx, query, sanitize.HTML(q.Question), categoryID).Scan(
		&sq.ID,
		&sq.Text,
		&sq.CategoryID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entities.StoredQuestion{}, ErrCategoryNotFound
		}
		return entities.StoredQuestion{}, fmt.Errorf("insert question: %w", err)
	}

	return sq, nil
}

// InsertAnswer stores a under questionID.
func (r *QuestionRepository) InsertAnswer(ctx context.Context, a entities.Answer, questionID int) (entities.StoredAnswer, error) {
	query := `
		INSERT INTO answers (text, question_id, correct)
		VALUES ($1, $2, $3)
		RETURNING id, text, question_id, correct
	`

	var (
		sa      entities.StoredAnswer
		correct int
	)
	err := r.db.QueryRow(ctx, query, sanitize.Text(a.Answer), questionID, boolToInt(a.Correct)).Scan(
		&sa.ID,
		&sa.Text,
		&sa.QuestionID,
		&correct,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entities.StoredAnswer{}, ErrQuestionNotFound
		}
		return entities.StoredAnswer{}, fmt.Errorf("insert answer: %w", err)
	}
	sa.Correct = correct != 0

	return sa, nil
}

// InsertAnswers inserts answers one at a time and returns the stored rows in
// input order. Failures are logged and skipped.
func (r *QuestionRepository) InsertAnswers(ctx context.Context, answers []entities.Answer, questionID int) []entities.StoredAnswer {
	inserted := make([]entities.StoredAnswer, 0, len(answers))
	for _, a := range answers {
		sa, err := r.InsertAnswer(ctx, a, questionID)
		if err != nil {
			r.logger.Warn("unable to insert answer",
				zap.String("answer", a.Answer),
				zap.Int("question_id", questionID),
				zap.Error(err),
			)
			continue
		}
		inserted = append(inserted, sa)
	}

	return inserted
}

// GetCategories lists every category.
func (r *QuestionRepository) GetCategories(ctx context.Context) ([]entities.Category, error) {
	query := `
		SELECT id, name, slug
		FROM categories
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	defer rows.Close()

	categories := make([]entities.Category, 0)
	for rows.Next() {
		var c entities.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// GetCategoryBySlug looks a category up by its slug. Empty slugs and slugs
// longer than MaxSlugLength are rejected without a query.
func (r *QuestionRepository) GetCategoryBySlug(ctx context.Context, slug string) (entities.Category, error) {
	if !validSlug(slug) {
		return entities.Category{}, ErrInvalidSlug
	}

	query := `
		SELECT id, name, slug
		FROM categories
		WHERE slug = $1
	`

	var c entities.Category
	err := r.db.QueryRow(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Category{}, ErrCategoryNotFound
		}
		return entities.Category{}, fmt.Errorf("get category by slug: %w", err)
	}

	return c, nil
}

// GetQuestionsAndAnswersByCategory fetches the questions of a category and
// their answers with two queries and zips them into one QuestionCategory.
func (r *QuestionRepository) GetQuestionsAndAnswersByCategory(ctx context.Context, slug string) (entities.QuestionCategory, error) {
	if !validSlug(slug) {
		return entities.QuestionCategory{}, ErrInvalidSlug
	}

	questions, err := r.questionsByCategory(ctx, slug)
	if err != nil {
		return entities.QuestionCategory{}, err
	}
	if len(questions) == 0 {
		return entities.QuestionCategory{}, ErrNoQuestions
	}

	answers, err := r.answersByCategory(ctx, slug)
	if err != nil {
		return entities.QuestionCategory{}, err
	}

	return ZipQuestionsAndAnswers(questions, answers), nil
}

// CreateQuestion stores a submitted question and its answers; the answer at
// correctIndex is marked correct. An error is returned only when the question
// itself could not be stored: answers that fail are logged and skipped, so a
// question can end up with fewer answers than submitted.
func (r *QuestionRepository) CreateQuestion(
	ctx context.Context,
	text string,
	categoryID int,
	answers []string,
	correctIndex int,
) (entities.StoredQuestion, error) {
	question, err := r.InsertQuestion(ctx, entities.Question{Question: text}, categoryID)
	if err != nil {
		return entities.StoredQuestion{}, fmt.Errorf("create question: %w", err)
	}

	submitted := make([]entities.Answer, len(answers))
	for i, answer := range answers {
		submitted[i] = entities.Answer{Answer: answer, Correct: i == correctIndex}
	}

	stored := r.InsertAnswers(ctx, submitted, question.ID)
	if len(stored) != len(submitted) {
		r.logger.Warn("question stored with missing answers",
			zap.Int("question_id", question.ID),
			zap.Int("submitted", len(submitted)),
			zap.Int("stored", len(stored)),
		)
	}

	return question, nil
}

func (r *QuestionRepository) questionsByCategory(ctx context.Context, slug string) ([]entities.StoredQuestion, error) {
	query := `
		SELECT q.id, q.text, q.category_id, c.name AS category_name
		FROM questions AS q
		JOIN categories AS c ON q.category_id = c.id
		WHERE c.slug = $1
		ORDER BY q.id ASC
	`

	rows, err := r.db.Query(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("get questions by category: %w", err)
	}
	defer rows.Close()

	questions := make([]entities.StoredQuestion, 0)
	for rows.Next() {
		var q entities.StoredQuestion
		if err := rows.Scan(&q.ID, &q.Text, &q.CategoryID, &q.CategoryName); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

func (r *QuestionRepository) answersByCategory(ctx context.Context, slug string) ([]entities.StoredAnswer, error) {
	query := `
		SELECT a.id, a.text, a.question_id, a.correct
		FROM answers AS a
		JOIN questions AS q ON a.question_id = q.id
		JOIN categories AS c ON q.category_id = c.id
		WHERE c.slug = $1
		ORDER BY a.id ASC
	`

	rows, err := r.db.Query(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("get answers by category: %w", err)
	}
	defer rows.Close()

	answers := make([]entities.StoredAnswer, 0)
	for rows.Next() {
		var (
			a       entities.StoredAnswer
			correct int
		)
		if err := rows.Scan(&a.ID, &a.Text, &a.QuestionID, &correct); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		a.Correct = correct != 0
		answers = append(answers, a)
	}

	return answers, rows.Err()
}

func validSlug(slug string) bool {
	return slug != "" && utf8.RuneCountInString(slug) <= MaxSlugLength
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
