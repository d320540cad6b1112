// Package parser turns untrusted JSON into validated quiz records.
//
// Item-level functions return a typed record or one of the sentinel errors
// below. Batch functions drop rejected items, keep the order of the accepted
// ones and report every rejection to the Parser's logger.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
)

var (
	ErrMalformedJSON = errors.New("malformed json")
	ErrNotObject     = errors.New("value is not an object")
	ErrNotArray      = errors.New("value is not an array")
	ErrMissingField  = errors.New("missing field")
	ErrWrongType     = errors.New("field has wrong type")
	ErrNoAnswers     = errors.New("question has no valid answers")
	ErrNoQuestions   = errors.New("category has no valid questions")
)

// Parser decodes index and category files.
type Parser struct {
	logger *zap.Logger
}

// New creates a Parser reporting rejected input to logger.
func New(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// IndexFile parses the corpus index. Malformed JSON or a non-array document
// yields an empty slice; invalid entries are skipped.
func (p *Parser) IndexFile(data []byte) []entities.FileItem {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		p.logger.Error("unable to parse index file", zap.Error(err))
		return []entities.FileItem{}
	}

	list, ok := doc.([]any)
	if !ok {
		p.logger.Error("index file is not an array")
		return []entities.FileItem{}
	}

	items := make([]entities.FileItem, 0, len(list))
	for i, v := range list {
		item, err := IndexFileItem(v)
		if err != nil {
			p.logger.Error("invalid item at index",
				zap.Int("index", i),
				zap.Any("item", v),
				zap.Error(err),
			)
			continue
		}
		items = append(items, item)
	}

	return items
}

// QuestionCategory parses a category file. The category is rejected with
// ErrNoQuestions when none of its questions survive validation.
func (p *Parser) QuestionCategory(data []byte) (entities.QuestionCategory, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		p.logger.Error("unable to parse question category", zap.Error(err))
		return entities.QuestionCategory{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return entities.QuestionCategory{}, ErrNotObject
	}

	title, err := stringField(obj, "title")
	if err != nil {
		return entities.QuestionCategory{}, err
	}

	raw, ok := obj["questions"]
	if !ok {
		return entities.QuestionCategory{}, fmt.Errorf("%w: questions", ErrMissingField)
	}

	category := entities.QuestionCategory{
		Title:     title,
		Questions: Questions(raw),
	}
	if len(category.Questions) == 0 {
		return entities.QuestionCategory{}, ErrNoQuestions
	}

	return category, nil
}

// IndexFileItem validates a single index entry.
func IndexFileItem(v any) (entities.FileItem, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return entities.FileItem{}, ErrNotObject
	}

	title, err := stringField(obj, "title")
	if err != nil {
		return entities.FileItem{}, err
	}
	file, err := stringField(obj, "file")
	if err != nil {
		return entities.FileItem{}, err
	}

	return entities.FileItem{Title: title, File: file}, nil
}

// Answers keeps the valid answers of v. A non-array yields an empty slice.
func Answers(v any) []entities.Answer {
	list, ok := v.([]any)
	if !ok {
		return []entities.Answer{}
	}

	answers := make([]entities.Answer, 0, len(list))
	for _, item := range list {
		answer, err := parseAnswer(item)
		if err != nil {
			continue
		}
		answers = append(answers, answer)
	}

	return answers
}

// Questions keeps the valid questions of v. A question is valid when it has a
// string text and at least one valid answer.
func Questions(v any) []entities.Question {
	list, ok := v.([]any)
	if !ok {
		return []entities.Question{}
	}

	questions := make([]entities.Question, 0, len(list))
	for _, item := range list {
		question, err := parseQuestion(item)
		if err != nil {
			continue
		}
		questions = append(questions, question)
	}

	return questions
}

func parseAnswer(v any) (entities.Answer, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return entities.Answer{}, ErrNotObject
	}

	text, err := stringField(obj, "answer")
	if err != nil {
		return entities.Answer{}, err
	}

	raw, ok := obj["correct"]
	if !ok {
		return entities.Answer{}, fmt.Errorf("%w: correct", ErrMissingField)
	}
	correct, ok := raw.(bool)
	if !ok {
		return entities.Answer{}, fmt.Errorf("%w: correct", ErrWrongType)
	}

	return entities.Answer{Answer: text, Correct: correct}, nil
}

func parseQuestion(v any) (entities.Question, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return entities.Question{}, ErrNotObject
	}

	text, err := stringField(obj, "question")
	if err != nil {
		return entities.Question{}, err
	}

	raw, ok := obj["answers"]
	if !ok {
		return entities.Question{}, fmt.Errorf("%w: answers", ErrMissingField)
	}
	if _, ok := raw.([]any); !ok {
		return entities.Question{}, fmt.Errorf("%w: answers", ErrWrongType)
	}

	answers := Answers(raw)
	if len(answers) == 0 {
		return entities.Question{}, ErrNoAnswers
	}

	return entities.Question{Question: text, Answers: answers}, nil
}

func stringField(obj map[string]any, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrWrongType, key)
	}
	return s, nil
}
