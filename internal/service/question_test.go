package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/infra/postgres/repository"
)

type fakeNotifier struct {
	submissions []Submission
	err         error
}

func (n *fakeNotifier) QuestionSubmitted(_ context.Context, s Submission) error {
	n.submissions = append(n.submissions, s)
	return n.err
}

func validForm() SubmissionForm {
	return SubmissionForm{
		Question: "  Hvað stendur HTML fyrir?  ",
		Category: "1",
		Answers: []string{
			"HyperText Markup Language",
			"High Tech Modern Language",
			"Home Tool Markup Language",
			"Hyperlinks and Text Markup",
		},
		Correct: "0",
	}
}

func storeWithCategory() *fakeStore {
	return &fakeStore{categories: []entities.Category{{ID: 1, Name: "HTML", Slug: "html"}}}
}

func TestQuestionServiceCategory(t *testing.T) {
	want := entities.QuestionCategory{Title: "HTML", Questions: []entities.Question{question("Q?", "A")}}

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"found", nil, nil},
		{"invalid slug", repository.ErrInvalidSlug, ErrCategoryNotFound},
		{"no questions", repository.ErrNoQuestions, ErrCategoryNotFound},
		{"unknown slug", fmt.Errorf("get category: %w", repository.ErrCategoryNotFound), ErrCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{category: want, categoryErr: tt.err}
			svc := NewQuestionService(store, nil, nil)

			got, err := svc.Category(context.Background(), "html")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Category() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !reflect.DeepEqual(got, want) {
				t.Errorf("Category() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestQuestionServiceCategoryStoreFailure(t *testing.T) {
	dbErr := errors.New("connection refused")
	svc := NewQuestionService(&fakeStore{categoryErr: dbErr}, nil, nil)

	_, err := svc.Category(context.Background(), "html")
	if !errors.Is(err, dbErr) || errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("Category() error = %v, want wrapped %v", err, dbErr)
	}
}

func TestQuestionServiceSubmit(t *testing.T) {
	store := storeWithCategory()
	notifier := &fakeNotifier{}
	svc := NewQuestionService(store, notifier, nil)

	form := validForm()
	form.Answers[2] = "<script>alert(1)</script>Home Tool Markup Language"
	form.Correct = "2"

	category, err := svc.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if category.Slug != "html" {
		t.Errorf("Submit() category = %+v, want html", category)
	}

	if len(store.created) != 1 {
		t.Fatalf("CreateQuestion called %d times, want 1", len(store.created))
	}
	call := store.created[0]
	if call.text != "Hvað stendur HTML fyrir?" {
		t.Errorf("question text = %q, want trimmed text", call.text)
	}
	if call.categoryID != 1 || call.correctIndex != 2 {
		t.Errorf("CreateQuestion(category %d, correct %d), want (1, 2)", call.categoryID, call.correctIndex)
	}
	if call.answers[2] != "Home Tool Markup Language" {
		t.Errorf("answers[2] = %q, want markup stripped", call.answers[2])
	}

	if len(notifier.submissions) != 1 || notifier.submissions[0].QuestionID != 1 {
		t.Errorf("notifier submissions = %+v, want one for question 1", notifier.submissions)
	}
}

func TestQuestionServiceSubmitInvalid(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(f *SubmissionForm)
		field string
		msg   string
	}{
		{"short question", func(f *SubmissionForm) { f.Question = "Of stutt" }, FieldQuestion, MessageQuestion},
		{"long question", func(f *SubmissionForm) { f.Question = strings.Repeat("a", 501) }, FieldQuestion, MessageQuestion},
		{"question is only markup", func(f *SubmissionForm) { f.Question = "<script>alert('xss')</script>" }, FieldQuestion, MessageQuestion},
		{"unknown category", func(f *SubmissionForm) { f.Category = "99" }, FieldCategory, MessageCategory},
		{"missing category", func(f *SubmissionForm) { f.Category = "" }, FieldCategory, MessageCategory},
		{"three answers", func(f *SubmissionForm) { f.Answers = f.Answers[:3] }, FieldAnswers, MessageAnswersCount},
		{"short answer", func(f *SubmissionForm) { f.Answers[1] = "nei" }, FieldAnswer, MessageAnswer},
		{"correct out of range", func(f *SubmissionForm) { f.Correct = "4" }, FieldCorrect, MessageCorrect},
		{"correct missing", func(f *SubmissionForm) { f.Correct = "" }, FieldCorrect, MessageCorrect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storeWithCategory()
			notifier := &fakeNotifier{}
			svc := NewQuestionService(store, notifier, nil)

			form := validForm()
			tt.edit(&form)

			_, err := svc.Submit(context.Background(), form)

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Submit() error = %v, want ValidationErrors", err)
			}
			if verrs[tt.field] != tt.msg {
				t.Errorf("errors[%q] = %q, want %q (all: %v)", tt.field, verrs[tt.field], tt.msg, verrs)
			}
			if len(store.created) != 0 {
				t.Errorf("invalid submission was stored: %+v", store.created)
			}
			if len(notifier.submissions) != 0 {
				t.Errorf("moderators notified of invalid submission")
			}
		})
	}
}

func TestQuestionServiceSubmitStoreFailures(t *testing.T) {
	dbErr := errors.New("connection refused")

	store := storeWithCategory()
	store.getCategoriesErr = dbErr
	_, err := NewQuestionService(store, nil, nil).Submit(context.Background(), validForm())
	if !errors.Is(err, dbErr) {
		t.Errorf("Submit() with failing GetCategories error = %v, want %v", err, dbErr)
	}

	store = storeWithCategory()
	store.createErr = dbErr
	_, err = NewQuestionService(store, nil, nil).Submit(context.Background(), validForm())
	if !errors.Is(err, dbErr) {
		t.Errorf("Submit() with failing CreateQuestion error = %v, want %v", err, dbErr)
	}
}

func TestQuestionServiceSubmitNotifyFailure(t *testing.T) {
	store := storeWithCategory()
	notifier := &fakeNotifier{err: errors.New("telegram down")}
	core, logs := observer.New(zap.WarnLevel)

	_, err := NewQuestionService(store, notifier, zap.New(core)).Submit(context.Background(), validForm())
	if err != nil {
		t.Fatalf("Submit() error = %v, want nil when notification fails", err)
	}
	if len(store.created) != 1 {
		t.Errorf("question not stored")
	}
	if logs.FilterMessage("unable to notify moderators").Len() != 1 {
		t.Errorf("expected notification failure to be logged")
	}
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{FieldQuestion: "q", FieldAnswers: "a"}
	want := "invalid submission: answers: a; question: q"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
