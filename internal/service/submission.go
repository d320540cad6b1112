package service

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/sanitize"
)

// Form field names.
const (
	FieldQuestion = "question"
	FieldCategory = "category"
	FieldAnswers  = "answers"
	FieldAnswer   = "answer"
	FieldCorrect  = "correct"
)

// Messages shown next to invalid form fields.
const (
	MessageQuestion     = "Spurning verður að vera að minnsta kosti 10 stafir, að hámarki 500"
	MessageCategory     = "Flokkur verður að vera gildur"
	MessageAnswersCount = "Gefa verður upp fjögur svör"
	MessageAnswer       = "Svar verður að vera að minnsta kosti 10 stafir, að hámarki 500"
	MessageCorrect      = "Velja verður að vera rétt svar"
)

// SubmissionForm is a question as posted from the submission form.
type SubmissionForm struct {
	Question string   `form:"question" validate:"min=10,max=500"`
	Category string   `form:"category"`
	Answers  []string `form:"answers" validate:"len=4,dive,min=10,max=500"`
	Correct  string   `form:"correct" validate:"oneof=0 1 2 3"`
}

// Clean strips markup from every free-text field and trims the rest.
func (f SubmissionForm) Clean() SubmissionForm {
	answers := make([]string, len(f.Answers))
	for i, a := range f.Answers {
		answers[i] = sanitize.Clean(a)
	}

	return SubmissionForm{
		Question: sanitize.Clean(f.Question),
		Category: strings.TrimSpace(f.Category),
		Answers:  answers,
		Correct:  strings.TrimSpace(f.Correct),
	}
}

// Submission is an accepted question, as passed to the Notifier.
type Submission struct {
	QuestionID int
	Question   string
	Category   entities.Category
	Answers    []string
	Correct    int
}

// ValidationErrors maps form field names to the message shown for them.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

// add keeps the first message recorded for a field.
func (e ValidationErrors) add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// FormValidator checks a SubmissionForm against its validate tags.
type FormValidator struct {
	validate *validator.Validate
}

func NewFormValidator() *FormValidator {
	return &FormValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate returns the field errors of form. The result is empty, not nil,
// when the form is valid. Category existence is not checked here.
func (v *FormValidator) Validate(form SubmissionForm) ValidationErrors {
	errs := ValidationErrors{}

	err := v.validate.Struct(form)
	if err == nil {
		return errs
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.add(FieldQuestion, MessageQuestion)
		return errs
	}

	for _, fe := range fieldErrs {
		switch field := fe.StructField(); {
		case field == "Question":
			errs.add(FieldQuestion, MessageQuestion)
		case field == "Answers":
			errs.add(FieldAnswers, MessageAnswersCount)
		case strings.HasPrefix(field, "Answers["):
			errs.add(FieldAnswer, MessageAnswer)
		case field == "Correct":
			errs.add(FieldCorrect, MessageCorrect)
		}
	}

	return errs
}
