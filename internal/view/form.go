package view

import (
	"html/template"
	"strconv"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
)

// AnswerCount is the number of answer inputs on the submission form.
const AnswerCount = 4

// FormValues is what the user typed into the submission form.
type FormValues struct {
	Question string
	Category string
	Answers  []string
	Correct  string
}

type FormView struct {
	Question   string
	Categories []CategoryOption
	Answers    []AnswerField
	Errors     map[string]string
}

type CategoryOption struct {
	ID       int
	Name     template.HTML
	Selected bool
}

type AnswerField struct {
	Index   int
	Number  int
	Text    string
	Correct bool
}

// NewFormView fills the submission form with values, marking the fields
// named in errs as invalid.
func NewFormView(categories []entities.Category, values FormValues, errs map[string]string) *FormView {
	f := &FormView{
		Question:   values.Question,
		Categories: make([]CategoryOption, len(categories)),
		Answers:    make([]AnswerField, AnswerCount),
		Errors:     errs,
	}

	for i, c := range categories {
		f.Categories[i] = CategoryOption{
			ID:       c.ID,
			Name:     template.HTML(c.Name),
			Selected: strconv.Itoa(c.ID) == values.Category,
		}
	}

	for i := range f.Answers {
		f.Answers[i] = AnswerField{
			Index:   i,
			Number:  i + 1,
			Correct: strconv.Itoa(i) == values.Correct,
		}
		if i < len(values.Answers) {
			f.Answers[i].Text = values.Answers[i]
		}
	}

	return f
}

// Invalid reports whether field failed validation.
func (f *FormView) Invalid(field string) bool {
	_, ok := f.Errors[field]
	return ok
}
