// Package view renders the quiz pages. The same templates back the HTTP
// application and the static site generator.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/sanitize"
)

// Template names.
const (
	IndexTemplate    = "index.html"
	CategoryTemplate = "category.html"
	FormTemplate     = "form.html"
	ErrorTemplate    = "error.html"
)

// Static asset names.
const (
	StylesAsset = "styles.css"
	ScriptAsset = "main.js"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page template.
func Templates() (*template.Template, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Static returns the CSS and client-side grading script.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// fs.Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}

// Page is the data every template is executed with.
type Page struct {
	Title     template.HTML
	Assets    string // prefix of the static asset URLs
	Home      string // link back to the front page
	CanCreate bool   // show the link to the submission form

	Categories []CategoryLink
	Category   *CategoryView
	Form       *FormView
	Message    string
}

// Render executes the named template with p.
func Render(w io.Writer, t *template.Template, name string, p Page) error {
	if err := t.ExecuteTemplate(w, name, p); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// CategoryLink is an entry on the front page. Name is safe HTML.
type CategoryLink struct {
	Name template.HTML
	URL  string
}

type CategoryView struct {
	Title     template.HTML
	Questions []QuestionView
}

type QuestionView struct {
	Number  int
	Text    template.HTML
	Answers []AnswerView
}

type AnswerView struct {
	ID      string
	Name    string
	Text    template.HTML
	Correct bool
}

// Shuffler reorders n elements through swap; math/rand/v2's Shuffle fits.
// A nil Shuffler keeps the stored order.
type Shuffler func(n int, swap func(i, j int))

// StoredCategory builds the view of a category read from the database,
// whose text is already sanitized HTML.
func StoredCategory(c entities.QuestionCategory, shuffle Shuffler) *CategoryView {
	return categoryView(c, shuffle, trusted, trusted)
}

// RawCategory builds the view of a category read from the corpus files.
// Question bodies are formatted as paragraphs and answers escaped.
func RawCategory(c entities.QuestionCategory, shuffle Shuffler) *CategoryView {
	return categoryView(c, shuffle, sanitize.StringToHTML, sanitize.ReplaceHTMLEntities)
}

func trusted(s string) string { return s }

func categoryView(
	c entities.QuestionCategory,
	shuffle Shuffler,
	questionHTML func(string) string,
	answerHTML func(string) string,
) *CategoryView {
	v := &CategoryView{
		Title:     template.HTML(answerHTML(c.Title)),
		Questions: make([]QuestionView, 0, len(c.Questions)),
	}

	for qi, q := range c.Questions {
		answers := make([]entities.Answer, len(q.Answers))
		copy(answers, q.Answers)
		if shuffle != nil {
			shuffle(len(answers), func(i, j int) { answers[i], answers[j] = answers[j], answers[i] })
		}

		qv := QuestionView{
			Number:  qi + 1,
			Text:    template.HTML(questionHTML(q.Question)),
			Answers: make([]AnswerView, len(answers)),
		}
		for ai, a := range answers {
			qv.Answers[ai] = AnswerView{
				ID:      "question" + strconv.Itoa(qi) + "-" + strconv.Itoa(ai),
				Name:    "question" + strconv.Itoa(qi),
				Text:    template.HTML(answerHTML(a.Answer)),
				Correct: a.Correct,
			}
		}
		v.Questions = append(v.Questions, qv)
	}

	return v
}

// StoredCategoryLinks links each stored category to its page on the server.
func StoredCategoryLinks(categories []entities.Category) []CategoryLink {
	links := make([]CategoryLink, len(categories))
	for i, c := range categories {
		links[i] = CategoryLink{
			Name: template.HTML(c.Name),
			URL:  "/spurningar/" + c.Slug,
		}
	}
	return links
}
