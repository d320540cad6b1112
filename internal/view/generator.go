package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/sanitize"
)

const (
	indexTitle          = "Spurningaflokkar"
	categoryTitlePrefix = "Spurningaflokkur—"
	staticIndex         = "index.html"
)

// Corpus reads the question files the site is generated from.
type Corpus interface {
	Index() ([]entities.FileItem, error)
	Category(item entities.FileItem) (entities.QuestionCategory, error)
}

// Generator writes the quiz as a static site.
type Generator struct {
	corpus    Corpus
	templates *template.Template
	outDir    string
	shuffle   Shuffler
	logger    *zap.Logger
}

func NewGenerator(
	corpus Corpus,
	templates *template.Template,
	outDir string,
	shuffle Shuffler,
	logger *zap.Logger,
) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		corpus:    corpus,
		templates: templates,
		outDir:    outDir,
		shuffle:   shuffle,
		logger:    logger,
	}
}

// HTMLFileName maps a category file such as html.json to html.html.
func HTMLFileName(file string) string {
	return strings.Replace(file, ".json", ".html", 1)
}

// Generate writes index.html, one page per readable category and the static
// assets into the output directory, and returns the number of category pages.
func (g *Generator) Generate() (int, error) {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	items, err := g.corpus.Index()
	if err != nil {
		return 0, fmt.Errorf("read index: %w", err)
	}
	g.logger.Info("index file read", zap.Int("entries", len(items)))

	categories := make([]entities.QuestionCategory, 0, len(items))
	for _, item := range items {
		category, err := g.corpus.Category(item)
		if err != nil {
			g.logger.Error("unable to read category file",
				zap.String("file", item.File),
				zap.Error(err),
			)
			continue
		}
		categories = append(categories, category)
	}

	links := make([]CategoryLink, len(categories))
	for i, c := range categories {
		links[i] = CategoryLink{
			Name: template.HTML(sanitize.ReplaceHTMLEntities(c.Title)),
			URL:  HTMLFileName(c.File),
		}
	}

	index := Page{
		Title:      indexTitle,
		Home:       staticIndex,
		Categories: links,
	}
	if err := g.write(staticIndex, IndexTemplate, index); err != nil {
		return 0, err
	}

	written := 0
	for _, c := range categories {
		if c.File == "" {
			g.logger.Error("missing file for category", zap.String("title", c.Title))
			continue
		}

		view := RawCategory(c, g.shuffle)
		page := Page{
			Title:    template.HTML(categoryTitlePrefix) + view.Title,
			Home:     staticIndex,
			Category: view,
		}
		if err := g.write(HTMLFileName(c.File), CategoryTemplate, page); err != nil {
			return written, err
		}
		written++
	}

	if err := g.copyAssets(); err != nil {
		return written, err
	}

	return written, nil
}

func (g *Generator) write(name, tmpl string, p Page) error {
	var buf bytes.Buffer
	if err := Render(&buf, g.templates, tmpl, p); err != nil {
		return err
	}

	path := filepath.Join(g.outDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	g.logger.Info("file written", zap.String("path", path))

	return nil
}

func (g *Generator) copyAssets() error {
	for _, name := range []string{StylesAsset, ScriptAsset} {
		data, err := fs.ReadFile(Static(), name)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(g.outDir, name), data, 0o644); err != nil {
			return fmt.Errorf("write asset %s: %w", name, err)
		}
	}
	return nil
}
