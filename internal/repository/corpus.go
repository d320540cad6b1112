package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/parser"
)

// IndexFileName is the name of the corpus index inside the data directory.
const IndexFileName = "index.json"

var (
	ErrIndexUnreadable    = errors.New("unable to read index file")
	ErrCategoryUnreadable = errors.New("unable to read category file")
)

// CorpusRepository reads the JSON question corpus: an index file listing
// category files, all relative to one directory.
type CorpusRepository struct {
	fsys   fs.FS
	parser *parser.Parser
}

// NewCorpusRepository creates a CorpusRepository reading from dir.
func NewCorpusRepository(dir string, p *parser.Parser) *CorpusRepository {
	return NewCorpusRepositoryFS(os.DirFS(dir), p)
}

// NewCorpusRepositoryFS creates a CorpusRepository reading from fsys.
func NewCorpusRepositoryFS(fsys fs.FS, p *parser.Parser) *CorpusRepository {
	return &CorpusRepository{fsys: fsys, parser: p}
}

// Index returns the valid entries of the index file.
func (r *CorpusRepository) Index() ([]entities.FileItem, error) {
	data, err := fs.ReadFile(r.fsys, IndexFileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexUnreadable, err)
	}

	return r.parser.IndexFile(data), nil
}

// Category reads and parses the category file of item. The returned category
// remembers the file it came from.
func (r *CorpusRepository) Category(item entities.FileItem) (entities.QuestionCategory, error) {
	data, err := fs.ReadFile(r.fsys, item.File)
	if err != nil {
		return entities.QuestionCategory{}, fmt.Errorf("%w %s: %w", ErrCategoryUnreadable, item.File, err)
	}

	category, err := r.parser.QuestionCategory(data)
	if err != nil {
		return entities.QuestionCategory{}, fmt.Errorf("parse %s: %w", item.File, err)
	}
	category.File = item.File

	return category, nil
}
