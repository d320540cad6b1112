package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/service"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/view"
)

const (
	titleIndex    = "Vefforritunarspurningarsíðan"
	titleForm     = "Búa til spurningu"
	titleNotFound = "Síða fannst ekki"
	titleError    = "Villa kom upp"

	msgNotFound = "Ó nei, efnið finnst ekki!"
	msgError    = "Eitthvað fór úrskeiðis, reyndu aftur síðar."

	assetsPrefix = "/static/"
	homePath     = "/"
	categoryPath = "/spurningar/"
)

type QuestionService interface {
	Categories(ctx context.Context) ([]entities.Category, error)
	Category(ctx context.Context, slug string) (entities.QuestionCategory, error)
	Submit(ctx context.Context, form service.SubmissionForm) (entities.Category, error)
}

type Handler struct {
	questions QuestionService
	shuffle   view.Shuffler
	logger    *zap.Logger
}

// NewHandler creates the HTTP handlers. shuffle reorders answers on category
// pages; nil keeps the stored order.
func NewHandler(questions QuestionService, shuffle view.Shuffler, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{questions: questions, shuffle: shuffle, logger: logger}
}

func page(title template.HTML) view.Page {
	return view.Page{Title: title, Assets: assetsPrefix, Home: homePath}
}

// Index lists the categories.
func (h *Handler) Index(c *gin.Context) {
	categories, err := h.questions.Categories(c.Request.Context())
	if err != nil {
		h.InternalError(c, err)
		return
	}

	p := page(titleIndex)
	p.CanCreate = true
	p.Categories = view.StoredCategoryLinks(categories)
	c.HTML(http.StatusOK, view.IndexTemplate, p)
}

// CategoryIndex has no page of its own.
func (h *Handler) CategoryIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, homePath)
}

// Category shows the questions of one category.
func (h *Handler) Category(c *gin.Context) {
	category, err := h.questions.Category(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, service.ErrCategoryNotFound) {
		h.NotFound(c)
		return
	}
	if err != nil {
		h.InternalError(c, err)
		return
	}

	// Stored titles are already escaped.
	p := page(template.HTML(category.Title))
	p.Category = view.StoredCategory(category, h.shuffle)
	c.HTML(http.StatusOK, view.CategoryTemplate, p)
}

// Form shows an empty submission form.
func (h *Handler) Form(c *gin.Context) {
	h.renderForm(c, http.StatusOK, view.FormValues{}, nil)
}

// Submit stores a submitted question and redirects to its category, or shows
// the form again with the field errors.
func (h *Handler) Submit(c *gin.Context) {
	var form service.SubmissionForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("unable to bind submission", zap.String("request_id", RequestIDFrom(c)), zap.Error(err))
	}

	category, err := h.questions.Submit(c.Request.Context(), form)

	var invalid service.ValidationErrors
	switch {
	case errors.As(err, &invalid):
		values := view.FormValues{
			Question: form.Question,
			Category: form.Category,
			Answers:  form.Answers,
			Correct:  form.Correct,
		}
		h.renderForm(c, http.StatusBadRequest, values, invalid)
	case err != nil:
		h.InternalError(c, err)
	default:
		c.Redirect(http.StatusSeeOther, categoryPath+category.Slug)
	}
}

func (h *Handler) renderForm(c *gin.Context, status int, values view.FormValues, errs map[string]string) {
	categories, err := h.questions.Categories(c.Request.Context())
	if err != nil {
		h.InternalError(c, err)
		return
	}

	p := page(titleForm)
	p.Form = view.NewFormView(categories, values, errs)
	c.HTML(status, view.FormTemplate, p)
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(c *gin.Context) {
	p := page(titleNotFound)
	p.Message = msgNotFound
	c.HTML(http.StatusNotFound, view.ErrorTemplate, p)
}

// InternalError logs err and renders the 500 page.
func (h *Handler) InternalError(c *gin.Context, err error) {
	h.logger.Error("request failed",
		zap.String("request_id", RequestIDFrom(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)

	p := page(titleError)
	p.Message = msgError
	c.HTML(http.StatusInternalServerError, view.ErrorTemplate, p)
}
