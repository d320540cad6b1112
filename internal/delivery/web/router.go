package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/view"
)

// NewRouter wires the routes, middleware, templates and static assets.
func NewRouter(h *Handler, logger *zap.Logger) (*gin.Engine, error) {
	tmpl, err := view.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger), Recovery(logger, h))
	router.SetHTMLTemplate(tmpl)

	router.StaticFS("/static", http.FS(view.Static()))

	router.GET("/", h.Index)
	router.GET("/spurningar", h.CategoryIndex)
	router.GET("/spurningar/bua-til", h.Form)
	router.POST("/spurningar/bua-til", h.Submit)
	router.GET("/spurningar/:slug", h.Category)

	router.NoRoute(h.NotFound)

	return router, nil
}
