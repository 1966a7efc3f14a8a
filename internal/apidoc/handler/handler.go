package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jsonvault/jsonvault/internal/apidoc"
	"github.com/jsonvault/jsonvault/internal/apidoc/repository"
	"github.com/jsonvault/jsonvault/internal/apidoc/service"
	"github.com/jsonvault/jsonvault/internal/validate"
	"github.com/jsonvault/jsonvault/pkg/logger"
	"github.com/jsonvault/jsonvault/pkg/metrics"
)

// Handler serves the public endpoint API. Each handler is a linear pipeline:
// validate input, call the store, serialize the result. Validation failures
// return before any store call.
type Handler struct {
	svc        service.Service
	production bool
}

// New builds a Handler. In production mode upstream error detail is
// suppressed from response bodies.
func New(svc service.Service, production bool) *Handler {
	return &Handler{svc: svc, production: production}
}

// Register wires the endpoint routes onto the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.POST("/create", h.Create)
	api.GET("", h.List)
	api.GET("/:slug", h.Read)
	api.PUT("/:slug", h.Update)
	api.DELETE("/:slug", h.Delete)
}

// Create handles POST /api/create.
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		JSONData string `json:"jsonData"`
		Slug     string `json:"slug"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Name == "" || req.JSONData == "" || req.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, jsonData and slug are required"})
		return
	}
	if !validate.ValidSlug(req.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug may only contain lowercase letters, digits and hyphens"})
		return
	}
	raw, ok := validate.JSONValue(req.JSONData)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jsonData is not valid JSON"})
		return
	}

	doc := &apidoc.ApiDocument{Slug: req.Slug, Name: req.Name, JSONData: string(raw)}
	err := h.svc.Create(c.Request.Context(), doc)
	switch {
	case errors.Is(err, repository.ErrAlreadyExists):
		metrics.DocumentOps.WithLabelValues("create", "conflict").Inc()
		c.JSON(http.StatusConflict, gin.H{"error": "an endpoint with this slug already exists"})
	case err != nil:
		metrics.DocumentOps.WithLabelValues("create", "error").Inc()
		h.fail(c, http.StatusInternalServerError, "failed to create endpoint", err)
	default:
		metrics.DocumentOps.WithLabelValues("create", "ok").Inc()
		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"endpoint": "/api/" + doc.Slug,
			"message":  "endpoint created",
		})
	}
}

// Read handles GET /api/:slug and serves the stored JSON verbatim.
func (h *Handler) Read(c *gin.Context) {
	slug := c.Param("slug")
	if !validate.ValidSlug(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug may only contain lowercase letters, digits and hyphens"})
		return
	}
	doc, err := h.svc.Get(c.Request.Context(), slug)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		metrics.DocumentOps.WithLabelValues("read", "missing").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
	case err != nil:
		metrics.DocumentOps.WithLabelValues("read", "error").Inc()
		h.fail(c, http.StatusInternalServerError, "failed to read endpoint", err)
	default:
		metrics.DocumentOps.WithLabelValues("read", "ok").Inc()
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc.JSONData))
	}
}

// Update handles PUT /api/:slug.
func (h *Handler) Update(c *gin.Context) {
	slug := c.Param("slug")
	if !validate.ValidSlug(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug may only contain lowercase letters, digits and hyphens"})
		return
	}
	var req struct {
		JSONData string `json:"jsonData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.JSONData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jsonData is required"})
		return
	}
	raw, ok := validate.JSONValue(req.JSONData)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jsonData is not valid JSON"})
		return
	}

	err := h.svc.Update(c.Request.Context(), slug, string(raw))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		metrics.DocumentOps.WithLabelValues("update", "missing").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
	case err != nil:
		metrics.DocumentOps.WithLabelValues("update", "error").Inc()
		h.fail(c, http.StatusInternalServerError, "failed to update endpoint", err)
	default:
		metrics.DocumentOps.WithLabelValues("update", "ok").Inc()
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "endpoint updated"})
	}
}

// Delete handles DELETE /api/:slug. Hard delete, no tombstone.
func (h *Handler) Delete(c *gin.Context) {
	slug := c.Param("slug")
	if !validate.ValidSlug(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug may only contain lowercase letters, digits and hyphens"})
		return
	}
	err := h.svc.Delete(c.Request.Context(), slug)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		metrics.DocumentOps.WithLabelValues("delete", "missing").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
	case err != nil:
		metrics.DocumentOps.WithLabelValues("delete", "error").Inc()
		h.fail(c, http.StatusInternalServerError, "failed to delete endpoint", err)
	default:
		metrics.DocumentOps.WithLabelValues("delete", "ok").Inc()
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "endpoint deleted"})
	}
}

// List handles GET /api. jsonData is omitted to keep the payload small.
func (h *Handler) List(c *gin.Context) {
	docs, err := h.svc.List(c.Request.Context())
	if err != nil {
		metrics.DocumentOps.WithLabelValues("list", "error").Inc()
		h.fail(c, http.StatusInternalServerError, "failed to list endpoints", err)
		return
	}
	metrics.DocumentOps.WithLabelValues("list", "ok").Inc()
	out := make([]gin.H, 0, len(docs))
	for _, d := range docs {
		out = append(out, gin.H{
			"slug":      d.Slug,
			"name":      d.Name,
			"createdAt": d.CreatedAt,
			"endpoint":  "/api/" + d.Slug,
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "endpoints": out})
}

// Health handles GET /health with a store round-trip.
func (h *Handler) Health(c *gin.Context) {
	if err := h.svc.Ping(c.Request.Context()); err != nil {
		h.fail(c, http.StatusInternalServerError, "document store unreachable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}

// fail logs err and writes a JSON error body. Detail is included only
// outside production mode.
func (h *Handler) fail(c *gin.Context, status int, msg string, err error) {
	if err != nil {
		logger.Errorf("%s: %v", msg, err)
	}
	body := gin.H{"error": msg}
	if err != nil && !h.production {
		body["detail"] = err.Error()
	}
	c.JSON(status, body)
}
