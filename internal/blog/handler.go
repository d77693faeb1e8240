package blog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sfm-backend/internal/cache"
	"sfm-backend/internal/httpx"
	"sfm-backend/internal/middleware"
	"sfm-backend/internal/transport"
	"sfm-backend/internal/validation"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service  *Service
	val      *validation.Validator
	log      *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, c cache.Cache, cacheTTL time.Duration) *Handler {
	return &Handler{
		service:  service,
		val:      val,
		log:      log,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	page, limit, err := httpx.ParsePage(r.URL.Query(), 10, 50)
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	filter := PublicListFilter{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Tag:      strings.TrimSpace(r.URL.Query().Get("tag")),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.service.ListPublic(ctx, filter, page, limit)
	if err != nil {
		if errors.Is(err, ErrInvalidCategory) {
			transport.WriteError(w, http.StatusBadRequest, "invalid query", map[string]string{"category": "oneof"})
			return
		}
		log.Error("blog public list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("blog public list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, transport.NewPage(items, page, limit, total))
}

// PublicGetBySlug also counts the view; see Service.GetPublishedBySlug.
func (h *Handler) PublicGetBySlug(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	// The route wildcard is shared with the id-based mutation routes;
	// the value carried here is the slug.
	slug := strings.TrimSpace(chi.URLParam(r, "id"))
	if slug == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	post, err := h.service.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("blog public get: not found", slog.String("slug", slug))
			transport.WriteError(w, http.StatusNotFound, "post not found", nil)
			return
		}
		log.Error("blog public get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("blog public get: ok", slog.String("slug", slug), slog.Int64("views", post.Views))
	transport.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	h.distinct(w, r, "blog:categories", h.service.Categories)
}

func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	h.distinct(w, r, "blog:tags", h.service.Tags)
}

func (h *Handler) distinct(w http.ResponseWriter, r *http.Request, cacheKey string, fetch func(context.Context) ([]string, error)) {
	log := h.logWithRequest(r)
	if cached, ok, err := h.cache.Get(r.Context(), cacheKey); err == nil && ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	values, err := fetch(ctx)
	if err != nil {
		log.Error("blog distinct: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if payload, err := json.Marshal(values); err == nil {
		_ = h.cache.Set(r.Context(), cacheKey, payload, h.cacheTTL)
	}
	transport.WriteJSON(w, http.StatusOK, values)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	page, limit, err := httpx.ParsePage(r.URL.Query(), 20, 100)
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, total, err := h.service.ListAdmin(ctx, page, limit)
	if err != nil {
		log.Error("admin blog list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin blog list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, transport.NewPage(items, page, limit, total))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("blog create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("blog create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	authorID := ""
	if claims := middleware.ClaimsFromContext(r.Context()); claims != nil {
		authorID = claims.UserID()
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	post, err := h.service.Create(ctx, req, authorID)
	if err != nil {
		if errors.Is(err, ErrSlugExists) {
			transport.WriteError(w, http.StatusConflict, "slug already exists", nil)
			return
		}
		if errors.Is(err, ErrInvalidSlug) {
			transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"title": "slug"})
			return
		}
		log.Error("blog create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("blog create: ok", slog.String("post_id", post.ID), slog.String("slug", post.Slug))
	transport.WriteJSON(w, http.StatusCreated, post)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("blog update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("blog update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	post, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("blog update: not found", slog.String("post_id", id))
			transport.WriteError(w, http.StatusNotFound, "post not found", nil)
			return
		}
		log.Error("blog update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("blog update: ok", slog.String("post_id", id))
	transport.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("blog delete: not found", slog.String("post_id", id))
			transport.WriteError(w, http.StatusNotFound, "post not found", nil)
			return
		}
		log.Error("blog delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("blog delete: ok", slog.String("post_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
