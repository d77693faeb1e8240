package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sfm-backend/internal/httpx"
	"sfm-backend/internal/middleware"
	"sfm-backend/internal/transport"
	"sfm-backend/internal/validation"
	"github.com/go-chi/chi/v5"
)

// Stripe webhook payloads are small; anything bigger is rejected outright.
const maxWebhookPayload = 64 << 10

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
	}
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateSessionRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("checkout create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("checkout create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	resp, err := h.service.CreateSession(ctx, req.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTemplateNotFound):
			log.Warn("checkout create: template not found", slog.String("template_id", req.TemplateID))
			transport.WriteError(w, http.StatusNotFound, "template not found", nil)
		case errors.Is(err, ErrInvalidPrice):
			transport.WriteError(w, http.StatusBadRequest, "template has no purchasable price", nil)
		case errors.Is(err, ErrNotConfigured):
			transport.WriteError(w, http.StatusServiceUnavailable, "payments not configured", nil)
		default:
			log.Error("checkout create: stripe error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "payment provider error", nil)
		}
		return
	}

	log.Info("checkout create: ok",
		slog.String("template_id", req.TemplateID),
		slog.String("session_id", resp.SessionID))
	transport.WriteJSON(w, http.StatusOK, resp)
}

// Webhook needs the raw body for signature verification, so it bypasses the
// usual JSON decoding helpers.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookPayload+1))
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, "unreadable payload", nil)
		return
	}
	if len(payload) > maxWebhookPayload {
		transport.WriteError(w, http.StatusRequestEntityTooLarge, "payload too large", nil)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing signature", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	result, err := h.service.HandleWebhook(ctx, payload, signature)
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			log.Warn("webhook: signature verification failed")
			transport.WriteError(w, http.StatusBadRequest, "invalid signature", nil)
			return
		}
		// A verified event that failed processing gets a 500 so Stripe
		// retries the delivery.
		log.Error("webhook: processing failed",
			slog.String("event_id", result.EventID),
			slog.String("event_type", result.EventType),
			slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "webhook processing failed", nil)
		return
	}

	if result.Handled {
		log.Info("webhook: sale recorded",
			slog.String("event_id", result.EventID))
	}
	transport.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	details, err := h.service.GetSession(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			log.Warn("checkout session get: not found", slog.String("session_id", id))
			transport.WriteError(w, http.StatusNotFound, "session not found", nil)
		case errors.Is(err, ErrNotConfigured):
			transport.WriteError(w, http.StatusServiceUnavailable, "payments not configured", nil)
		default:
			log.Error("checkout session get: stripe error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "payment provider error", nil)
		}
		return
	}

	transport.WriteJSON(w, http.StatusOK, details)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateProductRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("stripe product create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("stripe product create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	tpl, err := h.service.SyncProduct(ctx, req.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTemplateNotFound):
			log.Warn("stripe product create: template not found", slog.String("template_id", req.TemplateID))
			transport.WriteError(w, http.StatusNotFound, "template not found", nil)
		case errors.Is(err, ErrInvalidPrice):
			transport.WriteError(w, http.StatusBadRequest, "template has no purchasable price", nil)
		case errors.Is(err, ErrNotConfigured):
			transport.WriteError(w, http.StatusServiceUnavailable, "payments not configured", nil)
		default:
			log.Error("stripe product create: error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "payment provider error", nil)
		}
		return
	}

	log.Info("stripe product create: ok",
		slog.String("template_id", tpl.ID),
		slog.String("stripe_product_id", tpl.StripeProductID))
	transport.WriteJSON(w, http.StatusOK, tpl)
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
