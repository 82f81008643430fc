package newsletter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/store/audit"
	newsletterstore "github.com/gracechapel/churchhub/internal/app/store/newsletters"
	"github.com/gracechapel/churchhub/internal/app/system/auditlog"
	"github.com/gracechapel/churchhub/internal/app/system/inputval"
	"github.com/gracechapel/churchhub/internal/app/system/paging"
	"github.com/gracechapel/churchhub/internal/app/system/respond"
	"github.com/gracechapel/churchhub/internal/app/system/timeouts"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves newsletter subscriptions.
type Handler struct {
	Store *newsletterstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs a newsletter Handler.
func NewHandler(store *newsletterstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Audit: audit, Log: logger}
}

type subscribeInput struct {
	Email     string `json:"email" validate:"required,email"`
	Frequency string `json:"frequency"`
}

// Subscribe handles POST /api/newsletter. Subscribing the same email twice,
// in any casing, keeps a single subscription.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in subscribeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, "a valid email is required")
		return
	}
	if in.Frequency == "" {
		in.Frequency = models.FrequencyWeekly
	}
	if !models.ValidFrequency(in.Frequency) {
		respond.BadRequest(w, "frequency must be weekly or monthly")
		return
	}

	created, err := h.Store.Subscribe(ctx, strings.TrimSpace(in.Email), in.Frequency)
	if err != nil {
		h.Log.Error("newsletter: subscribe failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"ok": true, "created": created})
}

// Unsubscribe handles DELETE /api/newsletter. The email arrives in the body
// so that unsubscribe links do not carry addresses in access logs.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in subscribeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if !inputval.Email(in.Email) {
		respond.BadRequest(w, "a valid email is required")
		return
	}

	err := h.Store.Unsubscribe(ctx, in.Email)
	switch {
	case errors.Is(err, newsletterstore.ErrNotFound):
		respond.NotFound(w, "subscription not found")
	case err != nil:
		h.Log.Error("newsletter: unsubscribe failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		respond.OK(w)
	}
}

// List handles GET /api/newsletter for admins. Subscriber listing with a
// total count for the back-office table.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	page := paging.Parse(r)
	subs, err := h.Store.List(ctx, page.Skip, page.Limit)
	if err != nil {
		h.Log.Error("newsletter: list failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	total, err := h.Store.Count(ctx)
	if err != nil {
		h.Log.Error("newsletter: count failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	if subs == nil {
		subs = []models.Newsletter{}
	}
	respond.JSON(w, http.StatusOK, map[string]any{"total": total, "items": subs})
}

// AdminUnsubscribe handles DELETE /api/newsletter/{email}. Unlike the public
// endpoint this one is audited.
func (h *Handler) AdminUnsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	email := chi.URLParam(r, "email")
	if !inputval.Email(email) {
		respond.BadRequest(w, "a valid email is required")
		return
	}

	err := h.Store.Unsubscribe(ctx, email)
	switch {
	case errors.Is(err, newsletterstore.ErrNotFound):
		respond.NotFound(w, "subscription not found")
	case err != nil:
		h.Log.Error("newsletter: unsubscribe failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		h.Audit.Record(ctx, r, audit.ActionDelete, audit.ResourceNewsletter, email, "")
		respond.OK(w)
	}
}
