package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/store/audit"
	eventstore "github.com/gracechapel/churchhub/internal/app/store/events"
	"github.com/gracechapel/churchhub/internal/app/system/auditlog"
	"github.com/gracechapel/churchhub/internal/app/system/inputval"
	"github.com/gracechapel/churchhub/internal/app/system/normalize"
	"github.com/gracechapel/churchhub/internal/app/system/paging"
	"github.com/gracechapel/churchhub/internal/app/system/respond"
	"github.com/gracechapel/churchhub/internal/app/system/timeouts"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the events API.
type Handler struct {
	Store *eventstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs an events Handler.
func NewHandler(store *eventstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Audit: audit, Log: logger}
}

type eventInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	StartsAt    string `json:"starts_at" validate:"required"`
	EndsAt      string `json:"ends_at"`
	Location    string `json:"location" validate:"max=300"`
	Area        string `json:"area" validate:"required"`
	Region      string `json:"region" validate:"max=120"`
	Church      string `json:"church" validate:"max=200"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	ButtonLabel string `json:"button_label" validate:"max=60"`
	ButtonLink  string `json:"button_link" validate:"omitempty,url"`
}

func (in *eventInput) validate() error {
	if err := inputval.Struct(in); err != nil {
		return err
	}
	if !models.ValidArea(in.Area) {
		return errors.New("unknown area")
	}
	if _, err := time.Parse(models.EventTimeLayout, in.StartsAt); err != nil {
		return errors.New("starts_at must be formatted as " + models.EventTimeLayout)
	}
	if in.EndsAt != "" {
		if _, err := time.Parse(models.EventTimeLayout, in.EndsAt); err != nil {
			return errors.New("ends_at must be formatted as " + models.EventTimeLayout)
		}
	}
	return nil
}

func (in *eventInput) apply(ev *models.Event) {
	ev.Title = normalize.Name(in.Title)
	ev.StartsAt = in.StartsAt
	ev.EndsAt = in.EndsAt
	ev.Location = normalize.Name(in.Location)
	ev.Area = in.Area
	ev.Region = normalize.Name(in.Region)
	ev.Church = normalize.Name(in.Church)
	ev.ImageURL = in.ImageURL
	ev.ButtonLabel = normalize.Name(in.ButtonLabel)
	ev.ButtonLink = in.ButtonLink
}

// List handles GET /api/events.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	page := paging.Parse(r)
	filter := eventstore.Filter{
		Area:  r.URL.Query().Get("area"),
		Skip:  page.Skip,
		Limit: page.Limit,
	}
	if filter.Area != "" && !models.ValidArea(filter.Area) {
		respond.BadRequest(w, "unknown area")
		return
	}
	if after := r.URL.Query().Get("after"); after != "" {
		if _, err := time.Parse(models.EventTimeLayout, after); err != nil {
			respond.BadRequest(w, "after must be formatted as "+models.EventTimeLayout)
			return
		}
		filter.After = after
	}

	items, err := h.Store.List(ctx, filter)
	if err != nil {
		h.Log.Error("events: list failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	if items == nil {
		items = []models.Event{}
	}
	respond.JSON(w, http.StatusOK, items)
}

// Get handles GET /api/events/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid event id")
		return
	}

	ev, err := h.Store.FindByID(ctx, id)
	switch {
	case errors.Is(err, eventstore.ErrNotFound):
		respond.NotFound(w, "event not found")
	case err != nil:
		h.Log.Error("events: lookup failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		respond.JSON(w, http.StatusOK, ev)
	}
}

// Create handles POST /api/events.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in eventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := in.validate(); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	ev := &models.Event{}
	in.apply(ev)

	if err := h.Store.Create(ctx, ev); err != nil {
		h.Log.Error("events: create failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.Audit.Record(ctx, r, audit.ActionCreate, audit.ResourceEvent, ev.ID.Hex(), ev.Title)
	respond.JSON(w, http.StatusCreated, ev)
}

// Update handles PUT /api/events/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid event id")
		return
	}

	var in eventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := in.validate(); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	ev := &models.Event{ID: id}
	in.apply(ev)

	err = h.Store.Update(ctx, id, ev)
	switch {
	case errors.Is(err, eventstore.ErrNotFound):
		respond.NotFound(w, "event not found")
		return
	case err != nil:
		h.Log.Error("events: update failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.Audit.Record(ctx, r, audit.ActionUpdate, audit.ResourceEvent, id.Hex(), ev.Title)
	respond.JSON(w, http.StatusOK, ev)
}

// Delete handles DELETE /api/events/{id}. Deleting an event that is already
// gone succeeds with deleted=false.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid event id")
		return
	}

	deleted, err := h.Store.Delete(ctx, id)
	if err != nil {
		h.Log.Error("events: delete failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	if deleted {
		h.Audit.Record(ctx, r, audit.ActionDelete, audit.ResourceEvent, id.Hex(), "")
	}
	respond.JSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}
