package livestreams

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/store/audit"
	livestreamstore "github.com/gracechapel/churchhub/internal/app/store/livestreams"
	"github.com/gracechapel/churchhub/internal/app/system/auditlog"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/app/system/inputval"
	"github.com/gracechapel/churchhub/internal/app/system/normalize"
	"github.com/gracechapel/churchhub/internal/app/system/respond"
	"github.com/gracechapel/churchhub/internal/app/system/timeouts"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves livestream link management.
type Handler struct {
	Store *livestreamstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs a livestreams Handler.
func NewHandler(store *livestreamstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Audit: audit, Log: logger}
}

type streamInput struct {
	Title    string `json:"title" validate:"required,max=200"`
	URL      string `json:"url" validate:"required,url"`
	Active   bool   `json:"active"`
	Position int    `json:"position" validate:"min=0"`
}

// List handles GET /api/livestreams. The public site only sees active
// entries; admins see everything.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	_, isAdmin := auth.CurrentAdmin(r)
	items, err := h.Store.List(ctx, !isAdmin)
	if err != nil {
		h.Log.Error("livestreams: list failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	if items == nil {
		items = []models.Livestream{}
	}
	respond.JSON(w, http.StatusOK, items)
}

// Create handles POST /api/livestreams.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in streamInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	stream := &models.Livestream{
		Title:    normalize.Name(in.Title),
		URL:      in.URL,
		Active:   in.Active,
		Position: in.Position,
	}
	err := h.Store.Create(ctx, stream)
	switch {
	case errors.Is(err, livestreamstore.ErrDuplicateURL):
		respond.BadRequest(w, "url already registered")
		return
	case err != nil:
		h.Log.Error("livestreams: create failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.Audit.Record(ctx, r, audit.ActionCreate, audit.ResourceLivestream, stream.ID.Hex(), stream.Title)
	respond.JSON(w, http.StatusCreated, stream)
}

// Update handles PUT /api/livestreams/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid livestream id")
		return
	}

	var in streamInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	stream := &models.Livestream{
		ID:       id,
		Title:    normalize.Name(in.Title),
		URL:      in.URL,
		Active:   in.Active,
		Position: in.Position,
	}
	err = h.Store.Update(ctx, id, stream)
	switch {
	case errors.Is(err, livestreamstore.ErrNotFound):
		respond.NotFound(w, "livestream not found")
	case errors.Is(err, livestreamstore.ErrDuplicateURL):
		respond.BadRequest(w, "url already registered")
	case err != nil:
		h.Log.Error("livestreams: update failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		h.Audit.Record(ctx, r, audit.ActionUpdate, audit.ResourceLivestream, id.Hex(), stream.Title)
		respond.JSON(w, http.StatusOK, stream)
	}
}

// Delete handles DELETE /api/livestreams/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid livestream id")
		return
	}

	err = h.Store.Delete(ctx, id)
	switch {
	case errors.Is(err, livestreamstore.ErrNotFound):
		respond.NotFound(w, "livestream not found")
	case err != nil:
		h.Log.Error("livestreams: delete failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		h.Audit.Record(ctx, r, audit.ActionDelete, audit.ResourceLivestream, id.Hex(), "")
		respond.OK(w)
	}
}
