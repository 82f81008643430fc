package letters

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/store/audit"
	letterstore "github.com/gracechapel/churchhub/internal/app/store/letters"
	"github.com/gracechapel/churchhub/internal/app/system/auditlog"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/app/system/inputval"
	"github.com/gracechapel/churchhub/internal/app/system/normalize"
	"github.com/gracechapel/churchhub/internal/app/system/respond"
	"github.com/gracechapel/churchhub/internal/app/system/timeouts"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves curated letter management.
type Handler struct {
	Store    *letterstore.Store
	Audit    *auditlog.Logger
	Log      *zap.Logger
	sanitize *bluemonday.Policy
}

// NewHandler constructs a letters Handler.
func NewHandler(store *letterstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    store,
		Audit:    audit,
		Log:      logger,
		sanitize: bluemonday.UGCPolicy(),
	}
}

type letterInput struct {
	Title    string `json:"title" validate:"required,max=300"`
	Body     string `json:"body" validate:"required"`
	Author   string `json:"author" validate:"max=120"`
	Active   bool   `json:"active"`
	Position int    `json:"position" validate:"min=0"`
}

func (h *Handler) toModel(in *letterInput, id primitive.ObjectID) *models.Letter {
	return &models.Letter{
		ID:       id,
		Title:    normalize.Name(in.Title),
		Body:     h.sanitize.Sanitize(in.Body),
		Author:   normalize.Name(in.Author),
		Active:   in.Active,
		Position: in.Position,
	}
}

// List handles GET /api/letters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	_, isAdmin := auth.CurrentAdmin(r)
	items, err := h.Store.List(ctx, !isAdmin)
	if err != nil {
		h.Log.Error("letters: list failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	if items == nil {
		items = []models.Letter{}
	}
	respond.JSON(w, http.StatusOK, items)
}

// Create handles POST /api/admin/letters.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in letterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	letter := h.toModel(&in, primitive.NilObjectID)
	if err := h.Store.Create(ctx, letter); err != nil {
		h.Log.Error("letters: create failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.Audit.Record(ctx, r, audit.ActionCreate, audit.ResourceLetter, letter.ID.Hex(), letter.Title)
	respond.JSON(w, http.StatusCreated, letter)
}

// Update handles PUT /api/admin/letters/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid letter id")
		return
	}

	var in letterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	letter := h.toModel(&in, id)
	err = h.Store.Update(ctx, id, letter)
	switch {
	case errors.Is(err, letterstore.ErrNotFound):
		respond.NotFound(w, "letter not found")
	case err != nil:
		h.Log.Error("letters: update failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		h.Audit.Record(ctx, r, audit.ActionUpdate, audit.ResourceLetter, id.Hex(), letter.Title)
		respond.JSON(w, http.StatusOK, letter)
	}
}

// Delete handles DELETE /api/admin/letters/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid letter id")
		return
	}

	err = h.Store.Delete(ctx, id)
	switch {
	case errors.Is(err, letterstore.ErrNotFound):
		respond.NotFound(w, "letter not found")
	case err != nil:
		h.Log.Error("letters: delete failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		h.Audit.Record(ctx, r, audit.ActionDelete, audit.ResourceLetter, id.Hex(), "")
		respond.OK(w)
	}
}
