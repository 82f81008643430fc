package videos

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/store/audit"
	videostore "github.com/gracechapel/churchhub/internal/app/store/videos"
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

// Handler serves embedded YouTube video management.
type Handler struct {
	Store *videostore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs a videos Handler.
func NewHandler(store *videostore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Audit: audit, Log: logger}
}

type videoInput struct {
	VideoID  string `json:"video_id" validate:"required,max=20"`
	Title    string `json:"title" validate:"required,max=200"`
	Active   bool   `json:"active"`
	Position int    `json:"position" validate:"min=0"`
}

// List handles GET /api/videos.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	_, isAdmin := auth.CurrentAdmin(r)
	items, err := h.Store.List(ctx, !isAdmin)
	if err != nil {
		h.Log.Error("videos: list failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	if items == nil {
		items = []models.YouTubeVideo{}
	}
	respond.JSON(w, http.StatusOK, items)
}

// Create handles POST /api/videos.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in videoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	video := &models.YouTubeVideo{
		VideoID:  in.VideoID,
		Title:    normalize.Name(in.Title),
		Active:   in.Active,
		Position: in.Position,
	}
	err := h.Store.Create(ctx, video)
	switch {
	case errors.Is(err, videostore.ErrDuplicate):
		respond.BadRequest(w, "video id already registered")
		return
	case err != nil:
		h.Log.Error("videos: create failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.Audit.Record(ctx, r, audit.ActionCreate, audit.ResourceVideo, video.ID.Hex(), video.VideoID)
	respond.JSON(w, http.StatusCreated, video)
}

// Update handles PUT /api/videos/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid video id")
		return
	}

	var in videoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	video := &models.YouTubeVideo{
		ID:       id,
		VideoID:  in.VideoID,
		Title:    normalize.Name(in.Title),
		Active:   in.Active,
		Position: in.Position,
	}
	err = h.Store.Update(ctx, id, video)
	switch {
	case errors.Is(err, videostore.ErrNotFound):
		respond.NotFound(w, "video not found")
	case errors.Is(err, videostore.ErrDuplicate):
		respond.BadRequest(w, "video id already registered")
	case err != nil:
		h.Log.Error("videos: update failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		h.Audit.Record(ctx, r, audit.ActionUpdate, audit.ResourceVideo, id.Hex(), video.VideoID)
		respond.JSON(w, http.StatusOK, video)
	}
}

// Delete handles DELETE /api/videos/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid video id")
		return
	}

	err = h.Store.Delete(ctx, id)
	switch {
	case errors.Is(err, videostore.ErrNotFound):
		respond.NotFound(w, "video not found")
	case err != nil:
		h.Log.Error("videos: delete failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		h.Audit.Record(ctx, r, audit.ActionDelete, audit.ResourceVideo, id.Hex(), "")
		respond.OK(w)
	}
}
