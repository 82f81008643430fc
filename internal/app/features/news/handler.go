package news

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/store/audit"
	newsstore "github.com/gracechapel/churchhub/internal/app/store/news"
	"github.com/gracechapel/churchhub/internal/app/system/auditlog"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/app/system/inputval"
	"github.com/gracechapel/churchhub/internal/app/system/normalize"
	"github.com/gracechapel/churchhub/internal/app/system/paging"
	"github.com/gracechapel/churchhub/internal/app/system/respond"
	"github.com/gracechapel/churchhub/internal/app/system/slugify"
	"github.com/gracechapel/churchhub/internal/app/system/timeouts"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// Handler serves the news API. Article bodies are stored as sanitized HTML.
type Handler struct {
	Store    *newsstore.Store
	Audit    *auditlog.Logger
	Log      *zap.Logger
	sanitize *bluemonday.Policy
}

// NewHandler constructs a news Handler.
func NewHandler(store *newsstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    store,
		Audit:    audit,
		Log:      logger,
		sanitize: bluemonday.UGCPolicy(),
	}
}

type newsInput struct {
	Title  string   `json:"title" validate:"required,max=300"`
	Slug   string   `json:"slug" validate:"max=300"`
	Body   string   `json:"body" validate:"required"`
	Status string   `json:"status" validate:"required"`
	Tags   []string `json:"tags" validate:"max=20,dive,max=60"`
}

func (in *newsInput) validate() error {
	if err := inputval.Struct(in); err != nil {
		return err
	}
	if !models.ValidNewsStatus(in.Status) {
		return errors.New("status must be published or draft")
	}
	return nil
}

func (h *Handler) apply(in *newsInput, article *models.News) {
	article.Title = normalize.Name(in.Title)
	article.Slug = in.Slug
	if article.Slug == "" {
		article.Slug = slugify.Make(in.Title)
	}
	article.Body = h.sanitize.Sanitize(in.Body)
	article.Status = in.Status
	article.Tags = normalize.Tags(in.Tags)
}

// List handles GET /api/news. Unauthenticated callers only see published
// articles; admins see drafts as well.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	_, isAdmin := auth.CurrentAdmin(r)
	page := paging.Parse(r)
	filter := newsstore.Filter{
		PublishedOnly: !isAdmin,
		Tag:           r.URL.Query().Get("tag"),
		Skip:          page.Skip,
		Limit:         page.Limit,
	}

	items, err := h.Store.List(ctx, filter)
	if err != nil {
		h.Log.Error("news: list failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	if items == nil {
		items = []models.News{}
	}
	respond.JSON(w, http.StatusOK, items)
}

// Get handles GET /api/news/{ref}, where ref is an ObjectID hex or a slug.
// Drafts are only visible to admins.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	article, err := h.Store.FindByRef(ctx, chi.URLParam(r, "ref"))
	switch {
	case errors.Is(err, newsstore.ErrNotFound):
		respond.NotFound(w, "article not found")
		return
	case err != nil:
		h.Log.Error("news: lookup failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	if article.Status != models.NewsPublished {
		if _, isAdmin := auth.CurrentAdmin(r); !isAdmin {
			respond.NotFound(w, "article not found")
			return
		}
	}
	respond.JSON(w, http.StatusOK, article)
}

// Create handles POST /api/news.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in newsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := in.validate(); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	article := &models.News{}
	h.apply(&in, article)

	err := h.Store.Create(ctx, article)
	switch {
	case errors.Is(err, newsstore.ErrDuplicateSlug):
		respond.BadRequest(w, "slug already in use")
		return
	case err != nil:
		h.Log.Error("news: create failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.Audit.Record(ctx, r, audit.ActionCreate, audit.ResourceNews, article.ID.Hex(), article.Slug)
	respond.JSON(w, http.StatusCreated, article)
}

// Update handles PUT /api/news/{ref}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	existing, err := h.Store.FindByRef(ctx, chi.URLParam(r, "ref"))
	switch {
	case errors.Is(err, newsstore.ErrNotFound):
		respond.NotFound(w, "article not found")
		return
	case err != nil:
		h.Log.Error("news: lookup failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	var in newsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := in.validate(); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	article := &models.News{ID: existing.ID}
	h.apply(&in, article)

	err = h.Store.Update(ctx, existing.ID, article)
	switch {
	case errors.Is(err, newsstore.ErrDuplicateSlug):
		respond.BadRequest(w, "slug already in use")
		return
	case errors.Is(err, newsstore.ErrNotFound):
		respond.NotFound(w, "article not found")
		return
	case err != nil:
		h.Log.Error("news: update failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.Audit.Record(ctx, r, audit.ActionUpdate, audit.ResourceNews, existing.ID.Hex(), article.Slug)
	respond.JSON(w, http.StatusOK, article)
}

// Delete handles DELETE /api/news/{ref}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	existing, err := h.Store.FindByRef(ctx, chi.URLParam(r, "ref"))
	switch {
	case errors.Is(err, newsstore.ErrNotFound):
		respond.NotFound(w, "article not found")
		return
	case err != nil:
		h.Log.Error("news: lookup failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	err = h.Store.Delete(ctx, existing.ID)
	switch {
	case errors.Is(err, newsstore.ErrNotFound):
		respond.NotFound(w, "article not found")
		return
	case err != nil:
		h.Log.Error("news: delete failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.Audit.Record(ctx, r, audit.ActionDelete, audit.ResourceNews, existing.ID.Hex(), existing.Slug)
	respond.OK(w)
}

// counter applies one of the atomic published-only counter updates and maps
// the store errors onto the response taxonomy.
func (h *Handler) counter(w http.ResponseWriter, r *http.Request, bump func(*models.News) error) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	article, err := h.Store.FindByRef(ctx, chi.URLParam(r, "ref"))
	switch {
	case errors.Is(err, newsstore.ErrNotFound):
		respond.NotFound(w, "article not found")
		return
	case err != nil:
		h.Log.Error("news: lookup failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	err = bump(article)
	switch {
	case errors.Is(err, newsstore.ErrNotFound):
		respond.NotFound(w, "article not found")
	case errors.Is(err, newsstore.ErrNotPublished):
		respond.BadRequest(w, "article is not published")
	case err != nil:
		h.Log.Error("news: counter update failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		respond.OK(w)
	}
}

// AddView handles POST /api/news/{ref}/views.
func (h *Handler) AddView(w http.ResponseWriter, r *http.Request) {
	h.counter(w, r, func(article *models.News) error {
		return h.Store.IncrementViews(r.Context(), article.ID)
	})
}

// AddLike handles POST /api/news/{ref}/likes.
func (h *Handler) AddLike(w http.ResponseWriter, r *http.Request) {
	h.counter(w, r, func(article *models.News) error {
		return h.Store.IncrementLikes(r.Context(), article.ID)
	})
}

type commentInput struct {
	Author string `json:"author" validate:"required,max=120"`
	Text   string `json:"text" validate:"required,max=2000"`
}

// AddComment handles POST /api/news/{ref}/comments.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var in commentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	comment := models.Comment{
		Author: normalize.Name(in.Author),
		Text:   h.sanitize.Sanitize(in.Text),
	}
	h.counter(w, r, func(article *models.News) error {
		return h.Store.AddComment(r.Context(), article.ID, comment)
	})
}
