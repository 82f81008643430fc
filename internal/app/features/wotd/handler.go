package wotd

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gracechapel/churchhub/internal/app/store/audit"
	wotdstore "github.com/gracechapel/churchhub/internal/app/store/wotd"
	"github.com/gracechapel/churchhub/internal/app/system/auditlog"
	"github.com/gracechapel/churchhub/internal/app/system/inputval"
	"github.com/gracechapel/churchhub/internal/app/system/respond"
	"github.com/gracechapel/churchhub/internal/app/system/timeouts"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Handler serves the word-of-the-day API.
type Handler struct {
	Store *wotdstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs a wotd Handler.
func NewHandler(store *wotdstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Audit: audit, Log: logger}
}

type wotdInput struct {
	Text      string `json:"text" validate:"required,max=2000"`
	Reference string `json:"reference" validate:"max=200"`
	Date      string `json:"date"`
}

// Latest handles GET /api/wotd. With ?date=2006-01-02 it returns that day's
// post instead of the most recent one.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var (
		post *models.Wotd
		err  error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		if _, perr := time.Parse(dateLayout, date); perr != nil {
			respond.BadRequest(w, "date must be formatted as "+dateLayout)
			return
		}
		post, err = h.Store.FindByDate(ctx, date)
	} else {
		post, err = h.Store.Latest(ctx)
	}

	switch {
	case errors.Is(err, wotdstore.ErrNotFound):
		respond.NotFound(w, "no word of the day")
	case err != nil:
		h.Log.Error("wotd: lookup failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		respond.JSON(w, http.StatusOK, post)
	}
}

// Create handles POST /api/wotd.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in wotdInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if in.Date != "" {
		if _, err := time.Parse(dateLayout, in.Date); err != nil {
			respond.BadRequest(w, "date must be formatted as "+dateLayout)
			return
		}
	}

	post := &models.Wotd{
		Text:      in.Text,
		Reference: in.Reference,
		Date:      in.Date,
	}
	if err := h.Store.Create(ctx, post); err != nil {
		h.Log.Error("wotd: create failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.Audit.Record(ctx, r, audit.ActionCreate, audit.ResourceWotd, post.ID.Hex(), post.Date)
	respond.JSON(w, http.StatusCreated, post)
}
