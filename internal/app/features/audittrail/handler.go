package audittrail

import (
	"net/http"
	"time"

	"github.com/gracechapel/churchhub/internal/app/store/audit"
	"github.com/gracechapel/churchhub/internal/app/system/paging"
	"github.com/gracechapel/churchhub/internal/app/system/respond"
	"github.com/gracechapel/churchhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the read side of the audit log for super admins.
type Handler struct {
	Store *audit.Store
	Log   *zap.Logger
}

// NewHandler constructs an audittrail Handler.
func NewHandler(store *audit.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// List handles GET /api/admin/audit with optional admin_id, action,
// resource_type, since, and until query filters (RFC 3339 timestamps).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	page := paging.Parse(r)
	filter := audit.Filter{
		Action:       r.URL.Query().Get("action"),
		ResourceType: r.URL.Query().Get("resource_type"),
		Skip:         page.Skip,
		Limit:        page.Limit,
	}

	if raw := r.URL.Query().Get("admin_id"); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.BadRequest(w, "invalid admin_id")
			return
		}
		filter.AdminID = &oid
	}
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respond.BadRequest(w, "since must be an RFC 3339 timestamp")
			return
		}
		filter.Since = &t
	}
	if raw := r.URL.Query().Get("until"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respond.BadRequest(w, "until must be an RFC 3339 timestamp")
			return
		}
		filter.Until = &t
	}

	entries, err := h.Store.List(ctx, filter)
	if err != nil {
		h.Log.Error("audit: list failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		h.Log.Error("audit: count failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	respond.JSON(w, http.StatusOK, map[string]any{"total": total, "items": entries})
}
