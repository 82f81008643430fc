package members

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/store/audit"
	memberstore "github.com/gracechapel/churchhub/internal/app/store/members"
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

// Handler serves the member directory for the back office.
type Handler struct {
	Store *memberstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs a members Handler.
func NewHandler(store *memberstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Audit: audit, Log: logger}
}

type memberInput struct {
	MemberID          string `json:"member_id" validate:"required,max=40"`
	FullName          string `json:"full_name" validate:"required,max=200"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone" validate:"max=40"`
	Locality          string `json:"locality" validate:"max=120"`
	BlessingStatus    string `json:"blessing_status"`
	MembershipKind    string `json:"membership_kind" validate:"max=60"`
	SpiritualParentID string `json:"spiritual_parent_id" validate:"max=40"`
	JoinedAt          string `json:"joined_at"` // "2006-01-02"
}

func (in *memberInput) validate() error {
	if err := inputval.Struct(in); err != nil {
		return err
	}
	switch in.BlessingStatus {
	case "", models.BlessingNone, models.BlessingCandidate, models.BlessingBlessed:
	default:
		return errors.New("unknown blessing status")
	}
	if in.JoinedAt != "" {
		if _, err := time.Parse("2006-01-02", in.JoinedAt); err != nil {
			return errors.New("joined_at must be formatted as 2006-01-02")
		}
	}
	return nil
}

func (in *memberInput) apply(m *models.Member) {
	m.MemberID = normalize.MemberID(in.MemberID)
	m.FullName = in.FullName
	m.Email = in.Email
	m.Phone = in.Phone
	m.Locality = normalize.Name(in.Locality)
	m.BlessingStatus = in.BlessingStatus
	m.MembershipKind = in.MembershipKind
	m.SpiritualParentID = normalize.MemberID(in.SpiritualParentID)
	if in.JoinedAt != "" {
		t, _ := time.Parse("2006-01-02", in.JoinedAt)
		m.JoinedAt = &t
	}
}

// List handles GET /api/members with optional search and locality
// filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	page := paging.Parse(r)
	filter := memberstore.Filter{
		Search:   r.URL.Query().Get("search"),
		Locality: r.URL.Query().Get("locality"),
		Skip:     page.Skip,
		Limit:    page.Limit,
	}

	items, err := h.Store.List(ctx, filter)
	if err != nil {
		h.Log.Error("members: list failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	if items == nil {
		items = []models.Member{}
	}
	respond.JSON(w, http.StatusOK, items)
}

// Get handles GET /api/members/{id}. The id may be an ObjectID hex or
// a member_id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	ref := chi.URLParam(r, "id")

	var (
		member *models.Member
		err    error
	)
	if oid, perr := primitive.ObjectIDFromHex(ref); perr == nil {
		member, err = h.Store.FindByID(ctx, oid)
	} else {
		member, err = h.Store.FindByMemberID(ctx, ref)
	}

	switch {
	case errors.Is(err, memberstore.ErrNotFound):
		respond.NotFound(w, "member not found")
	case err != nil:
		h.Log.Error("members: lookup failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		respond.JSON(w, http.StatusOK, member)
	}
}

// Create handles POST /api/members.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in memberInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := in.validate(); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	member := &models.Member{}
	in.apply(member)

	err := h.Store.Create(ctx, member)
	switch {
	case errors.Is(err, memberstore.ErrDuplicate):
		respond.BadRequest(w, "member id or email already registered")
		return
	case err != nil:
		h.Log.Error("members: create failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.Audit.Record(ctx, r, audit.ActionCreate, audit.ResourceMember, member.MemberID, member.FullName)
	respond.JSON(w, http.StatusCreated, member)
}

// Update handles PUT /api/members/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid member id")
		return
	}

	var in memberInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := in.validate(); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	member := &models.Member{ID: id}
	in.apply(member)

	err = h.Store.Update(ctx, id, member)
	switch {
	case errors.Is(err, memberstore.ErrNotFound):
		respond.NotFound(w, "member not found")
		return
	case errors.Is(err, memberstore.ErrDuplicate):
		respond.BadRequest(w, "member id or email already registered")
		return
	case err != nil:
		h.Log.Error("members: update failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.Audit.Record(ctx, r, audit.ActionUpdate, audit.ResourceMember, member.MemberID, member.FullName)
	respond.JSON(w, http.StatusOK, member)
}

// Delete handles DELETE /api/members/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid member id")
		return
	}

	err = h.Store.Delete(ctx, id)
	switch {
	case errors.Is(err, memberstore.ErrNotFound):
		respond.NotFound(w, "member not found")
	case err != nil:
		h.Log.Error("members: delete failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		h.Audit.Record(ctx, r, audit.ActionDelete, audit.ResourceMember, id.Hex(), "")
		respond.OK(w)
	}
}
