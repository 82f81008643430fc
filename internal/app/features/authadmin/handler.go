package authadmin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	adminstore "github.com/gracechapel/churchhub/internal/app/store/adminusers"
	"github.com/gracechapel/churchhub/internal/app/store/audit"
	tokenstore "github.com/gracechapel/churchhub/internal/app/store/tokens"
	"github.com/gracechapel/churchhub/internal/app/system/auditlog"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/app/system/inputval"
	"github.com/gracechapel/churchhub/internal/app/system/mailer"
	"github.com/gracechapel/churchhub/internal/app/system/normalize"
	"github.com/gracechapel/churchhub/internal/app/system/respond"
	"github.com/gracechapel/churchhub/internal/app/system/timeouts"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Token lifetimes for the two email flows. Invites are generous because
// they go to people who may not check email daily; resets are short.
const (
	inviteTTL = 72 * time.Hour
	resetTTL  = 1 * time.Hour
)

// Handler serves back-office authentication: login/logout, invitations,
// and password resets.
type Handler struct {
	Admins  *adminstore.Store
	Tokens  *tokenstore.Store
	Auth    *auth.Manager
	Audit   *auditlog.Logger
	Mailer  *mailer.Mailer
	BaseURL string
	Log     *zap.Logger
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login. A bad email and a bad password
// produce the same 401 so the endpoint does not confirm which emails exist.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in loginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, "email and password are required")
		return
	}

	admin, err := h.Admins.FindByEmail(ctx, in.Email)
	if errors.Is(err, adminstore.ErrNotFound) {
		respond.Unauthorized(w)
		return
	}
	if err != nil {
		h.Log.Error("admin login: lookup failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	if !auth.VerifyPassword(in.Password, admin.PasswordHash) {
		respond.Unauthorized(w)
		return
	}

	token, err := h.Auth.Tokens.Create(admin.ID.Hex(), admin.Email, admin.Role, false)
	if err != nil {
		h.Log.Error("admin login: token issue failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	h.Auth.SetAdminCookie(w, token)

	if err := h.Admins.TouchLastLogin(ctx, admin.ID); err != nil {
		h.Log.Warn("admin login: last-login stamp failed", zap.Error(err))
	}

	h.Audit.Record(ctx, r, audit.ActionLogin, audit.ResourceAdminUser, admin.ID.Hex(), admin.Email)
	respond.JSON(w, http.StatusOK, admin)
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	if claims, ok := auth.CurrentAdmin(r); ok {
		h.Audit.Record(ctx, r, audit.ActionLogout, audit.ResourceAdminUser, claims.Subject, claims.Email)
	}
	h.Auth.ClearAdminCookie(w)
	respond.OK(w)
}

// Me handles GET /api/auth/me and returns the logged-in admin record.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	claims, ok := auth.CurrentAdmin(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}

	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		respond.Unauthorized(w)
		return
	}

	admin, err := h.Admins.FindByID(ctx, id)
	switch {
	case errors.Is(err, adminstore.ErrNotFound):
		respond.Unauthorized(w)
	case err != nil:
		h.Log.Error("admin me: lookup failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		respond.JSON(w, http.StatusOK, admin)
	}
}

type initInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=120"`
	Password string `json:"password" validate:"required,min=8"`
}

// InitSuperAdmin handles POST /api/auth/init-super-admin. It creates the first
// super admin and refuses to run once any admin exists.
func (h *Handler) InitSuperAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in initInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	count, err := h.Admins.Count(ctx)
	if err != nil {
		h.Log.Error("admin init: count failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	if count > 0 {
		respond.Error(w, http.StatusConflict, "already initialized")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.Log.Error("admin init: hash failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	admin := &models.AdminUser{
		Email:         in.Email,
		Name:          normalize.Name(in.Name),
		Role:          models.RoleSuperAdmin,
		PasswordHash:  hash,
		EmailVerified: true,
	}
	if err := h.Admins.Create(ctx, admin); err != nil {
		if errors.Is(err, adminstore.ErrDuplicateEmail) {
			respond.Error(w, http.StatusConflict, "already initialized")
			return
		}
		h.Log.Error("admin init: create failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.Log.Info("super admin initialized", zap.String("email", admin.Email))
	respond.JSON(w, http.StatusCreated, admin)
}

type inviteInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=120"`
	Role  string `json:"role" validate:"required"`
}

// Invite handles POST /api/auth/invite. It creates an unverified admin
// without a usable password and emails a single-use invite link.
func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	var in inviteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if !models.ValidAdminRole(in.Role) {
		respond.BadRequest(w, "unknown role")
		return
	}

	admin := &models.AdminUser{
		Email: in.Email,
		Name:  normalize.Name(in.Name),
		Role:  in.Role,
	}
	err := h.Admins.Create(ctx, admin)
	switch {
	case errors.Is(err, adminstore.ErrDuplicateEmail):
		respond.BadRequest(w, "email already registered")
		return
	case err != nil:
		h.Log.Error("admin invite: create failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	token, err := h.Tokens.Issue(ctx, admin.ID, models.PurposeInvite, inviteTTL)
	if err != nil {
		h.Log.Error("admin invite: token issue failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	h.sendTokenMail(ctx, admin, "/admin/accept-invite?token="+token.Token)
	h.Audit.Record(ctx, r, audit.ActionInvite, audit.ResourceAdminUser, admin.ID.Hex(), admin.Email)
	respond.JSON(w, http.StatusCreated, admin)
}

type acceptInput struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// AcceptInvite handles POST /api/auth/accept-invite. The token is
// single-use and expires; either failure yields the same 400.
func (h *Handler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	h.consumeAndSetPassword(w, r, models.PurposeInvite)
}

type resetRequestInput struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestReset handles POST /api/auth/reset-request. The response is
// the same whether or not the email exists.
func (h *Handler) RequestReset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	var in resetRequestInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, "a valid email is required")
		return
	}

	admin, err := h.Admins.FindByEmail(ctx, in.Email)
	if err == nil {
		token, terr := h.Tokens.Issue(ctx, admin.ID, models.PurposeReset, resetTTL)
		if terr != nil {
			h.Log.Error("reset request: token issue failed", zap.Error(terr))
		} else {
			h.sendTokenMail(ctx, admin, "/admin/reset-password?token="+token.Token)
			h.Audit.Record(ctx, r, audit.ActionReset, audit.ResourceAdminUser, admin.ID.Hex(), admin.Email)
		}
	} else if !errors.Is(err, adminstore.ErrNotFound) {
		h.Log.Error("reset request: lookup failed", zap.Error(err))
	}

	respond.OK(w)
}

// ResetPassword handles POST /api/auth/reset.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	h.consumeAndSetPassword(w, r, models.PurposeReset)
}

func (h *Handler) consumeAndSetPassword(w http.ResponseWriter, r *http.Request, purpose string) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in acceptInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	claimed, err := h.Tokens.Consume(ctx, in.Token, purpose)
	switch {
	case errors.Is(err, tokenstore.ErrNotFound),
		errors.Is(err, tokenstore.ErrConsumed),
		errors.Is(err, tokenstore.ErrExpired):
		respond.BadRequest(w, "token is invalid or expired")
		return
	case err != nil:
		h.Log.Error("token consume failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	err = h.Admins.SetPassword(ctx, claimed.AdminID, hash)
	switch {
	case errors.Is(err, adminstore.ErrNotFound):
		respond.BadRequest(w, "token is invalid or expired")
	case err != nil:
		h.Log.Error("password update failed", zap.Error(err))
		respond.Internal(w, "")
	default:
		respond.OK(w)
	}
}

// sendTokenMail emails a link built from the configured public base URL.
// Delivery is best-effort: a failed or unconfigured mailer is logged and
// the API call still succeeds, because the token is already persisted and
// a super admin can re-trigger the flow.
func (h *Handler) sendTokenMail(ctx context.Context, admin *models.AdminUser, path string) {
	if h.Mailer == nil {
		h.Log.Warn("mailer not configured, skipping email", zap.String("email", admin.Email))
		return
	}
	err := h.Mailer.Send(ctx, map[string]string{
		"to_email": admin.Email,
		"to_name":  admin.Name,
		"link":     h.BaseURL + path,
	})
	if err != nil {
		h.Log.Error("email send failed", zap.Error(err), zap.String("email", admin.Email))
	}
}
