package memberauth

import (
	"encoding/json"
	"errors"
	"net/http"

	memberstore "github.com/gracechapel/churchhub/internal/app/store/members"
	userstore "github.com/gracechapel/churchhub/internal/app/store/users"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/app/system/inputval"
	"github.com/gracechapel/churchhub/internal/app/system/normalize"
	"github.com/gracechapel/churchhub/internal/app/system/respond"
	"github.com/gracechapel/churchhub/internal/app/system/timeouts"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves member-facing authentication. Registration requires a
// matching member record: the site is for people already in the directory.
type Handler struct {
	Users   *userstore.Store
	Members *memberstore.Store
	Auth    *auth.Manager
	Log     *zap.Logger
}

type registerInput struct {
	MemberID string `json:"member_id" validate:"required,max=40"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles POST /api/member-auth/register. The email must match the
// directory record for the given member id.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	var in registerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}
	if err := inputval.Struct(&in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	member, err := h.Members.FindByMemberID(ctx, in.MemberID)
	if errors.Is(err, memberstore.ErrNotFound) {
		respond.BadRequest(w, "no matching member record")
		return
	}
	if err != nil {
		h.Log.Error("member register: lookup failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	if member.Email != "" && member.Email != normalize.Email(in.Email) {
		respond.BadRequest(w, "email does not match the member record")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.Log.Error("member register: hash failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	user := &models.User{
		MemberRef:    member.ID,
		Email:        in.Email,
		PasswordHash: hash,
	}
	err = h.Users.Create(ctx, user)
	switch {
	case errors.Is(err, userstore.ErrDuplicate):
		respond.BadRequest(w, "account already exists")
		return
	case err != nil:
		h.Log.Error("member register: create failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	respond.JSON(w, http.StatusCreated, user)
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

// Login handles POST /api/member-auth/login. Remember extends the session from 2
// to 24 hours.
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

	user, err := h.Users.FindByEmail(ctx, in.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		respond.Unauthorized(w)
		return
	}
	if err != nil {
		h.Log.Error("member login: lookup failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	if !auth.VerifyPassword(in.Password, user.PasswordHash) {
		respond.Unauthorized(w)
		return
	}

	token, err := h.Auth.Tokens.Create(user.ID.Hex(), user.Email, user.Role, in.Remember)
	if err != nil {
		h.Log.Error("member login: token issue failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}
	h.Auth.SetMemberCookie(w, token, in.Remember)

	if err := h.Users.TouchLastLogin(ctx, user.ID); err != nil {
		h.Log.Warn("member login: last-login stamp failed", zap.Error(err))
	}

	respond.JSON(w, http.StatusOK, user)
}

// Logout handles POST /api/member-auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.ClearMemberCookie(w)
	respond.OK(w)
}

// Me handles GET /api/member-auth/me and returns the account plus its directory
// record.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	claims, ok := auth.CurrentMember(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}

	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		respond.Unauthorized(w)
		return
	}

	user, err := h.Users.FindByID(ctx, id)
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		respond.Unauthorized(w)
		return
	case err != nil:
		h.Log.Error("member me: lookup failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	member, err := h.Members.FindByID(ctx, user.MemberRef)
	if err != nil && !errors.Is(err, memberstore.ErrNotFound) {
		h.Log.Error("member me: directory lookup failed", zap.Error(err))
		respond.Internal(w, "")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"user": user, "member": member})
}
