// Package auditlog records admin actions on a best-effort basis.
//
// Every failure (no admin in context, database down) is swallowed and
// reported only through zap. Audit logging never aborts the action that
// triggered it and carries no delivery guarantee.
package auditlog

import (
	"context"
	"net/http"

	"github.com/gracechapel/churchhub/internal/app/store/audit"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Logger appends audit entries for the acting admin of a request.
// A nil Logger is a no-op, which lets tests pass nil.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
}

// New creates an audit Logger.
func New(store *audit.Store, zapLog *zap.Logger) *Logger {
	return &Logger{store: store, zapLog: zapLog}
}

// clientIP extracts the client IP, preferring reverse-proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// Record appends one entry attributed to the admin loaded from the request
// context (set by the auth middleware from the verified cookie). When no
// admin is present the entry is still written, unattributed.
func (l *Logger) Record(ctx context.Context, r *http.Request, action, resourceType, resourceID, details string) {
	if l == nil {
		return
	}

	entry := audit.Entry{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		IP:           clientIP(r),
	}

	if claims, ok := auth.CurrentAdmin(r); ok {
		entry.AdminEmail = claims.Email
		if oid, err := primitive.ObjectIDFromHex(claims.Subject); err == nil {
			entry.AdminID = &oid
		}
	}

	if err := l.store.Append(ctx, entry); err != nil {
		l.zapLog.Error("failed to store audit entry",
			zap.Error(err),
			zap.String("action", action),
			zap.String("resource_type", resourceType),
		)
		return
	}

	l.zapLog.Info("audit",
		zap.String("action", action),
		zap.String("resource_type", resourceType),
		zap.String("resource_id", resourceID),
		zap.String("admin_email", entry.AdminEmail),
	)
}
