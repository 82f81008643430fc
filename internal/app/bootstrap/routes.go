// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	audittrailfeature "github.com/gracechapel/churchhub/internal/app/features/audittrail"
	authadminfeature "github.com/gracechapel/churchhub/internal/app/features/authadmin"
	eventsfeature "github.com/gracechapel/churchhub/internal/app/features/events"
	healthfeature "github.com/gracechapel/churchhub/internal/app/features/health"
	lettersfeature "github.com/gracechapel/churchhub/internal/app/features/letters"
	livestreamsfeature "github.com/gracechapel/churchhub/internal/app/features/livestreams"
	memberauthfeature "github.com/gracechapel/churchhub/internal/app/features/memberauth"
	membersfeature "github.com/gracechapel/churchhub/internal/app/features/members"
	newsfeature "github.com/gracechapel/churchhub/internal/app/features/news"
	newsletterfeature "github.com/gracechapel/churchhub/internal/app/features/newsletter"
	videosfeature "github.com/gracechapel/churchhub/internal/app/features/videos"
	wotdfeature "github.com/gracechapel/churchhub/internal/app/features/wotd"
	adminstore "github.com/gracechapel/churchhub/internal/app/store/adminusers"
	"github.com/gracechapel/churchhub/internal/app/store/audit"
	eventstore "github.com/gracechapel/churchhub/internal/app/store/events"
	letterstore "github.com/gracechapel/churchhub/internal/app/store/letters"
	livestreamstore "github.com/gracechapel/churchhub/internal/app/store/livestreams"
	memberstore "github.com/gracechapel/churchhub/internal/app/store/members"
	newsstore "github.com/gracechapel/churchhub/internal/app/store/news"
	newsletterstore "github.com/gracechapel/churchhub/internal/app/store/newsletters"
	tokenstore "github.com/gracechapel/churchhub/internal/app/store/tokens"
	userstore "github.com/gracechapel/churchhub/internal/app/store/users"
	videostore "github.com/gracechapel/churchhub/internal/app/store/videos"
	wotdstore "github.com/gracechapel/churchhub/internal/app/store/wotd"
	"github.com/gracechapel/churchhub/internal/app/system/auditlog"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/app/system/mailer"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for the app.
//
// WAFFLE calls this after configuration, DB connection, schema setup, and
// Startup have completed. It builds the auth manager, the shared audit
// logger, and one handler per feature, then mounts everything on a chi
// router. Secure cookies are enabled in production mode.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	authMgr, err := auth.NewManager(appCfg.TokenSecret, secure)
	if err != nil {
		logger.Error("auth manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	auditLog := auditlog.New(audit.New(db), logger)

	var mail *mailer.Mailer
	mailCfg := mailer.Config{
		ServiceID:  appCfg.EmailJSServiceID,
		TemplateID: appCfg.EmailJSTemplateID,
		PublicKey:  appCfg.EmailJSPublicKey,
		PrivateKey: appCfg.EmailJSPrivateKey,
	}
	if mailCfg.Enabled() {
		mail = mailer.New(mailCfg, nil, logger)
	} else {
		logger.Warn("EmailJS not configured; invite and reset emails are disabled")
	}

	r := chi.NewRouter()

	// Global auth middleware: loads verified admin/member claims into the
	// request context. Route-level gates enforce access.
	r.Use(authMgr.WithAdmin)
	r.Use(authMgr.WithMember)

	healthfeature.Mount(r, healthfeature.NewHandler(deps.MongoClient, logger))

	authadminfeature.Mount(r, &authadminfeature.Handler{
		Admins:  adminstore.New(db),
		Tokens:  tokenstore.New(db),
		Auth:    authMgr,
		Audit:   auditLog,
		Mailer:  mail,
		BaseURL: appCfg.BaseURL,
		Log:     logger,
	})

	memberauthfeature.Mount(r, &memberauthfeature.Handler{
		Users:   userstore.New(db),
		Members: memberstore.New(db),
		Auth:    authMgr,
		Log:     logger,
	})

	eventsfeature.Mount(r, eventsfeature.NewHandler(eventstore.New(db), auditLog, logger))
	newsfeature.Mount(r, newsfeature.NewHandler(newsstore.New(db), auditLog, logger))
	newsletterfeature.Mount(r, newsletterfeature.NewHandler(newsletterstore.New(db), auditLog, logger))
	wotdfeature.Mount(r, wotdfeature.NewHandler(wotdstore.New(db), auditLog, logger))
	membersfeature.Mount(r, membersfeature.NewHandler(memberstore.New(db), auditLog, logger))
	livestreamsfeature.Mount(r, livestreamsfeature.NewHandler(livestreamstore.New(db), auditLog, logger))
	videosfeature.Mount(r, videosfeature.NewHandler(videostore.New(db), auditLog, logger))
	lettersfeature.Mount(r, lettersfeature.NewHandler(letterstore.New(db), auditLog, logger))
	audittrailfeature.Mount(r, audittrailfeature.NewHandler(audit.New(db), logger))

	return r, nil
}
