// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	adminstore "github.com/gracechapel/churchhub/internal/app/store/adminusers"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// ChurchHub uses it to bootstrap the first super admin: when
// superadmin_email and superadmin_password are configured and the
// admin_users collection is empty, the account is created here so a fresh
// deployment is immediately operable.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SuperAdminEmail == "" || appCfg.SuperAdminPassword == "" {
		return nil
	}

	admins := adminstore.New(deps.MongoDatabase)

	count, err := admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(appCfg.SuperAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.AdminUser{
		Email:         appCfg.SuperAdminEmail,
		Name:          appCfg.SuperAdminName,
		Role:          models.RoleSuperAdmin,
		PasswordHash:  hash,
		EmailVerified: true,
	}
	if err := admins.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("bootstrapped super admin", zap.String("email", admin.Email))
	return nil
}
