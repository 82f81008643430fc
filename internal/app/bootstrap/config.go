// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ChurchHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_secret, etc.
//   - Environment variables: CHURCHHUB_MONGO_URI, CHURCHHUB_TOKEN_SECRET, etc.
//   - Command-line flags: --mongo_uri, --token_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "churchhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Session token signing. No default on purpose: ValidateConfig rejects
	// a missing or short secret.
	{Name: "token_secret", Default: "", Desc: "HMAC signing secret for session tokens (min 32 bytes, required)"},

	// Base URL for links in invite and reset emails
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Public base URL for email links"},

	// EmailJS configuration
	{Name: "emailjs_service_id", Default: "", Desc: "EmailJS service ID"},
	{Name: "emailjs_template_id", Default: "", Desc: "EmailJS template ID"},
	{Name: "emailjs_public_key", Default: "", Desc: "EmailJS public key"},
	{Name: "emailjs_private_key", Default: "", Desc: "EmailJS private key (enables server-side sending)"},

	// SuperAdmin bootstrap
	{Name: "superadmin_email", Default: "", Desc: "Email of the initial super admin (created on startup when no admins exist)"},
	{Name: "superadmin_password", Default: "", Desc: "Password for the initial super admin"},
	{Name: "superadmin_name", Default: "Administrator", Desc: "Display name for the initial super admin"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, CHURCHHUB_* for app), and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CHURCHHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenSecret: appValues.String("token_secret"),
		BaseURL:     appValues.String("base_url"),

		EmailJSServiceID:  appValues.String("emailjs_service_id"),
		EmailJSTemplateID: appValues.String("emailjs_template_id"),
		EmailJSPublicKey:  appValues.String("emailjs_public_key"),
		EmailJSPrivateKey: appValues.String("emailjs_private_key"),

		SuperAdminEmail:    appValues.String("superadmin_email"),
		SuperAdminPassword: appValues.String("superadmin_password"),
		SuperAdminName:     appValues.String("superadmin_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// ChurchHub validates the MongoDB URI format to catch configuration errors
// before attempting to connect, and refuses to start without an explicit,
// sufficiently long token signing secret. There is no development fallback
// secret: a short or missing secret aborts startup in every environment.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.TokenSecret) < auth.MinSecretLen {
		return fmt.Errorf("token_secret must be set and at least %d bytes", auth.MinSecretLen)
	}

	return nil
}
