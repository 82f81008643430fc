// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds the app-specific configuration for ChurchHub.
// Core server settings (ports, env, TLS, timeouts) live in WAFFLE's
// CoreConfig; everything here is particular to this application.
type AppConfig struct {
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session token signing. There is no default: startup fails when the
	// secret is missing or shorter than auth.MinSecretLen.
	TokenSecret string

	// Base URL used to build links in invite and reset emails.
	BaseURL string

	// EmailJS credentials for transactional email.
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string

	// SuperAdmin bootstrap. When both are set and no admin users exist,
	// Startup creates the first super admin.
	SuperAdminEmail    string
	SuperAdminPassword string
	SuperAdminName     string
}
