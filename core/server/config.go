package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080" validate:"required,numeric"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// Environment names the deployment (development, production).
	Environment string `mapstructure:"environment" default:"development" validate:"oneof=development production"`
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// IsProduction reports whether the server runs in production mode.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// RequiresApiKey reports whether requests must carry an API key.
// Production deployments always do; development only when a key is configured.
func (c Config) RequiresApiKey() bool {
	return c.IsProduction() || c.ApiKey != ""
}
