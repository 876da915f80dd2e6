// Package config provides configuration management for the catalog sync.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, environment)
//   - Database: source catalog connection (mysql or sqlite)
//   - Storage: S3/MinIO credentials and the report bucket
//   - Loyverse: POS API endpoint, token and rate limit
//   - Redis: run lock backend (empty address means in-process locks)
//   - Sync: lock ttl and report archiving
//   - Log: Logging level and format
//
// Every key maps to an environment variable, e.g. LOYVERSE_TOKEN -> loyverse.token.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
