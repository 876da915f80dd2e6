// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and valid values for server settings.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key and the deployment environment.
// Production deployments always require the API key.
package server
