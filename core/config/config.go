package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"catalog-sync/core/database"
	"catalog-sync/core/lock"
	"catalog-sync/core/logger"
	"catalog-sync/core/loyverse"
	"catalog-sync/core/server"
	"catalog-sync/core/storage"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the report archive (S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the source catalog database.
	Database database.Config `mapstructure:"database"`
	// Loyverse holds configuration for the POS API.
	Loyverse loyverse.Config `mapstructure:"loyverse"`
	// Redis holds configuration for the run lock backend.
	Redis lock.Config `mapstructure:"redis"`
	// Sync holds configuration for sync runs.
	Sync SyncConfig `mapstructure:"sync"`
}

// SyncConfig controls sync runs.
type SyncConfig struct {
	// LockTTLSeconds is how long a run lock lives without refresh.
	LockTTLSeconds int `mapstructure:"lock_ttl_seconds" default:"600" validate:"min=1"`
	// ArchiveReports stores every sync report in object storage.
	ArchiveReports bool `mapstructure:"archive_reports" default:"false"`
	// ReportPrefix is the object prefix of archived reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports" validate:"required"`
}

// LockTTL returns the lock ttl as a duration.
func (c SyncConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks field constraints and the rules that span sections.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return err
	}

	if c.Server.IsProduction() && c.Server.ApiKey == "" {
		return errors.New("invalid configuration: server.api_key is required in production")
	}
	if c.Sync.ArchiveReports && c.Storage.Bucket == "" {
		return errors.New("invalid configuration: storage.bucket is required when sync.archive_reports is set")
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
