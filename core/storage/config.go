package storage

// Config holds the MinIO connection used by the report archive.
type Config struct {
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket holds archived sync reports under <report_prefix>/<family>/.
	Bucket string `mapstructure:"bucket" default:"catalog-sync"`
	// Region is used when the bucket has to be created.
	Region         string `mapstructure:"region" default:""`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"30" validate:"min=1"`
}
