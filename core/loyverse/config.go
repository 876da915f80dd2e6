package loyverse

// Config holds configuration for the Loyverse POS API.
type Config struct {
	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.loyverse.com/v1.0" validate:"required,url"`
	// Token is the API access token.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30" validate:"min=1"`
	// RateLimitPerMin caps API calls per minute.
	RateLimitPerMin int `mapstructure:"rate_limit_per_min" default:"300" validate:"min=1"`
	// PageLimit is the page size of list calls.
	PageLimit int `mapstructure:"page_limit" default:"250" validate:"min=1,max=250"`
}
