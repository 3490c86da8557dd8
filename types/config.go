// Package types holds the unified application configuration shapes.
package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose  bool           `mapstructure:"verbose"`
	Config   string         `mapstructure:"config"`
	Data     DataConfig     `mapstructure:"data" validate:"required"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Sync     SyncConfig     `mapstructure:"sync"`
	News     NewsConfig     `mapstructure:"news"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// DataConfig holds local cache storage configuration.
type DataConfig struct {
	// Dir is the directory holding cache files (file backend) or the
	// sqlite database.
	Dir string `mapstructure:"dir" validate:"required"`
	// Backend selects the cache implementation.
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
}

// SupabaseConfig holds the remote task store connection settings.
type SupabaseConfig struct {
	URL     string `mapstructure:"url" validate:"omitempty,url"`
	AnonKey string `mapstructure:"anonKey"`
}

// SyncConfig tunes the background reconciler.
type SyncConfig struct {
	// IntervalSeconds between periodic reconciliation passes.
	IntervalSeconds int `mapstructure:"intervalSeconds" validate:"omitempty,min=5"`
}

// FeedSource is one RSS feed to aggregate.
type FeedSource struct {
	Name     string `mapstructure:"name" validate:"required"`
	URL      string `mapstructure:"url" validate:"required,url"`
	Category string `mapstructure:"category" validate:"required"`
}

// NewsConfig drives the news aggregation used by the morning brief.
// Keywords maps a topic category to the terms that qualify an article;
// the taxonomy itself is user data, not code.
type NewsConfig struct {
	Feeds       []FeedSource        `mapstructure:"feeds" validate:"dive"`
	Keywords    map[string][]string `mapstructure:"keywords"`
	MaxArticles int                 `mapstructure:"maxArticles" validate:"omitempty,min=1"`
	MaxPerFeed  int                 `mapstructure:"maxPerFeed" validate:"omitempty,min=1"`
}

// LLMConfig holds configuration for brief generation and speech synthesis.
type LLMConfig struct {
	ModelName string `mapstructure:"modelName"`
	APIKey    string `mapstructure:"apiKey"`
	TTSModel  string `mapstructure:"ttsModel"`
	TTSVoice  string `mapstructure:"ttsVoice"`
}
