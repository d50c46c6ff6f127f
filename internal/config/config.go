package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	LLM        LLMConfig        `yaml:"llm"`
	Reflection ReflectionConfig `yaml:"reflection"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name            string        `yaml:"name"             env:"SERVER_NAME"             env-default:"worklog"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LLMConfig holds settings for the Anthropic generation collaborator.
// An empty API key disables generation entirely; the reflection pipeline
// then always uses its templated fallback.
type LLMConfig struct {
	APIKey      string        `yaml:"api_key"     env:"LLM_API_KEY"`
	Model       string        `yaml:"model"       env:"LLM_MODEL"       env-default:"claude-3-5-haiku-latest"`
	MaxTokens   int           `yaml:"max_tokens"  env:"LLM_MAX_TOKENS"  env-default:"512"`
	Temperature float64       `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.7"`
	Timeout     time.Duration `yaml:"timeout"     env:"LLM_TIMEOUT"     env-default:"30s"`
}

// ReflectionConfig holds reflection pipeline policy.
type ReflectionConfig struct {
	MinSessionMinutes int `yaml:"min_session_minutes" env:"REFLECTION_MIN_SESSION_MINUTES" env-default:"30"`
	RelatedLimit      int `yaml:"related_limit"       env:"REFLECTION_RELATED_LIMIT"       env-default:"3"`
	MaxInsights       int `yaml:"max_insights"        env:"REFLECTION_MAX_INSIGHTS"        env-default:"5"`
}

// MetricsConfig holds observability primitive settings.
type MetricsConfig struct {
	CacheTTL  time.Duration `yaml:"cache_ttl"  env:"METRICS_CACHE_TTL"  env-default:"30s"`
	BatchSize int           `yaml:"batch_size" env:"METRICS_BATCH_SIZE" env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
