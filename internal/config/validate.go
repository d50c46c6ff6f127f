package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns (%d) must be >= database.min_conns (%d)",
			c.Database.MaxConns, c.Database.MinConns)
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Reflection.validate(); err != nil {
		return fmt.Errorf("reflection: %w", err)
	}
	if err := c.Metrics.validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	return nil
}

func (c *LLMConfig) validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be in [0, 1] (got %v)", c.Temperature)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", c.Timeout)
	}
	return nil
}

func (c *ReflectionConfig) validate() error {
	if c.MinSessionMinutes < 0 {
		return fmt.Errorf("min_session_minutes must be >= 0 (got %d)", c.MinSessionMinutes)
	}
	if c.RelatedLimit < 0 {
		return fmt.Errorf("related_limit must be >= 0 (got %d)", c.RelatedLimit)
	}
	if c.MaxInsights <= 0 {
		return fmt.Errorf("max_insights must be > 0 (got %d)", c.MaxInsights)
	}
	return nil
}

func (c *MetricsConfig) validate() error {
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be > 0 (got %v)", c.CacheTTL)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	return nil
}
