package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// API keys are not required here: the submit, process and direct modes check
// for them, while lookup works without network access.
func (c *Config) Validate() error {
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Generation.validate(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	if err := c.Batch.validate(); err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	return nil
}

func (d *DatabaseConfig) validate() error {
	d.Driver = strings.ToLower(strings.TrimSpace(d.Driver))
	switch d.Driver {
	case DriverPostgres:
		if d.DSN == "" {
			return fmt.Errorf("dsn is required for driver %q", d.Driver)
		}
		if d.MaxConns < 1 {
			return fmt.Errorf("max_conns must be >= 1 (got %d)", d.MaxConns)
		}
		if d.MinConns < 0 || d.MinConns > d.MaxConns {
			return fmt.Errorf("min_conns must be between 0 and max_conns (got %d)", d.MinConns)
		}
	case DriverSQLite:
		if d.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for driver %q", d.Driver)
		}
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", d.Driver, DriverPostgres, DriverSQLite)
	}
	return nil
}

func (g *GenerationConfig) validate() error {
	g.Provider = strings.ToLower(strings.TrimSpace(g.Provider))
	if g.Provider != ProviderOpenAI && g.Provider != ProviderAnthropic {
		return fmt.Errorf("unknown provider %q (want %s or %s)", g.Provider, ProviderOpenAI, ProviderAnthropic)
	}
	if g.Model == "" {
		return fmt.Errorf("model is required")
	}
	if g.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", g.MaxTokens)
	}
	if g.CompletionWindow == "" {
		return fmt.Errorf("completion_window is required")
	}
	return nil
}

func (b *BatchConfig) validate() error {
	if b.InputPath == "" {
		return fmt.Errorf("input_path is required")
	}
	if b.TasksPath == "" {
		return fmt.Errorf("tasks_path is required")
	}
	if b.JobStatePath == "" {
		return fmt.Errorf("job_state_path is required")
	}
	return nil
}

// RequireAPIKey reports an error when no API key is configured for the
// selected provider.
func (g GenerationConfig) RequireAPIKey() error {
	if g.APIKey == "" {
		return fmt.Errorf("generation: api_key is required for provider %q", g.Provider)
	}
	return nil
}
