package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Generation GenerationConfig `yaml:"generation"`
	Batch      BatchConfig      `yaml:"batch"`
}

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Generation providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// DatabaseConfig selects the lexicon store and holds its connection settings.
// There is exactly one writer, so the pool defaults to a single connection.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"DATABASE_DRIVER"             env-default:"sqlite"`
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	SQLitePath      string        `yaml:"sqlite_path"        env:"DATABASE_SQLITE_PATH"        env-default:"./dictionary.db"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"1"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// GenerationConfig holds settings for the language model service.
// APIKey falls back to OPENAI_API_KEY / ANTHROPIC_API_KEY depending on Provider.
type GenerationConfig struct {
	Provider         string        `yaml:"provider"          env:"GENERATION_PROVIDER"          env-default:"openai"`
	APIKey           string        `yaml:"api_key"           env:"GENERATION_API_KEY"`
	BaseURL          string        `yaml:"base_url"          env:"GENERATION_BASE_URL"`
	Model            string        `yaml:"model"             env:"GENERATION_MODEL"             env-default:"gpt-4o-mini"`
	MaxTokens        int           `yaml:"max_tokens"        env:"GENERATION_MAX_TOKENS"        env-default:"4096"`
	CompletionWindow string        `yaml:"completion_window" env:"GENERATION_COMPLETION_WINDOW" env-default:"24h"`
	RequestTimeout   time.Duration `yaml:"request_timeout"   env:"GENERATION_REQUEST_TIMEOUT"   env-default:"2m"`
}

// BatchConfig holds the file locations shared by the submit and process runs.
type BatchConfig struct {
	InputPath    string `yaml:"input_path"     env:"BATCH_INPUT_PATH"     env-default:"./lemmas.tsv"`
	TasksPath    string `yaml:"tasks_path"     env:"BATCH_TASKS_PATH"     env-default:"./batch_tasks.jsonl"`
	JobStatePath string `yaml:"job_state_path" env:"BATCH_JOB_STATE_PATH" env-default:"./batch_id.txt"`
	// ResultsPath keeps a copy of the downloaded result artifact; empty disables it.
	ResultsPath string `yaml:"results_path" env:"BATCH_RESULTS_PATH" env-default:"./batch_results.jsonl"`
}
