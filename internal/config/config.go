package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Stage identifiers used as configuration keys and metric labels. Order
// matches the pipeline execution order.
const (
	StageParseJob           = "parse_job"
	StageExtractResume      = "extract_resume"
	StageAnalyzeSkills      = "analyze_skills"
	StageEvaluateExperience = "evaluate_experience"
	StageAnalyzeEducation   = "analyze_education"
	StageAnalyzeCulturalFit = "analyze_cultural_fit"
	StageGenerateReport     = "generate_report"
)

// StageNames lists all pipeline stages in execution order.
var StageNames = []string{
	StageParseJob,
	StageExtractResume,
	StageAnalyzeSkills,
	StageEvaluateExperience,
	StageAnalyzeEducation,
	StageAnalyzeCulturalFit,
	StageGenerateReport,
}

// Config holds all application configuration
// API Key Precedence Order:
// 1. Vault (if configured) - Highest priority
// 2. Config File values
// 3. Environment Variables (HIRESIGHT_AI_APIKEY, GOOGLE_API_KEY)
// 4. Default values - Lowest priority
type Config struct {
	AI            AIConfig            `mapstructure:"ai"`
	Server        ServerConfig        `mapstructure:"server"`
	App           AppConfig           `mapstructure:"app"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AIConfig holds the global AI configuration plus per-stage overrides.
// Empty or nil stage fields fall back to the global values.
type AIConfig struct {
	Provider         string        `mapstructure:"provider"`
	Model            string        `mapstructure:"model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	APIKey           string        `mapstructure:"apiKey"`
	MaxRetries       int           `mapstructure:"maxRetries"`
	Temperature      float32       `mapstructure:"temperature"`
	UseSystemPrompts bool          `mapstructure:"useSystemPrompts"`

	PromptReload PromptReloadConfig `mapstructure:"promptReload"`

	ParseJob           StageAIConfig `mapstructure:"parseJob"`
	ExtractResume      StageAIConfig `mapstructure:"extractResume"`
	AnalyzeSkills      StageAIConfig `mapstructure:"analyzeSkills"`
	EvaluateExperience StageAIConfig `mapstructure:"evaluateExperience"`
	AnalyzeEducation   StageAIConfig `mapstructure:"analyzeEducation"`
	AnalyzeCulturalFit StageAIConfig `mapstructure:"analyzeCulturalFit"`
	GenerateReport     StageAIConfig `mapstructure:"generateReport"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// StageAIConfig holds AI configuration for a single pipeline stage.
// Pointer fields distinguish "unset" from explicit zero values.
type StageAIConfig struct {
	Provider         string               `mapstructure:"provider"`
	Model            string               `mapstructure:"model"`
	Timeout          *time.Duration       `mapstructure:"timeout"`
	APIKey           string               `mapstructure:"apiKey"`
	MaxRetries       *int                 `mapstructure:"maxRetries"`
	Temperature      *float32             `mapstructure:"temperature"`
	UseSystemPrompts *bool                `mapstructure:"useSystemPrompts"`
	Prompts          StagePrompts         `mapstructure:"prompts"`
	CircuitBreaker   CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// StagePrompts holds prompt overrides for one stage, either inline or
// loaded from external files.
type StagePrompts struct {
	System     string `mapstructure:"system"`
	SystemFile string `mapstructure:"systemFile"`
	User       string `mapstructure:"user"`
	UserFile   string `mapstructure:"userFile"`
}

// PromptReloadConfig controls hot reloading of prompt override files.
type PromptReloadConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	DebounceDelay time.Duration `mapstructure:"debounceDelay"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

	TLS TLSConfig `mapstructure:"tls"`

	// API Authentication
	APIKeys []string `mapstructure:"apiKeys"` // Valid API keys for authentication

	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// TLSConfig holds TLS configuration for the analyze endpoints.
type TLSConfig struct {
	Mode       string `mapstructure:"mode"`     // "disabled" or "server"
	CertFile   string `mapstructure:"certFile"` // Server certificate file (PEM)
	KeyFile    string `mapstructure:"keyFile"`  // Server private key file (PEM)
	MinVersion string `mapstructure:"minVersion"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`        // Enable/disable rate limiting
	RequestsPerMin int           `mapstructure:"requestsPerMin"` // Requests allowed per minute
	BurstCapacity  int           `mapstructure:"burstCapacity"`  // Burst capacity for token bucket
	ByIP           bool          `mapstructure:"byIP"`           // Enable per-IP rate limiting
	ByAPIKey       bool          `mapstructure:"byAPIKey"`       // Enable per-API-key rate limiting
	Window         time.Duration `mapstructure:"window"`         // Rate limiting window duration
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel          string   `mapstructure:"logLevel"`
	DefaultFormat     string   `mapstructure:"defaultFormat"`
	SupportedFormats  []string `mapstructure:"supportedFormats"`
	MaxFileSize       int64    `mapstructure:"maxFileSize"`
	AllowedExtensions []string `mapstructure:"allowedExtensions"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	v := viper.New()

	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	v.SetEnvPrefix("HIRESIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'HIRESIGHT'")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/hiresight/")
	v.AddConfigPath("$HOME/.hiresight")
	v.AddConfigPath(".")
	log.Println("[CONFIG] Configured config file search paths: /etc/hiresight/, $HOME/.hiresight, .")

	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Vault-sourced secrets take precedence over config file values; the
	// environment fallbacks below only fill what is still unset.
	if config.Vault.Enabled {
		log.Println("[CONFIG] Vault enabled, loading secrets")
		if err := ApplyVaultSecrets(&config, nil); err != nil {
			return nil, fmt.Errorf("failed to load secrets from vault: %w", err)
		}
	}

	config.applyFallbacks()
	log.Println("[CONFIG] Applied configuration fallbacks and environment variable overrides")

	config.logConfigurationSources(configFileUsed)

	if err := config.validatePromptFiles(); err != nil {
		return nil, fmt.Errorf("prompt file validation failed: %w", err)
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		return nil, fmt.Errorf("failed to load custom prompts from files: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.AI.APIKey == "" {
		return fmt.Errorf("AI API key is required (set HIRESIGHT_AI_APIKEY or GOOGLE_API_KEY)")
	}

	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.App.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	if err := c.validateTLSConfig(); err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}

	return nil
}

func (c *Config) validateTLSConfig() error {
	tls := c.Server.TLS

	switch tls.Mode {
	case "disabled":
		return nil
	case "server":
		if tls.CertFile == "" || tls.KeyFile == "" {
			return fmt.Errorf("TLS certificate and key files are required for server mode")
		}
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled' or 'server')", tls.Mode)
	}

	switch tls.MinVersion {
	case "", "1.2", "1.3":
	default:
		return fmt.Errorf("invalid TLS minVersion: %s (must be '1.2' or '1.3')", tls.MinVersion)
	}

	return nil
}

// applyStageDefaults applies global defaults to a stage configuration
func (c *Config) applyStageDefaults(stageCfg *StageAIConfig) {
	if stageCfg.Provider == "" {
		stageCfg.Provider = c.AI.Provider
	}
	if stageCfg.Model == "" {
		stageCfg.Model = c.AI.Model
	}
	if stageCfg.Timeout == nil {
		stageCfg.Timeout = &c.AI.Timeout
	}
	if stageCfg.APIKey == "" {
		stageCfg.APIKey = c.AI.APIKey
	}
	if stageCfg.MaxRetries == nil {
		stageCfg.MaxRetries = &c.AI.MaxRetries
	}
	if stageCfg.Temperature == nil {
		stageCfg.Temperature = &c.AI.Temperature
	}
	if stageCfg.UseSystemPrompts == nil {
		stageCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// StageConfig returns the effective AI configuration for the named pipeline
// stage with all global fallbacks applied.
func (c *Config) StageConfig(stage string) (StageAIConfig, error) {
	var cfg StageAIConfig
	switch stage {
	case StageParseJob:
		cfg = c.AI.ParseJob
	case StageExtractResume:
		cfg = c.AI.ExtractResume
	case StageAnalyzeSkills:
		cfg = c.AI.AnalyzeSkills
	case StageEvaluateExperience:
		cfg = c.AI.EvaluateExperience
	case StageAnalyzeEducation:
		cfg = c.AI.AnalyzeEducation
	case StageAnalyzeCulturalFit:
		cfg = c.AI.AnalyzeCulturalFit
	case StageGenerateReport:
		cfg = c.AI.GenerateReport
	default:
		return StageAIConfig{}, fmt.Errorf("unknown pipeline stage: %s", stage)
	}

	c.applyStageDefaults(&cfg)

	loaded := loadedPrompts.forStage(stage)
	if cfg.Prompts.System == "" {
		cfg.Prompts.System = loaded.System
	}
	if cfg.Prompts.User == "" {
		cfg.Prompts.User = loaded.User
	}

	return cfg, nil
}
