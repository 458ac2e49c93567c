package server

import (
	"time"

	"hiresight/internal/ai"
	"hiresight/internal/config"
	hsErrors "hiresight/internal/errors"
	"hiresight/internal/fileproc"
	"hiresight/internal/workflow"
)

// AnalyzeTextRequest represents the request body for the text analysis endpoint
type AnalyzeTextRequest struct {
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"resumeText"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *hsErrors.Logger

	// Analysis pipeline collaborators, shared across requests
	aiService *ai.Service
	engine    *workflow.Engine
	extractor *fileproc.Extractor
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct. The AI
// provider and workflow engine are built once and shared across requests.
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *hsErrors.Logger) (*Server, error) {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	aiService, err := ai.NewService(appCfg, logger)
	if err != nil {
		return nil, err
	}

	engine, err := workflow.NewEngine(workflow.StagesFromProvider(aiService.Provider), nil, nil, logger)
	if err != nil {
		return nil, err
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
		aiService:      aiService,
		engine:         engine,
		extractor:      fileproc.NewExtractor(&appCfg.App, logger),
	}, nil
}
