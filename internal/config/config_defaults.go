package config

import (
	"time"

	"github.com/spf13/viper"
)

// stageDefault holds the per-stage tuning defaults. Extraction stages run
// cold for determinism; synthesis stages get a little more freedom.
type stageDefault struct {
	key         string
	timeout     time.Duration
	maxRetries  int
	temperature float32
}

var stageDefaults = []stageDefault{
	{"parseJob", 60 * time.Second, 3, 0.1},
	{"extractResume", 60 * time.Second, 3, 0.1},
	{"analyzeSkills", 75 * time.Second, 3, 0.2},
	{"evaluateExperience", 75 * time.Second, 3, 0.1},
	{"analyzeEducation", 75 * time.Second, 3, 0.2},
	{"analyzeCulturalFit", 75 * time.Second, 3, 0.3},
	{"generateReport", 120 * time.Second, 2, 0.3},
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.2)
	v.SetDefault("ai.useSystemPrompts", true)
	v.SetDefault("ai.promptReload.enabled", false)
	v.SetDefault("ai.promptReload.debounceDelay", time.Second)

	// AI Configuration - per-stage defaults
	for _, sd := range stageDefaults {
		prefix := "ai." + sd.key + "."
		v.SetDefault(prefix+"provider", "gemini")
		v.SetDefault(prefix+"model", "")
		v.SetDefault(prefix+"timeout", sd.timeout)
		v.SetDefault(prefix+"apiKey", "")
		v.SetDefault(prefix+"maxRetries", sd.maxRetries)
		v.SetDefault(prefix+"temperature", sd.temperature)
		v.SetDefault(prefix+"useSystemPrompts", true)

		v.SetDefault(prefix+"circuitBreaker.enabled", true)
		v.SetDefault(prefix+"circuitBreaker.maxRequests", 3)
		v.SetDefault(prefix+"circuitBreaker.interval", 60*time.Second)
		v.SetDefault(prefix+"circuitBreaker.timeout", 60*time.Second)
		v.SetDefault(prefix+"circuitBreaker.minRequests", 3)
		v.SetDefault(prefix+"circuitBreaker.failureThreshold", 0.6)
	}

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	// The full pipeline runs seven model calls; give responses room.
	v.SetDefault("server.writeTimeout", 600*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)

	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled") // disabled, server
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")

	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})

	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 10*1024*1024) // 10MB
	v.SetDefault("app.allowedExtensions", []string{".pdf", ".txt"})

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "hiresight")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
