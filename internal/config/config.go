package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Schedule configuration (cron expression with seconds field)
	CronSchedule string

	// Search provider configuration
	TavilyAPIKey       string
	TavilyBaseURL      string
	Queries            []string
	IncludeDomains     []string
	MaxResultsPerQuery int

	// Completion provider configuration
	GroqAPIKey       string
	GroqBaseURL      string
	GroqModel        string
	MaxAnalyzed      int // hits classified per run; the rest are never sent
	SnippetCharLimit int

	// Success-rate tiers for the digest badges
	HighSuccessThreshold   int
	MediumSuccessThreshold int

	// Mail configuration
	ResendAPIKey  string
	ResendBaseURL string
	OwnerEmail    string
	FromAddress   string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string

	// GitHub snapshot store configuration
	GitHubToken    string
	GitHubRepo     string // "owner/repo"
	GitHubDataPath string
	GitHubBaseURL  string

	// Local database
	DBPath string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Debug:        getBoolEnv("DEBUG", false),
		CronSchedule: getEnv("CRON_SCHEDULE", "0 0 4 * * *"), // daily, 8 AM Dubai time

		TavilyAPIKey:  getEnv("TAVILY_API_KEY", ""),
		TavilyBaseURL: getEnv("TAVILY_BASE_URL", "https://api.tavily.com"),
		Queries: getSliceEnv("SEARCH_QUERIES", []string{
			"Quantity Surveyor freelance job Upwork site:upwork.com",
			"BOQ cost estimation freelancer site:freelancer.com",
			"quantity takeoff remote work",
			"حصر كميات مستقل",
			"construction estimator freelance",
		}),
		IncludeDomains: getSliceEnv("INCLUDE_DOMAINS", []string{
			"upwork.com", "freelancer.com", "mostaql.com", "fiverr.com", "linkedin.com",
		}),
		MaxResultsPerQuery: getIntEnv("MAX_RESULTS_PER_QUERY", 5),

		GroqAPIKey:       getEnv("GROQ_API_KEY", ""),
		GroqBaseURL:      getEnv("GROQ_BASE_URL", "https://api.groq.com/openai"),
		GroqModel:        getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		MaxAnalyzed:      getIntEnv("MAX_ANALYZED", 15),
		SnippetCharLimit: getIntEnv("SNIPPET_CHAR_LIMIT", 500),

		HighSuccessThreshold:   getIntEnv("HIGH_SUCCESS_THRESHOLD", 70),
		MediumSuccessThreshold: getIntEnv("MEDIUM_SUCCESS_THRESHOLD", 50),

		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		ResendBaseURL: getEnv("RESEND_BASE_URL", "https://api.resend.com"),
		OwnerEmail:    getEnv("OWNER_EMAIL", "basel.omar.qs@gmail.com"),
		FromAddress:   getEnv("FROM_ADDRESS", "QS Empire <onboarding@resend.dev>"),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getIntEnv("SMTP_PORT", 587),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),

		GitHubToken:    getEnv("GITHUB_TOKEN", ""),
		GitHubRepo:     getEnv("GITHUB_REPO", "baselomar044-dev/qs-empire"),
		GitHubDataPath: getEnv("GITHUB_DATA_PATH", "data.json"),
		GitHubBaseURL:  getEnv("GITHUB_BASE_URL", "https://api.github.com"),

		DBPath: getEnv("DB_PATH", "agent_memory.db"),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.TavilyAPIKey == "" {
		return fmt.Errorf("TAVILY_API_KEY is required")
	}

	if c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}

	if c.ResendAPIKey == "" && c.SMTPHost == "" {
		return fmt.Errorf("at least one mail channel must be configured (RESEND_API_KEY or SMTP_HOST)")
	}

	if c.SMTPHost != "" {
		if c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD are required when SMTP_HOST is set")
		}
	}

	if c.MaxAnalyzed <= 0 {
		return fmt.Errorf("MAX_ANALYZED must be positive")
	}

	if c.HighSuccessThreshold < c.MediumSuccessThreshold {
		return fmt.Errorf("HIGH_SUCCESS_THRESHOLD must be >= MEDIUM_SUCCESS_THRESHOLD")
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
