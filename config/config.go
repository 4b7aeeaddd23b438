package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// IsConfigured returns true if the explainer collaborator credential is present.
// Its absence is the sole switch to the local heuristic for explain commands.
func (c AnthropicConfig) IsConfigured() bool {
	return c.APIKey != ""
}

type DatabaseConfig struct {
	URL    string
	Schema string
}

// IsConfigured returns true if interaction history storage is available
func (c DatabaseConfig) IsConfigured() bool {
	return c.URL != ""
}

type SandboxConfig struct {
	Interpreter     string
	InterpreterArgs []string
	TimeoutSeconds  int
	MaxOutputKB     int
}

type AppConfig struct {
	// Core configuration
	Port                       string // Optional with default "8080"
	CORSAllowedOrigins         string // Optional with default "*"
	Environment                string
	BaseURL                    string // Public base URL used in the workflow document
	AlertWebhookURL            string
	CollaboratorTimeoutSeconds int
	UseStrictConfig            bool // If true, error when any integration is not fully configured

	// Integration configurations (grouped)
	AnthropicConfig AnthropicConfig
	DatabaseConfig  DatabaseConfig
	SandboxConfig   SandboxConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	port := getEnvWithDefault("PORT", "8080")

	collaboratorTimeout, err := getEnvIntWithDefault("COLLABORATOR_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	sandboxTimeout, err := getEnvIntWithDefault("SANDBOX_TIMEOUT_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	sandboxMaxOutput, err := getEnvIntWithDefault("SANDBOX_MAX_OUTPUT_KB", 64)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		// Core configuration
		Port:                       port,
		CORSAllowedOrigins:         getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:                getEnvWithDefault("ENVIRONMENT", "dev"),
		BaseURL:                    getEnvWithDefault("AGENT_BASE_URL", "http://localhost:"+port),
		AlertWebhookURL:            getEnvWithDefault("ALERT_WEBHOOK_URL", ""),
		CollaboratorTimeoutSeconds: collaboratorTimeout,
		UseStrictConfig:            getEnvWithDefault("USE_STRICT_CONFIG", "false") == "true",

		// Anthropic configuration (optional; empty model selects the default)
		AnthropicConfig: AnthropicConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Model:  os.Getenv("ANTHROPIC_MODEL"),
		},

		// Database configuration (optional)
		DatabaseConfig: DatabaseConfig{
			URL:    os.Getenv("DB_URL"),
			Schema: getEnvWithDefault("DB_SCHEMA", "public"),
		},

		// Sandbox configuration (defaults applied by the sandbox client)
		SandboxConfig: SandboxConfig{
			Interpreter:     os.Getenv("SANDBOX_INTERPRETER"),
			InterpreterArgs: splitEnvList("SANDBOX_INTERPRETER_ARGS"),
			TimeoutSeconds:  sandboxTimeout,
			MaxOutputKB:     sandboxMaxOutput,
		},
	}

	// Log which integrations are configured
	if config.AnthropicConfig.IsConfigured() {
		log.Printf("✅ Anthropic integration configured - explain uses the Messages API")
	} else {
		log.Printf("⚠️ Anthropic integration not configured - explain falls back to the local heuristic")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("anthropic integration is not configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.DatabaseConfig.IsConfigured() {
		log.Printf("✅ Database configured - interaction history enabled")
	} else {
		log.Printf("⚠️ Database not configured - interaction history will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("database is not configured (USE_STRICT_CONFIG=true)")
		}
	}

	return config, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func splitEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
