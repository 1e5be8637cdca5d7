package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	LogLevel        string
	HTTPAddr        string
	MetricsAddr     string
	AllowedOrigins  []string
	ReviewPath      string
	MaxBodyBytes    int64
	HTTPTimeout     time.Duration
	ProviderTimeout time.Duration
	Instruction     string

	OpenAIKey   string
	OpenAIModel string
	OpenAIBase  string

	GeminiKey       string
	GeminiModel     string
	GeminiBase      string
	GeminiTransport string // rest|sdk
}

// Load reads configuration from the environment once at startup. Values from a local
// .env file are used only for variables that are not already set.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", "info"),
		HTTPAddr:        env("HTTP_ADDR", ":3000"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		AllowedOrigins:  splitList(env("ALLOWED_ORIGINS", "*")),
		ReviewPath:      env("REVIEW_PATH", "/api/review"),
		MaxBodyBytes:    int64(atoi("MAX_BODY_BYTES", 1<<20)),
		HTTPTimeout:     time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 75)) * time.Second,
		ProviderTimeout: time.Duration(atoi("PROVIDER_TIMEOUT_SECONDS", 30)) * time.Second,
		OpenAIKey:       env("OPENAI_API_KEY", ""),
		OpenAIModel:     env("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBase:      env("OPENAI_BASE_URL", "https://api.openai.com/v1/"),
		GeminiKey:       env("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiModel:     env("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBase:      env("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiTransport: strings.ToLower(env("GEMINI_TRANSPORT", "rest")),
	}
	if port := os.Getenv("PORT"); port != "" {
		c.HTTPAddr = ":" + port
	}
	if !strings.HasPrefix(c.ReviewPath, "/") {
		c.ReviewPath = "/" + c.ReviewPath
	}
	c.Instruction = loadInstruction()

	if c.OpenAIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is empty")
	}
	if c.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty")
	}
	return c
}

// loadInstruction prefers REVIEW_INSTRUCTION, then REVIEW_INSTRUCTION_FILE, then the built-in text.
func loadInstruction() string {
	if v := strings.TrimSpace(os.Getenv("REVIEW_INSTRUCTION")); v != "" {
		return v
	}
	if path := os.Getenv("REVIEW_INSTRUCTION_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("instruction file unreadable, using default")
		} else if s := strings.TrimSpace(string(b)); s != "" {
			return s
		}
	}
	return DefaultInstruction
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
