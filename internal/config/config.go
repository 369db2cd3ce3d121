package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the process-wide, read-only configuration. A missing upstream
// credential degrades the corresponding feature with a warning instead of
// failing startup; the affected endpoints surface the error per request.
type Config struct {
	AppPort        int      `mapstructure:"APP_PORT"`
	DatabasePath   string   `mapstructure:"DATABASE_PATH"`
	GeminiAPIKey   string   `mapstructure:"GEMINI_API_KEY"`
	GeminiBaseURL  string   `mapstructure:"GEMINI_BASE_URL"`
	DIDAPIKey      string   `mapstructure:"DID_API_KEY"`
	DIDBaseURL     string   `mapstructure:"DID_BASE_URL"`
	FrontendURL    string   `mapstructure:"FRONTEND_URL"`
	VideosDir      string   `mapstructure:"VIDEOS_DIR"`
	RenderCommand  string   `mapstructure:"RENDER_COMMAND"`
	SystemPrompt   string   `mapstructure:"SYSTEM_PROMPT"`
	ModelFallbacks []string `mapstructure:"MODEL_FALLBACKS"`
	LogLevel       string   `mapstructure:"LOG_LEVEL"`
}

// DefaultSystemPrompt is the tutoring persona attached to every upstream call.
const DefaultSystemPrompt = `You are "Dr. Neutron", a JEE tutor. Keep responses ULTRA SHORT (max 80 words).

FORMATTING RULES - CRITICAL:
1. Use LaTeX ONLY for math: \( E=mc^2 \) or \[ F=ma \]
2. NO markdown (* # ### etc). Plain text only.
3. Use ACTUAL line breaks for paragraphs (just press Enter twice), NOT the literal text "\n\n"
4. NO introductions. Direct answers only.

RESPONSE STYLE:
- Definitions: 1-2 sentences max
- Concepts: Key point + equation only
- Numerical: Steps with LaTeX, brief
- Non-JEE topics: "That's outside JEE syllabus."

Be concise. No fluff.`

// DefaultModelFallbacks is the ordered model chain tried until one accepts a
// request. Order matters: cheaper, more available models first.
var DefaultModelFallbacks = []string{
	"models/gemini-2.5-flash",
	"models/gemini-2.0-flash",
	"models/gemini-2.0-flash-lite",
	"models/gemini-flash-latest",
	"models/gemini-2.5-pro",
	"models/gemini-pro-latest",
	"models/gemini-2.0-flash-exp",
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 3000)
	viper.SetDefault("DATABASE_PATH", "./data/clario.db")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("DID_API_KEY", "")
	viper.SetDefault("DID_BASE_URL", "https://api.d-id.com")
	viper.SetDefault("FRONTEND_URL", "")
	viper.SetDefault("VIDEOS_DIR", "./public/videos")
	viper.SetDefault("RENDER_COMMAND", "node server/renderVideo.mjs")
	viper.SetDefault("SYSTEM_PROMPT", DefaultSystemPrompt)
	viper.SetDefault("MODEL_FALLBACKS", DefaultModelFallbacks)
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ModelFallbacks = splitFallbacks(cfg.ModelFallbacks)

	return &cfg, nil
}

// splitFallbacks normalizes the model list: when the chain arrives through a
// single env var it is one comma-separated string rather than a slice.
func splitFallbacks(models []string) []string {
	var out []string
	for _, m := range models {
		for _, part := range strings.Split(m, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
