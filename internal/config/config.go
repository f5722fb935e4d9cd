package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	CORS struct {
		Origins []string `yaml:"origins"`
	} `yaml:"cors"`
	Gemini struct {
		APIKey   string        `yaml:"api_key"`
		Endpoint string        `yaml:"endpoint"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"gemini"`
	Groq struct {
		APIKey      string        `yaml:"api_key"`
		ChatAPIKey  string        `yaml:"chat_api_key"`
		Endpoint    string        `yaml:"endpoint"`
		Model       string        `yaml:"model"`
		Timeout     time.Duration `yaml:"timeout"`
		ChatTimeout time.Duration `yaml:"chat_timeout"`
	} `yaml:"groq"`
	OpenRouter struct {
		APIKey   string        `yaml:"api_key"`
		Endpoint string        `yaml:"endpoint"`
		Model    string        `yaml:"model"`
		Referer  string        `yaml:"referer"`
		Title    string        `yaml:"title"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"openrouter"`
	Demo struct {
		Force bool `yaml:"force"`
	} `yaml:"demo"`
	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
	Redis struct {
		URL      string        `yaml:"url"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"redis"`
	RateLimit struct {
		ChatPerMinute int `yaml:"chat_per_minute"`
		Burst         int `yaml:"burst"`
	} `yaml:"rate_limit"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func Default() Config {
	var cfg Config
	cfg.HTTP.Addr = ":8000"
	cfg.CORS.Origins = []string{"http://localhost:3000", "http://localhost:5173"}
	cfg.Gemini.Endpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"
	cfg.Gemini.Timeout = 90 * time.Second
	cfg.Groq.Endpoint = "https://api.groq.com/openai/v1/chat/completions"
	cfg.Groq.Model = "llama-3.1-8b-instant"
	cfg.Groq.Timeout = 90 * time.Second
	cfg.Groq.ChatTimeout = 15 * time.Second
	cfg.OpenRouter.Endpoint = "https://openrouter.ai/api/v1/chat/completions"
	cfg.OpenRouter.Model = "deepseek/deepseek-chat-v3-0324:free"
	cfg.OpenRouter.Referer = "https://blueprintai.app"
	cfg.OpenRouter.Title = "BlueprintAI"
	cfg.OpenRouter.Timeout = 120 * time.Second
	cfg.Redis.CacheTTL = 24 * time.Hour
	cfg.RateLimit.ChatPerMinute = 20
	cfg.RateLimit.Burst = 10
	cfg.Log.Level = "info"
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, err
			}
		} else {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// GroqChatKey returns the key for the fast mentor-chat path, falling back
// to the main Groq key when no dedicated one is configured.
func (c Config) GroqChatKey() string {
	if c.Groq.ChatAPIKey != "" {
		return c.Groq.ChatAPIKey
	}
	return c.Groq.APIKey
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BP_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("BP_CORS_ORIGINS"); v != "" {
		cfg.CORS.Origins = splitCSV(v)
	}
	if v := firstEnv("BP_GEMINI_API_KEY", "GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("BP_GEMINI_ENDPOINT"); v != "" {
		cfg.Gemini.Endpoint = v
	}
	if v := os.Getenv("BP_GEMINI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Gemini.Timeout = d
		}
	}
	if v := firstEnv("BP_GROQ_API_KEY", "GROQ_API_KEY"); v != "" {
		cfg.Groq.APIKey = v
	}
	if v := firstEnv("BP_GROQ_CHAT_API_KEY", "GROQ_CHAT_API_KEY"); v != "" {
		cfg.Groq.ChatAPIKey = v
	}
	if v := os.Getenv("BP_GROQ_ENDPOINT"); v != "" {
		cfg.Groq.Endpoint = v
	}
	if v := os.Getenv("BP_GROQ_MODEL"); v != "" {
		cfg.Groq.Model = v
	}
	if v := os.Getenv("BP_GROQ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Groq.Timeout = d
		}
	}
	if v := os.Getenv("BP_GROQ_CHAT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Groq.ChatTimeout = d
		}
	}
	if v := firstEnv("BP_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"); v != "" {
		cfg.OpenRouter.APIKey = v
	}
	if v := os.Getenv("BP_OPENROUTER_ENDPOINT"); v != "" {
		cfg.OpenRouter.Endpoint = v
	}
	if v := os.Getenv("BP_OPENROUTER_MODEL"); v != "" {
		cfg.OpenRouter.Model = v
	}
	if v := os.Getenv("BP_OPENROUTER_REFERER"); v != "" {
		cfg.OpenRouter.Referer = v
	}
	if v := os.Getenv("BP_OPENROUTER_TITLE"); v != "" {
		cfg.OpenRouter.Title = v
	}
	if v := os.Getenv("BP_OPENROUTER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OpenRouter.Timeout = d
		}
	}
	if v := os.Getenv("BP_DEMO_MODE"); v != "" {
		cfg.Demo.Force = parseBool(v, cfg.Demo.Force)
	}
	if v := firstEnv("BP_DATABASE_DSN", "DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := firstEnv("BP_REDIS_URL", "REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("BP_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Redis.CacheTTL = d
		}
	}
	if v := os.Getenv("BP_RATE_LIMIT_CHAT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.ChatPerMinute = n
		}
	}
	if v := os.Getenv("BP_RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.Burst = n
		}
	}
	if v := os.Getenv("BP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func parseBool(input string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func splitCSV(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
