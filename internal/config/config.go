package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	Server     ServerConfig
	Logger     LoggerConfig
	Redis      RedisConfig
	Cache      CacheConfig
	LLM        LLMConfig
	Validation ValidationConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type CacheConfig struct {
	// QuizTTL is how long a generated quiz stays reusable for an identical
	// topic/difficulty/count request. Zero disables quiz caching.
	QuizTTL time.Duration
}

type ValidationConfig struct {
	// Strict makes the normalizer reject responses whose question count,
	// option count, or correct answer break the schema contract, treating
	// the mismatch as a parse failure (and therefore a fallback trigger).
	Strict bool
}

// ProviderConfig holds one backend's credential, model, and request budget.
type ProviderConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxRequests int
	Window      time.Duration
}

type OllamaConfig struct {
	ServerURL   string
	Model       string
	MaxRequests int
	Window      time.Duration
}

type LLMConfig struct {
	// Timeout bounds every outbound provider call.
	Timeout time.Duration
	// EnableFallback controls whether a failed attempt moves on to the next
	// provider in the chain or surfaces immediately.
	EnableFallback bool
	// MaxRetries is read for compatibility with the legacy settings surface;
	// the orchestrator makes a single pass per provider and does not consume it.
	MaxRetries int

	// Ordered provider names per workload.
	QuizProviders []string
	ChatProviders []string

	OpenAI    ProviderConfig
	Anthropic ProviderConfig
	Google    ProviderConfig
	Groq      ProviderConfig
	Cohere    ProviderConfig
	Mistral   ProviderConfig
	Ollama    OllamaConfig
}

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxRequests = 10
	defaultWindow      = time.Minute
)

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../configs")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine: every key has a default or an env override.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Env: viper.GetString("env"),
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("env"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			QuizTTL: viper.GetDuration("cache.quiz_ttl"),
		},
		Validation: ValidationConfig{
			Strict: viper.GetBool("validation.strict"),
		},
		LLM: LLMConfig{
			Timeout:        viper.GetDuration("llm.timeout"),
			EnableFallback: viper.GetBool("llm.enable_fallback"),
			MaxRetries:     viper.GetInt("llm.max_retries"),
			QuizProviders:  viper.GetStringSlice("llm.quiz_providers"),
			ChatProviders:  viper.GetStringSlice("llm.chat_providers"),
			OpenAI:         providerConfig("openai"),
			Anthropic:      providerConfig("anthropic"),
			Google:         providerConfig("google"),
			Groq:           providerConfig("groq"),
			Cohere:         providerConfig("cohere"),
			Mistral:        providerConfig("mistral"),
			Ollama: OllamaConfig{
				ServerURL:   viper.GetString("llm.ollama.server_url"),
				Model:       viper.GetString("llm.ollama.model"),
				MaxRequests: viper.GetInt("llm.ollama.max_requests"),
				Window:      viper.GetDuration("llm.ollama.window"),
			},
		},
	}

	// Credentials come from the environment when present, matching the
	// deployment convention the providers themselves document.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.LLM.OpenAI.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.LLM.Anthropic.APIKey = key
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		config.LLM.Google.APIKey = key
	}
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		config.LLM.Groq.APIKey = key
	}
	if key := os.Getenv("COHERE_API_KEY"); key != "" {
		config.LLM.Cohere.APIKey = key
	}
	if key := os.Getenv("MISTRAL_API_KEY"); key != "" {
		config.LLM.Mistral.APIKey = key
	}
	if url := os.Getenv("OLLAMA_BASE_URL"); url != "" {
		config.LLM.Ollama.ServerURL = url
	}
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		config.Redis.Address = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Redis.Password = password
	}

	return config, nil
}

func providerConfig(name string) ProviderConfig {
	prefix := "llm." + name
	return ProviderConfig{
		APIKey:      viper.GetString(prefix + ".api_key"),
		Model:       viper.GetString(prefix + ".model"),
		BaseURL:     viper.GetString(prefix + ".base_url"),
		MaxRequests: viper.GetInt(prefix + ".max_requests"),
		Window:      viper.GetDuration(prefix + ".window"),
	}
}

func setDefaults() {
	viper.SetDefault("env", "development")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10)
	viper.SetDefault("server.write_timeout", 60)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("cache.quiz_ttl", time.Hour)
	viper.SetDefault("validation.strict", false)

	viper.SetDefault("llm.timeout", defaultTimeout)
	viper.SetDefault("llm.enable_fallback", true)
	viper.SetDefault("llm.max_retries", 3)
	viper.SetDefault("llm.quiz_providers", []string{"groq", "google", "cohere"})
	viper.SetDefault("llm.chat_providers", []string{"cohere", "google", "groq"})

	viper.SetDefault("llm.openai.model", "gpt-4o")
	viper.SetDefault("llm.anthropic.model", "claude-3-sonnet-20240229")
	viper.SetDefault("llm.google.model", "gemini-1.5-flash")
	viper.SetDefault("llm.groq.model", "mixtral-8x7b-32768")
	viper.SetDefault("llm.cohere.model", "command-r-plus")
	viper.SetDefault("llm.mistral.model", "mistral-large-latest")
	viper.SetDefault("llm.ollama.model", "llama3.1:8b")

	for _, name := range []string{"openai", "anthropic", "google", "groq", "cohere", "mistral", "ollama"} {
		viper.SetDefault("llm."+name+".max_requests", defaultMaxRequests)
		viper.SetDefault("llm."+name+".window", defaultWindow)
	}
}
