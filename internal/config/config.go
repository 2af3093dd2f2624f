package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"`
	TTS      TTSConfig      `mapstructure:"tts"`
	Resolver ResolverConfig `mapstructure:"resolver"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host" validate:"required"`
	Port            int               `mapstructure:"port" validate:"min=1,max=65535"`
	Database        string            `mapstructure:"database" validate:"required"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

// LLMConfig points at an OpenAI-compatible chat completions endpoint.
type LLMConfig struct {
	BaseURL          string `mapstructure:"base_url" validate:"required,url"`
	APIKey           string `mapstructure:"api_key"`
	Model            string `mapstructure:"model" validate:"required"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" validate:"min=0"`
}

type TTSConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	APIKey          string `mapstructure:"api_key"`
	CredentialsFile string `mapstructure:"credentials_file" validate:"omitempty,file"`
	Endpoint        string `mapstructure:"endpoint" validate:"omitempty,url"`
	AudioEncoding   string `mapstructure:"audio_encoding" validate:"oneof=MP3 OGG_OPUS LINEAR16"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" validate:"min=0"`
}

type ResolverConfig struct {
	DefaultLanguage string `mapstructure:"default_language" validate:"required,bcp47_language_tag"`
	// CacheMalformedResponses stores the "trash" fallback for pairs whose
	// LLM answer could not be parsed, so the same pair is not asked again.
	CacheMalformedResponses bool `mapstructure:"cache_malformed_responses"`
	MemoryCacheTTLSeconds   int  `mapstructure:"memory_cache_ttl_seconds" validate:"min=0"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lingocraft")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "lingocraft")
	v.SetDefault("database.username", "user")
	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.model", "openai/gpt-oss-20b")
	v.SetDefault("llm.max_retry_attempts", 2)
	v.SetDefault("llm.timeout_seconds", 60)
	v.SetDefault("tts.enabled", true)
	v.SetDefault("tts.audio_encoding", "MP3")
	v.SetDefault("tts.timeout_seconds", 30)
	v.SetDefault("resolver.default_language", "en-US")
	v.SetDefault("resolver.cache_malformed_responses", true)
	v.SetDefault("resolver.memory_cache_ttl_seconds", 600)

	// Secrets are bound to environment variables only (not from config file)
	if err := v.BindEnv("llm.api_key", "LLM_API_KEY", "GROQ_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind LLM_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("llm.model", "LLM_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind LLM_MODEL environment variable: %w", err)
	}
	if err := v.BindEnv("tts.api_key", "GOOGLE_TTS_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GOOGLE_TTS_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("tts.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS"); err != nil {
		return nil, fmt.Errorf("failed to bind GOOGLE_APPLICATION_CREDENTIALS environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
