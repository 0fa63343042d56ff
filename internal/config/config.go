package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/flashquiz/internal/llm"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FLASHQUIZ_LLM_PROVIDER.
const EnvPrefix = "FLASHQUIZ"

// Config holds application configuration loaded from the config file,
// .env, and FLASHQUIZ_* environment variables.
type Config struct {
	Env string `mapstructure:"env"` // "production" switches to JSON logs
	DB  string `mapstructure:"db"`  // SQLite path; empty means the data dir default

	// Questions and Trivia are decks loaded at startup when no flag is given.
	Questions string `mapstructure:"questions"`
	Trivia    string `mapstructure:"trivia"`

	Log Log        `mapstructure:"log"`
	LLM llm.Config `mapstructure:"llm"`
}

// Log configures the zap logger.
type Log struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load reads configuration. An explicit path must exist; otherwise
// config.yaml is looked up in the user config dir and the working directory
// and may be absent.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "flashquiz"))
		}
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(DataDir(), "flashquiz.log")
	}

	// Vendor keys such as OPENAI_API_KEY fill in when no FLASHQUIZ key is set.
	cfg.LLM, _ = llm.Discover(cfg.LLM)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("env", "development")
	v.SetDefault("db", "")
	v.SetDefault("questions", "")
	v.SetDefault("trivia", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	providers := map[string]llm.ProviderConfig{
		llm.ProviderAnthropic:  d.Anthropic,
		llm.ProviderOpenAI:     d.OpenAI,
		llm.ProviderGemini:     d.Gemini,
		llm.ProviderOpenRouter: d.OpenRouter,
	}
	for name, p := range providers {
		v.SetDefault("llm."+name+".api_key", p.APIKey)
		v.SetDefault("llm."+name+".model", p.Model)
		v.SetDefault("llm."+name+".base_url", p.BaseURL)
	}
}

// DataDir is $XDG_DATA_HOME/flashquiz, or ~/.local/share/flashquiz.
func DataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "flashquiz")
}
