package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

// Config holds every setting the bot needs. It is built once at startup
// and passed by reference into each component; nothing mutates it after
// Load returns. Secrets never live in config.yaml; they come from the
// environment (or .env via godotenv).
type Config struct {
	Logging      LoggingConfig      `yaml:"logging"`
	Schedule     ScheduleConfig     `yaml:"schedule"`
	Generation   GenerationConfig   `yaml:"generation"`
	ContentStore ContentStoreConfig `yaml:"content_store"`
	Images       ImagesConfig       `yaml:"images"`
	Mongo        MongoConfig        `yaml:"mongo"`
	EventBus     EventBusConfig     `yaml:"eventbus"`
	API          APIConfig          `yaml:"api"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ScheduleConfig defines when the pipeline fires.
// Cron uses the standard 5-field format, evaluated in Timezone.
type ScheduleConfig struct {
	Cron           string `yaml:"cron"`
	Timezone       string `yaml:"timezone"`
	TimeoutMinutes int    `yaml:"timeout_minutes"`
}

type GenerationConfig struct {
	Model           string  `yaml:"model"`
	MaxOutputTokens int32   `yaml:"max_output_tokens"`
	Temperature     float32 `yaml:"temperature"`

	// APIKey is sourced from GEMINI_API_KEY, never from yaml.
	APIKey string `yaml:"-"`
}

// ContentStoreConfig identifies the structured-content database and the
// fixed references every generated post carries.
type ContentStoreConfig struct {
	ProjectID  string `yaml:"project_id"`
	Dataset    string `yaml:"dataset"`
	APIHost    string `yaml:"api_host"`
	APIVersion string `yaml:"api_version"`
	AuthorID   string `yaml:"author_id"`
	CategoryID string `yaml:"category_id"`

	// Token is sourced from CONTENT_API_TOKEN, never from yaml.
	Token string `yaml:"-"`
}

type ImagesConfig struct {
	PlaceholderBaseURL string `yaml:"placeholder_base_url"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type EventBusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Brokers string `yaml:"brokers"`
	Topic   string `yaml:"topic"`
}

type APIConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads .env, config.yaml and environment overrides into a Config.
func Load() (*Config, error) {
	godotenv.Load(filepath.Join(BasePath(), ENV_FILE))

	var c Config
	data, err := os.ReadFile(filepath.Join(BasePath(), CONFIG_FILE))
	if err == nil {
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", CONFIG_FILE, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", CONFIG_FILE, err)
	}

	c.applyDefaults()
	c.applyEnvOverrides()

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Schedule.Cron == "" {
		// once daily at 09:00 local time
		c.Schedule.Cron = "0 9 * * *"
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "UTC"
	}
	if c.Schedule.TimeoutMinutes <= 0 {
		c.Schedule.TimeoutMinutes = 5
	}
	if c.Generation.Model == "" {
		c.Generation.Model = "gemini-2.0-flash"
	}
	if c.Generation.MaxOutputTokens <= 0 {
		c.Generation.MaxOutputTokens = 400
	}
	if c.Generation.Temperature == 0 {
		c.Generation.Temperature = 0.7
	}
	if c.ContentStore.APIHost == "" {
		c.ContentStore.APIHost = "api.sanity.io"
	}
	if c.ContentStore.APIVersion == "" {
		c.ContentStore.APIVersion = "v2021-06-07"
	}
	if c.ContentStore.Dataset == "" {
		c.ContentStore.Dataset = "production"
	}
	if c.Images.PlaceholderBaseURL == "" {
		c.Images.PlaceholderBaseURL = "https://placehold.co/800x400.png"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "snippetbot"
	}
	if c.EventBus.Topic == "" {
		c.EventBus.Topic = "snippet-bot.post.events"
	}
	if c.API.Addr == "" {
		c.API.Addr = ":8080"
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Generation.APIKey = v
	}
	if v := os.Getenv("CONTENT_API_TOKEN"); v != "" {
		c.ContentStore.Token = v
	}
	if v := os.Getenv("CONTENT_PROJECT_ID"); v != "" {
		c.ContentStore.ProjectID = v
	}
	if v := os.Getenv("CONTENT_DATASET"); v != "" {
		c.ContentStore.Dataset = v
	}
	if v := os.Getenv("CONTENT_AUTHOR_ID"); v != "" {
		c.ContentStore.AuthorID = v
	}
	if v := os.Getenv("CONTENT_CATEGORY_ID"); v != "" {
		c.ContentStore.CategoryID = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DB_NAME"); v != "" {
		c.Mongo.Database = v
	}
	if v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); v != "" {
		c.EventBus.Brokers = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// BasePath walks up from the working directory until it finds config.yaml,
// so the binary can run from any subdirectory of the project.
func BasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd
}
