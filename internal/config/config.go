package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Tracker  TrackerConfig
	News     NewsConfig
	AI       AIConfig
	GitHub   GitHubConfig
	Blog     BlogConfig
	Sheets   SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// DatabaseConfig holds the relational storage settings for the tracker.
type DatabaseConfig struct {
	Type     string // sqlite, mysql or postgres
	Path     string // sqlite file location
	DSN      string // full DSN override for mysql/postgres
	User     string
	Password string
	Addr     string
	Port     string
	Name     string
}

// TrackerConfig holds nutrition tracking defaults.
type TrackerConfig struct {
	DefaultProteinTarget float64
}

// NewsConfig contains credentials and tuning for the news sources.
type NewsConfig struct {
	APIKey      string
	Categories  []string
	MaxArticles int
	CacheDir    string
}

// AIConfig holds settings for the generative-text provider.
type AIConfig struct {
	AnthropicKey string
}

// GitHubConfig contains the hosted-repository publishing target.
type GitHubConfig struct {
	Token    string
	Repo     string // "owner/name"
	Branch   string
	PostsDir string
}

// BlogConfig holds pipeline scheduling and authoring options.
type BlogConfig struct {
	CronSchedule string
	Timezone     string
	Title        string
	Author       string
	MockMode     bool
	OutputDir    string
}

// SheetsConfig contains the optional Google Sheets export settings. The export
// job is only scheduled when both fields are populated.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ExportCron      string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Type:     getenvWithDefault("DB_TYPE", "sqlite"),
			Path:     getenvWithDefault("DB_PATH", "datas/tracker.db"),
			DSN:      os.Getenv("DB_DSN"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Addr:     os.Getenv("DB_ADDR"),
			Port:     getenvWithDefault("DB_PORT", "3306"),
			Name:     getenvWithDefault("DB_NAME", "tracker"),
		},
		Tracker: TrackerConfig{
			DefaultProteinTarget: getenvFloat("PROTEIN_TARGET_DEFAULT", 150),
		},
		News: NewsConfig{
			APIKey:      os.Getenv("NEWS_API_KEY"),
			Categories:  splitList(getenvWithDefault("NEWS_CATEGORIES", "world news,technology,economy")),
			MaxArticles: getenvInt("MAX_ARTICLES", 8),
			CacheDir:    getenvWithDefault("NEWS_CACHE_DIR", "datas/news_cache"),
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
		GitHub: GitHubConfig{
			Token:    os.Getenv("GITHUB_TOKEN"),
			Repo:     getenvWithDefault("GITHUB_REPO", "akhilreddydanda/NOOBIE"),
			Branch:   getenvWithDefault("GITHUB_BRANCH", "main"),
			PostsDir: getenvWithDefault("GITHUB_POSTS_DIR", "_posts"),
		},
		Blog: BlogConfig{
			CronSchedule: getenvWithDefault("BLOG_CRON_SCHEDULE", "0 8 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
			Title:        getenvWithDefault("BLOG_TITLE", "NOOBIE AI - Daily News Intelligence"),
			Author:       getenvWithDefault("AUTHOR_NAME", "NOOBIE AI"),
			MockMode:     getenvBool("MOCK_MODE", false),
			OutputDir:    getenvWithDefault("BLOG_OUTPUT_DIR", "datas/blog_output"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
			ExportCron:      getenvWithDefault("SHEETS_EXPORT_CRON", "0 20 * * 0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and
// consistent. The blog pipeline credentials are only mandatory outside mock
// mode so the tracker can run standalone during development.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Database.Type {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("DB_PATH must be provided for sqlite")
		}
	case "mysql", "postgres":
		if c.Database.DSN == "" && c.Database.Addr == "" {
			return fmt.Errorf("DB_DSN or DB_ADDR must be provided for %s", c.Database.Type)
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.Database.Type)
	}

	if c.Tracker.DefaultProteinTarget <= 0 {
		return errors.New("PROTEIN_TARGET_DEFAULT must be positive")
	}

	if c.News.MaxArticles < 1 || c.News.MaxArticles > 20 {
		return errors.New("MAX_ARTICLES must be between 1 and 20")
	}

	if c.Blog.CronSchedule == "" {
		return errors.New("BLOG_CRON_SCHEDULE must be provided")
	}
	if c.Blog.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if !c.Blog.MockMode {
		if c.AI.AnthropicKey == "" {
			return errors.New("ANTHROPIC_API_KEY must be provided unless MOCK_MODE is enabled")
		}
		if c.GitHub.Token == "" {
			return errors.New("GITHUB_TOKEN must be provided unless MOCK_MODE is enabled")
		}
		if c.GitHub.Repo == "" {
			return errors.New("GITHUB_REPO must be provided")
		}
	}

	// Sheets export is optional, but half-configured credentials are a
	// deployment mistake worth failing loudly on.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("SHEETS_CREDENTIALS_PATH and SHEETS_SPREADSHEET_ID must be set together")
	}

	return nil
}

// SheetsEnabled reports whether the weekly export job should be scheduled.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return strings.EqualFold(value, "true") || value == "1"
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
