package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", LogLevel: "info"},
		Database: DatabaseConfig{Type: "sqlite", Path: "datas/tracker.db"},
		Tracker:  TrackerConfig{DefaultProteinTarget: 150},
		News:     NewsConfig{MaxArticles: 8},
		Blog: BlogConfig{
			CronSchedule: "0 8 * * *",
			Timezone:     "UTC",
			MockMode:     true,
		},
	}
}

func TestValidateAcceptsMockModeWithoutCredentials(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRequiresCredentialsOutsideMockMode(t *testing.T) {
	cfg := validConfig()
	cfg.Blog.MockMode = false

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")

	cfg.AI.AnthropicKey = "sk-ant-test"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")

	cfg.GitHub.Token = "ghp_test"
	cfg.GitHub.Repo = "owner/blog"
	assert.NoError(t, cfg.Validate())
}

func TestValidateDatabaseSettings(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{Type: "sqlite"}
	assert.Error(t, cfg.Validate())

	cfg.Database = DatabaseConfig{Type: "mysql"}
	assert.Error(t, cfg.Validate())

	cfg.Database = DatabaseConfig{Type: "mysql", Addr: "127.0.0.1"}
	assert.NoError(t, cfg.Validate())

	cfg.Database = DatabaseConfig{Type: "postgres", DSN: "host=localhost dbname=tracker"}
	assert.NoError(t, cfg.Validate())

	cfg.Database = DatabaseConfig{Type: "oracle"}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadTunables(t *testing.T) {
	cfg := validConfig()
	cfg.Tracker.DefaultProteinTarget = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.News.MaxArticles = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.News.MaxArticles = 21
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Blog.CronSchedule = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsHalfConfiguredSheets(t *testing.T) {
	cfg := validConfig()
	cfg.Sheets.CredentialsPath = "creds.json"
	assert.Error(t, cfg.Validate())

	cfg.Sheets.SpreadsheetID = "sheet-id"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.SheetsEnabled())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"world news", "technology"}, splitList("world news, technology"))
	assert.Equal(t, []string{"economy"}, splitList(" economy ,, "))
	assert.Empty(t, splitList(""))
}
