// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("AXP")
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newViper())
	require.NoError(t, err)

	assert.Equal(t, types.DefaultScoringConfig(), cfg.Scoring)
	assert.Equal(t, 3*time.Second, cfg.Fetch.RateLimit)
	assert.Equal(t, 60*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 200, cfg.Fetch.MaxResults)
	assert.Equal(t, 20, cfg.Fetch.DefaultLimit)
	assert.Equal(t, "0 8 * * *", cfg.Schedule.Cron)
	assert.NotEmpty(t, cfg.Store.Path)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "axp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
store:
  path: /tmp/explorer-test.db
fetch:
  user_agent: tester/1.0
  rate_limit: 5s
  default_days: 3
scoring:
  content_weight: 0.9
  recency_window_days: 14
schedule:
  cron: "@daily"
  timezone: UTC
`), 0o644))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/explorer-test.db", cfg.Store.Path)
	assert.Equal(t, "tester/1.0", cfg.Fetch.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.Fetch.RateLimit)
	assert.Equal(t, 3, cfg.Fetch.DefaultDays)
	assert.Equal(t, 0.9, cfg.Scoring.ContentWeight)
	assert.Equal(t, 0.2, cfg.Scoring.CategoryWeight, "unset keys keep defaults")
	assert.Equal(t, 14, cfg.Scoring.RecencyWindowDays)
	assert.Equal(t, "@daily", cfg.Schedule.Cron)
	assert.Equal(t, "UTC", cfg.Schedule.Timezone)
}

func TestApplySettings(t *testing.T) {
	cfg := types.AppConfig{Scoring: types.DefaultScoringConfig()}
	err := applySettings(&cfg, map[string]string{
		"scoring.keyword_weight":      "0.4",
		"scoring.recency_window_days": "7",
		"fetch.default_limit":         "5",
		"unrelated.key":               "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.4, cfg.Scoring.KeywordWeight)
	assert.Equal(t, 7, cfg.Scoring.RecencyWindowDays)
	assert.Equal(t, 5, cfg.Fetch.DefaultLimit)
	assert.Equal(t, 0.5, cfg.Scoring.ContentWeight)
}

func TestApplySettingsRejectsBadValues(t *testing.T) {
	cfg := types.AppConfig{}
	assert.Error(t, applySettings(&cfg, map[string]string{"scoring.content_weight": "heavy"}))
	assert.Error(t, applySettings(&cfg, map[string]string{"fetch.default_days": "1.5"}))
}

func TestSortedSettingKeys(t *testing.T) {
	keys := sortedSettingKeys()
	assert.Len(t, keys, len(settingKeys))
	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, "scoring.content_weight")
}

func TestOpenOutput(t *testing.T) {
	w, err := openOutput("")
	require.NoError(t, err)
	assert.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "out.md")
	w, err = openOutput(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("# Interesting Papers\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Interesting Papers\n", string(data))

	_, err = openOutput(filepath.Join(t.TempDir(), "missing", "dir", "out.md"))
	assert.Error(t, err)
}
