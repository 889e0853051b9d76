// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-explorer/internal/arxiv"
	"github.com/pdiddy/arxiv-explorer/internal/display"
	"github.com/pdiddy/arxiv-explorer/internal/scheduler"
	"github.com/pdiddy/arxiv-explorer/internal/store"
	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

// setDefaults registers a default for every configuration key so that
// environment variables are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	sc := types.DefaultScoringConfig()

	v.SetDefault("log_level", "warn")
	v.SetDefault("store.path", store.DefaultPath())

	v.SetDefault("fetch.base_url", arxiv.DefaultBaseURL)
	v.SetDefault("fetch.timeout", 60*time.Second)
	v.SetDefault("fetch.user_agent", "arxiv-explorer/"+version)
	v.SetDefault("fetch.rate_limit", arxiv.DefaultRateLimit)
	v.SetDefault("fetch.max_retries", 5)
	v.SetDefault("fetch.max_results", 200)
	v.SetDefault("fetch.default_days", 1)
	v.SetDefault("fetch.default_limit", 20)
	v.SetDefault("fetch.profile_size", 50)

	v.SetDefault("scoring.content_weight", sc.ContentWeight)
	v.SetDefault("scoring.category_weight", sc.CategoryWeight)
	v.SetDefault("scoring.keyword_weight", sc.KeywordWeight)
	v.SetDefault("scoring.recency_weight", sc.RecencyWeight)
	v.SetDefault("scoring.recency_window_days", sc.RecencyWindowDays)

	v.SetDefault("schedule.cron", scheduler.DefaultCron)
	v.SetDefault("schedule.timezone", "Local")
}

func loadConfig(v *viper.Viper) (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

// settingKeys lists the keys `axp config set` accepts, with the field each
// one overrides.
var settingKeys = map[string]func(cfg *types.AppConfig, value string) error{
	"scoring.content_weight":      floatSetting(func(c *types.AppConfig) *float64 { return &c.Scoring.ContentWeight }),
	"scoring.category_weight":     floatSetting(func(c *types.AppConfig) *float64 { return &c.Scoring.CategoryWeight }),
	"scoring.keyword_weight":      floatSetting(func(c *types.AppConfig) *float64 { return &c.Scoring.KeywordWeight }),
	"scoring.recency_weight":      floatSetting(func(c *types.AppConfig) *float64 { return &c.Scoring.RecencyWeight }),
	"scoring.recency_window_days": intSetting(func(c *types.AppConfig) *int { return &c.Scoring.RecencyWindowDays }),
	"fetch.default_days":          intSetting(func(c *types.AppConfig) *int { return &c.Fetch.DefaultDays }),
	"fetch.default_limit":         intSetting(func(c *types.AppConfig) *int { return &c.Fetch.DefaultLimit }),
	"fetch.max_results":           intSetting(func(c *types.AppConfig) *int { return &c.Fetch.MaxResults }),
	"fetch.profile_size":          intSetting(func(c *types.AppConfig) *int { return &c.Fetch.ProfileSize }),
}

func floatSetting(field func(*types.AppConfig) *float64) func(*types.AppConfig, string) error {
	return func(cfg *types.AppConfig, value string) error {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", value)
		}
		*field(cfg) = f
		return nil
	}
}

func intSetting(field func(*types.AppConfig) *int) func(*types.AppConfig, string) error {
	return func(cfg *types.AppConfig, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("not an integer: %q", value)
		}
		*field(cfg) = n
		return nil
	}
}

// applySettings overlays stored settings on cfg. Unknown keys are ignored.
func applySettings(cfg *types.AppConfig, settings map[string]string) error {
	for key, value := range settings {
		set, ok := settingKeys[key]
		if !ok {
			continue
		}
		if err := set(cfg, value); err != nil {
			return fmt.Errorf("stored setting %s: %w", key, err)
		}
	}
	return nil
}

func sortedSettingKeys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or override configuration",
	Long: `Config shows the effective configuration and manages overrides stored in
the database. Stored overrides win over the config file and AXP_* environment
variables.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg); err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			if err := enc.Close(); err != nil {
				return err
			}

			settings, err := a.store.Settings(ctx)
			if err != nil {
				return err
			}
			if len(settings) == 0 {
				return nil
			}
			fmt.Println()
			keys := make([]string, 0, len(settings))
			for k := range settings {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				display.Info(os.Stdout, "override %s = %s", k, settings[k])
			}
			return nil
		})
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a configuration override",
	Long: `Set stores an override in the database. Accepted keys:

  scoring.content_weight, scoring.category_weight, scoring.keyword_weight,
  scoring.recency_weight, scoring.recency_window_days, fetch.default_days,
  fetch.default_limit, fetch.max_results, fetch.profile_size`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		set, ok := settingKeys[key]
		if !ok {
			return fmt.Errorf("unknown setting %q (accepted: %v)", key, sortedSettingKeys())
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			cfg := a.cfg
			if err := set(&cfg, value); err != nil {
				return err
			}
			if err := cfg.Scoring.Validate(); err != nil {
				return err
			}
			if err := a.store.SetSetting(ctx, key, value); err != nil {
				return err
			}
			display.Success(os.Stdout, "%s = %s", key, value)
			return nil
		})
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Remove one stored override, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			var keys []string
			if len(args) == 1 {
				keys = args
			} else {
				settings, err := a.store.Settings(ctx)
				if err != nil {
					return err
				}
				for k := range settings {
					keys = append(keys, k)
				}
			}
			removed := 0
			for _, k := range keys {
				ok, err := a.store.DeleteSetting(ctx, k)
				if err != nil {
					return err
				}
				if ok {
					removed++
				}
			}
			if len(args) == 1 && removed == 0 {
				display.Warn(os.Stdout, "%s was not overridden", args[0])
				return nil
			}
			display.Success(os.Stdout, "Removed %d override(s)", removed)
			return nil
		})
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}
