// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the axp CLI: a personal arXiv paper
// recommender that ranks new submissions against the user's interests.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-explorer/internal/arxiv"
	"github.com/pdiddy/arxiv-explorer/internal/recommend"
	"github.com/pdiddy/arxiv-explorer/internal/store"
	"github.com/pdiddy/arxiv-explorer/internal/triage"
	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the axp CLI.
var rootCmd = &cobra.Command{
	Use:   "axp",
	Short: "Personal arXiv paper recommender",
	Long: `axp fetches new arXiv submissions in the categories you follow and ranks
them by similarity to the papers you liked, category priority, keyword
interests and recency.

Start by following a category (axp prefs add-category cs.LG), then run
axp daily. Mark papers with axp like and axp dislike to teach the ranking.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./axp.yaml or ~/.config/arxiv-explorer/axp.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("axp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-explorer"))
		}
	}

	viper.SetEnvPrefix("AXP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}

func setupLogging(cmd *cobra.Command) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
		return nil
	}
	lvl, err := log.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	log.SetLevel(lvl)
	return nil
}

// app bundles the components a command needs.
type app struct {
	cfg    types.AppConfig
	store  *store.Store
	client *arxiv.Client
	svc    *triage.Service
}

// withApp loads the configuration, opens the store and runs fn. Scoring
// overrides saved with `axp config set` are applied on top of file and
// environment values.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	settings, err := st.Settings(ctx)
	if err != nil {
		return err
	}
	if err := applySettings(&cfg, settings); err != nil {
		return err
	}
	if err := cfg.Scoring.Validate(); err != nil {
		return err
	}

	client := arxiv.New(cfg.Fetch)
	engine := recommend.NewEngine(cfg.Scoring)
	a := &app{
		cfg:    cfg,
		store:  st,
		client: client,
		svc:    triage.New(client, st, engine, cfg.Fetch),
	}
	return fn(ctx, a)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
