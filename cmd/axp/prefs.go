// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-explorer/internal/display"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage preferred categories and keyword interests",
	Long: `Prefs manages the categories you follow and the keywords that boost a
paper's score. Higher category priorities rank papers in that category
higher; keyword weights add up for every keyword a paper mentions.`,
}

var prefsAddCategoryCmd = &cobra.Command{
	Use:   "add-category <category>",
	Short: "Follow an arXiv category (e.g. cs.LG, hep-th)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		priority, _ := cmd.Flags().GetInt("priority")
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.store.AddCategory(ctx, args[0], priority); err != nil {
				return err
			}
			display.Success(os.Stdout, "Following %s (priority %d)", args[0], priority)
			return nil
		})
	},
}

var prefsRemoveCategoryCmd = &cobra.Command{
	Use:   "remove-category <category>",
	Short: "Stop following an arXiv category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			ok, err := a.store.RemoveCategory(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				display.Warn(os.Stdout, "%s was not followed", args[0])
				return nil
			}
			display.Success(os.Stdout, "Stopped following %s", args[0])
			return nil
		})
	},
}

var prefsAddKeywordCmd = &cobra.Command{
	Use:   "add-keyword <keyword>",
	Short: "Boost papers mentioning a keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, _ := cmd.Flags().GetFloat64("weight")
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.store.AddKeyword(ctx, args[0], weight); err != nil {
				return err
			}
			display.Success(os.Stdout, "Keyword %q (weight %g)", args[0], weight)
			return nil
		})
	},
}

var prefsRemoveKeywordCmd = &cobra.Command{
	Use:   "remove-keyword <keyword>",
	Short: "Remove a keyword interest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			ok, err := a.store.RemoveKeyword(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				display.Warn(os.Stdout, "no keyword %q", args[0])
				return nil
			}
			display.Success(os.Stdout, "Removed keyword %q", args[0])
			return nil
		})
	},
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List categories and keywords",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			snap, err := a.store.Preferences(ctx)
			if err != nil {
				return err
			}
			display.PreferencesTable(os.Stdout, snap.Categories, snap.Keywords)
			return nil
		})
	},
}

var prefsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write categories and keywords as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return withApp(cmd, func(ctx context.Context, a *app) error {
			w, err := openOutput(output)
			if err != nil {
				return err
			}
			if err := a.store.ExportPreferences(ctx, w); err != nil {
				w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			if output != "" {
				display.Success(os.Stderr, "Preferences written to %s", output)
			}
			return nil
		})
	},
}

var prefsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge categories and keywords from a YAML file",
	Long: `Import adds or updates every category and keyword listed in the file.
Existing preferences that the file does not mention are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		return withApp(cmd, func(ctx context.Context, a *app) error {
			snap, err := a.store.ImportPreferences(ctx, f)
			if err != nil {
				return err
			}
			display.Success(os.Stdout, "Imported %d categories and %d keywords", len(snap.Categories), len(snap.Keywords))
			return nil
		})
	},
}

func init() {
	prefsAddCategoryCmd.Flags().IntP("priority", "p", 1, "category priority (1 or higher)")
	prefsAddKeywordCmd.Flags().Float64P("weight", "w", 1.0, "keyword weight")
	prefsExportCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")

	prefsCmd.AddCommand(
		prefsAddCategoryCmd,
		prefsRemoveCategoryCmd,
		prefsAddKeywordCmd,
		prefsRemoveKeywordCmd,
		prefsShowCmd,
		prefsExportCmd,
		prefsImportCmd,
	)
	rootCmd.AddCommand(prefsCmd)
}
