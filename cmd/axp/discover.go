// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-explorer/internal/display"
	"github.com/pdiddy/arxiv-explorer/internal/triage"
	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

const teaserWidth = 160

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Rank recent papers in the categories you follow",
	Long: `Daily fetches papers published in your preferred categories over the last
few days and ranks them against your interests.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		limit, _ := cmd.Flags().GetInt("limit")
		return withApp(cmd, func(ctx context.Context, a *app) error {
			papers, err := a.svc.Daily(ctx, days, limit)
			if err != nil {
				return explainNoCategories(err)
			}
			return printRanked(cmd, os.Stdout, papers)
		})
	},
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank the last week's papers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withApp(cmd, func(ctx context.Context, a *app) error {
			papers, err := a.svc.Top(ctx, limit)
			if err != nil {
				return explainNoCategories(err)
			}
			return printRanked(cmd, os.Stdout, papers)
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search arXiv and rank the results",
	Long: `Search runs a free-text arXiv search. Plain words must all match; a query
using arXiv field prefixes (ti:, au:, abs:, cat:) is sent as is. Results are
ranked by category, keyword and recency.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withApp(cmd, func(ctx context.Context, a *app) error {
			papers, err := a.svc.Search(ctx, strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			return printRanked(cmd, os.Stdout, papers)
		})
	},
}

func explainNoCategories(err error) error {
	if errors.Is(err, triage.ErrNoCategories) {
		return fmt.Errorf("%w: follow one with `axp prefs add-category <category>`", err)
	}
	return err
}

// printRanked writes ranked papers as a table, or as JSON with --json.
func printRanked(cmd *cobra.Command, w io.Writer, papers []types.ScoredPaper) error {
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}
	if len(papers) == 0 {
		display.Info(w, "No papers found.")
		return nil
	}
	display.PapersTable(w, papers)
	if abstracts, _ := cmd.Flags().GetBool("abstracts"); abstracts {
		fmt.Fprintln(w)
		for i, p := range papers {
			fmt.Fprintf(w, "%2d. %s\n    %s\n", i+1, p.ID, display.Teaser(p.Abstract, teaserWidth))
		}
	}
	return nil
}

func addRankFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("limit", "n", 0, "number of papers to show (default from config)")
	cmd.Flags().Bool("json", false, "output results as JSON")
	cmd.Flags().Bool("abstracts", false, "print the first sentence of each abstract")
}

func init() {
	dailyCmd.Flags().IntP("days", "d", 0, "look back this many days (default from config)")
	for _, c := range []*cobra.Command{dailyCmd, topCmd, searchCmd} {
		addRankFlags(c)
		rootCmd.AddCommand(c)
	}
}
