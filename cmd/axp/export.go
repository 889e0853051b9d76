// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-explorer/internal/display"
	"github.com/pdiddy/arxiv-explorer/internal/export"
	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export liked papers or reading lists",
}

var exportInterestingCmd = &cobra.Command{
	Use:   "interesting",
	Short: "Export liked papers",
	Long: `Interesting writes every liked paper, most recently liked first, as
Markdown, JSON, CSV, YAML, BibTeX or CSL-YAML.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, output, err := exportFlags(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			ids, err := a.store.InterestingPapers(ctx, 0)
			if err != nil {
				return err
			}
			byID, err := resolvePapers(ctx, a, ids)
			if err != nil {
				return err
			}
			papers := make([]types.Paper, len(ids))
			for i, id := range ids {
				papers[i] = byID[id]
			}
			return writeExport(output, len(papers), func(w io.Writer) error {
				return export.Papers(w, format, papers)
			})
		})
	},
}

var exportListCmd = &cobra.Command{
	Use:   "list <name>",
	Short: "Export a reading list",
	Long:  `List writes a reading list with reading statuses as Markdown, JSON or YAML.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, output, err := exportFlags(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			list, entries, err := listEntries(ctx, a, args[0])
			if err != nil {
				return err
			}
			return writeExport(output, len(entries), func(w io.Writer) error {
				return export.List(w, format, list, entries)
			})
		})
	},
}

func exportFlags(cmd *cobra.Command) (export.Format, string, error) {
	f, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	format, err := export.ParseFormat(f)
	if err != nil {
		return "", "", err
	}
	return format, output, nil
}

func writeExport(output string, n int, write func(io.Writer) error) error {
	w, err := openOutput(output)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if output != "" {
		display.Success(os.Stderr, "Exported %d paper(s) to %s", n, output)
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns the named file for writing, or stdout when path is
// empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}

func init() {
	for _, c := range []*cobra.Command{exportInterestingCmd, exportListCmd} {
		c.Flags().StringP("format", "f", "markdown", "output format: markdown, json, csv, yaml, bibtex, or csl")
		c.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	}
	exportCmd.AddCommand(exportInterestingCmd, exportListCmd)
	rootCmd.AddCommand(exportCmd)
}
