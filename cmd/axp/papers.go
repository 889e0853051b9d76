// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-explorer/internal/arxiv"
	"github.com/pdiddy/arxiv-explorer/internal/display"
	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

var likeCmd = &cobra.Command{
	Use:   "like <arxiv-id>...",
	Short: "Mark papers as interesting",
	Long: `Like marks papers as interesting. Liked papers form the content profile
that ranks future recommendations. The paper metadata is fetched and cached
so the profile can be built offline.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, _ := cmd.Flags().GetString("note")
		return withApp(cmd, func(ctx context.Context, a *app) error {
			for _, raw := range args {
				id := arxiv.NormalizeID(raw)
				title := cacheForReaction(ctx, a, id)
				if err := a.store.MarkInteresting(ctx, id); err != nil {
					return err
				}
				if note != "" {
					if _, err := a.store.AddNote(ctx, id, types.NoteGeneral, note); err != nil {
						return err
					}
				}
				display.Success(os.Stdout, "Liked %s %s", id, title)
			}
			return nil
		})
	},
}

var dislikeCmd = &cobra.Command{
	Use:   "dislike <arxiv-id>...",
	Short: "Mark papers as not interesting",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			for _, raw := range args {
				id := arxiv.NormalizeID(raw)
				if err := a.store.MarkNotInteresting(ctx, id); err != nil {
					return err
				}
				display.Success(os.Stdout, "Disliked %s", id)
			}
			return nil
		})
	},
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark <arxiv-id>...",
	Short: "Forget a like or dislike",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			for _, raw := range args {
				id := arxiv.NormalizeID(raw)
				ok, err := a.store.ClearInteraction(ctx, id)
				if err != nil {
					return err
				}
				if !ok {
					display.Warn(os.Stdout, "%s was not marked", id)
					continue
				}
				display.Success(os.Stdout, "Unmarked %s", id)
			}
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <arxiv-id>",
	Short: "Show a paper with your notes",
	Long: `Show prints a paper's metadata, abstract, your reaction and your notes.
With --explain it also prints how each signal contributes to its score.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		explain, _ := cmd.Flags().GetBool("explain")
		return withApp(cmd, func(ctx context.Context, a *app) error {
			p, err := a.svc.Paper(ctx, args[0])
			if err != nil {
				return err
			}
			reaction, err := a.store.Interaction(ctx, p.ID)
			if err != nil {
				return err
			}
			notes, err := a.store.Notes(ctx, p.ID, "")
			if err != nil {
				return err
			}
			display.PaperDetail(os.Stdout, p, reaction, notes)

			if !explain {
				return nil
			}
			b, err := a.svc.Explain(ctx, p)
			if err != nil {
				return err
			}
			os.Stdout.WriteString("\n")
			display.ScoreBreakdown(os.Stdout, a.svc.Engine().Config(), b)
			return nil
		})
	},
}

// cacheForReaction fetches and caches a paper before it is marked so the
// profile can use it later. Failure only costs the title in the output.
func cacheForReaction(ctx context.Context, a *app, id string) string {
	p, err := a.svc.Paper(ctx, id)
	if err != nil {
		log.WithError(err).WithField("id", id).Warn("could not fetch paper metadata")
		return ""
	}
	return "(" + strings.TrimSpace(display.Truncate(p.Title, 60)) + ")"
}

func init() {
	likeCmd.Flags().String("note", "", "attach a general note to the liked paper")
	showCmd.Flags().Bool("explain", false, "print the score breakdown")
	rootCmd.AddCommand(likeCmd, dislikeCmd, unmarkCmd, showCmd)
}
