// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-explorer/internal/arxiv"
	"github.com/pdiddy/arxiv-explorer/internal/display"
	"github.com/pdiddy/arxiv-explorer/internal/export"
	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage reading lists",
	Long: `List manages named reading lists. Papers on a list keep their order and
a reading status: unread, reading or completed.`,
}

var listCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a reading list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, _ := cmd.Flags().GetString("description")
		return withApp(cmd, func(ctx context.Context, a *app) error {
			l, err := a.store.CreateList(ctx, args[0], desc)
			if err != nil {
				return err
			}
			display.Success(os.Stdout, "Created list %q", l.Name)
			return nil
		})
	},
}

var listDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a reading list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			ok, err := a.store.DeleteList(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				display.Warn(os.Stdout, "no list %q", args[0])
				return nil
			}
			display.Success(os.Stdout, "Deleted list %q", args[0])
			return nil
		})
	},
}

var listAddCmd = &cobra.Command{
	Use:   "add <name> <arxiv-id>...",
	Short: "Append papers to a reading list",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			name := args[0]
			for _, raw := range args[1:] {
				id := arxiv.NormalizeID(raw)
				added, err := a.store.AddToList(ctx, name, id)
				if err != nil {
					return err
				}
				if !added {
					display.Warn(os.Stdout, "%s is already on %q", id, name)
					continue
				}
				cacheForReaction(ctx, a, id)
				display.Success(os.Stdout, "Added %s to %q", id, name)
			}
			return nil
		})
	},
}

var listRemoveCmd = &cobra.Command{
	Use:   "remove <name> <arxiv-id>",
	Short: "Remove a paper from a reading list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			id := arxiv.NormalizeID(args[1])
			ok, err := a.store.RemoveFromList(ctx, args[0], id)
			if err != nil {
				return err
			}
			if !ok {
				display.Warn(os.Stdout, "%s is not on %q", id, args[0])
				return nil
			}
			display.Success(os.Stdout, "Removed %s from %q", id, args[0])
			return nil
		})
	},
}

var listStatusCmd = &cobra.Command{
	Use:   "status <name> <arxiv-id> <unread|reading|completed>",
	Short: "Set the reading status of a paper on a list",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := types.ParseReadingStatus(args[2])
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			id := arxiv.NormalizeID(args[1])
			if err := a.store.SetStatus(ctx, args[0], id, status); err != nil {
				return err
			}
			display.Success(os.Stdout, "%s %s is now %s", export.StatusIcon(status), id, status)
			return nil
		})
	},
}

var listShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the papers on a reading list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			list, entries, err := listEntries(ctx, a, args[0])
			if err != nil {
				return err
			}
			display.Info(os.Stdout, "%s: %s", list.Name, list.Description)
			if len(entries) == 0 {
				display.Info(os.Stdout, "The list is empty.")
				return nil
			}
			display.ListEntriesTable(os.Stdout, entries)
			return nil
		})
	},
}

var listLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List reading lists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			lists, err := a.store.Lists(ctx)
			if err != nil {
				return err
			}
			if len(lists) == 0 {
				display.Info(os.Stdout, "No reading lists. Create one with `axp list create <name>`.")
				return nil
			}
			display.ListsTable(os.Stdout, lists)
			return nil
		})
	},
}

// listEntries resolves a reading list's papers from the cache, fetching
// any that are missing in one request.
func listEntries(ctx context.Context, a *app, name string) (types.ReadingList, []export.ListEntry, error) {
	list, err := a.store.List(ctx, name)
	if err != nil {
		return types.ReadingList{}, nil, err
	}
	rows, err := a.store.ListPapers(ctx, name)
	if err != nil {
		return types.ReadingList{}, nil, err
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.PaperID
	}
	papers, err := resolvePapers(ctx, a, ids)
	if err != nil {
		return types.ReadingList{}, nil, err
	}

	entries := make([]export.ListEntry, len(rows))
	for i, r := range rows {
		entries[i] = export.ListEntry{Paper: papers[r.PaperID], Status: r.Status}
	}
	return list, entries, nil
}

// resolvePapers returns metadata for ids, keyed by ID. Papers that are
// neither cached nor fetchable come back with only their ID set.
func resolvePapers(ctx context.Context, a *app, ids []string) (map[string]types.Paper, error) {
	papers, err := a.store.CachedPapers(ctx, ids)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, id := range ids {
		if _, ok := papers[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		fetched, err := a.client.FetchByIDs(ctx, missing)
		if err != nil {
			log.WithError(err).WithField("missing", len(missing)).Warn("could not fetch paper metadata")
		} else {
			if err := a.store.SavePapers(ctx, fetched); err != nil {
				log.WithError(err).Warn("caching papers failed")
			}
			for _, p := range fetched {
				papers[p.ID] = p
			}
		}
	}
	for _, id := range ids {
		if _, ok := papers[id]; !ok {
			papers[id] = types.Paper{ID: id}
		}
	}
	return papers, nil
}

func init() {
	listCreateCmd.Flags().String("description", "", "list description")
	listCmd.AddCommand(
		listCreateCmd,
		listDeleteCmd,
		listAddCmd,
		listRemoveCmd,
		listStatusCmd,
		listShowCmd,
		listLsCmd,
	)
	rootCmd.AddCommand(listCmd)
}
