// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-explorer/internal/arxiv"
	"github.com/pdiddy/arxiv-explorer/internal/display"
	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Attach notes to papers",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <arxiv-id> <text...>",
	Short: "Add a note to a paper",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		noteType, err := noteTypeFlag(cmd, types.NoteGeneral)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			id := arxiv.NormalizeID(args[0])
			n, err := a.store.AddNote(ctx, id, noteType, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			display.Success(os.Stdout, "Note %d added to %s", n.ID, id)
			return nil
		})
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list [arxiv-id]",
	Short: "List notes, optionally for one paper",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noteType, err := noteTypeFlag(cmd, "")
		if err != nil {
			return err
		}
		var id string
		if len(args) == 1 {
			id = arxiv.NormalizeID(args[0])
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			notes, err := a.store.Notes(ctx, id, noteType)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				display.Info(os.Stdout, "No notes.")
				return nil
			}
			display.NotesTable(os.Stdout, notes)
			return nil
		})
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <note-id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("note id must be a number, got %q", args[0])
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			ok, err := a.store.DeleteNote(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				display.Warn(os.Stdout, "no note %d", id)
				return nil
			}
			display.Success(os.Stdout, "Deleted note %d", id)
			return nil
		})
	},
}

func noteTypeFlag(cmd *cobra.Command, fallback types.NoteType) (types.NoteType, error) {
	v, _ := cmd.Flags().GetString("type")
	if v == "" {
		return fallback, nil
	}
	return types.ParseNoteType(v)
}

func init() {
	noteAddCmd.Flags().StringP("type", "t", "", "note type: general, question, insight, or todo (default general)")
	noteListCmd.Flags().StringP("type", "t", "", "only show notes of this type")
	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteDeleteCmd)
	rootCmd.AddCommand(noteCmd)
}
