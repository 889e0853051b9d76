// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-explorer/internal/display"
	"github.com/pdiddy/arxiv-explorer/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the daily ranking on a schedule",
	Long: `Watch stays in the foreground and prints the daily ranking every time the
cron schedule fires (default every day at 08:00 local time). Stop it with
Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cronExpr, _ := cmd.Flags().GetString("cron")
		tz, _ := cmd.Flags().GetString("timezone")
		now, _ := cmd.Flags().GetBool("now")
		limit, _ := cmd.Flags().GetInt("limit")

		return withApp(cmd, func(ctx context.Context, a *app) error {
			cfg := a.cfg.Schedule
			if cronExpr != "" {
				cfg.Cron = cronExpr
			}
			if tz != "" {
				cfg.Timezone = tz
			}
			sched, err := scheduler.New(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			digest := func(ctx context.Context) {
				papers, err := a.svc.Daily(ctx, 0, limit)
				if err != nil {
					log.WithError(explainNoCategories(err)).Error("daily ranking failed")
					return
				}
				fmt.Fprintf(os.Stdout, "\n%s\n", time.Now().Format("Monday 2006-01-02 15:04"))
				if len(papers) == 0 {
					display.Info(os.Stdout, "No new papers.")
					return
				}
				display.PapersTable(os.Stdout, papers)
			}
			if err := sched.Schedule(ctx, digest); err != nil {
				return err
			}
			if now {
				digest(ctx)
			}
			display.Info(os.Stdout, "Next digest at %s", sched.Next().Format("2006-01-02 15:04 MST"))
			return sched.Run(ctx)
		})
	},
}

func init() {
	watchCmd.Flags().String("cron", "", "cron expression (default from config)")
	watchCmd.Flags().String("timezone", "", "IANA time zone for the schedule (default from config)")
	watchCmd.Flags().Bool("now", false, "print a digest immediately before waiting")
	watchCmd.Flags().IntP("limit", "n", 0, "number of papers per digest (default from config)")
	rootCmd.AddCommand(watchCmd)
}
