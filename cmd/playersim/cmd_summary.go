package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/playersim/internal/persistence"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize the events stored by 'events --db'",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			if dbPath == "" {
				return errors.New("--db is required (or set PLAYERSIM_DB)")
			}
			db, err := persistence.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			days, err := db.DailySummary()
			if err != nil {
				return fmt.Errorf("daily summary: %w", err)
			}
			if len(days) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No events in %s\n", dbPath)
				return nil
			}
			archetypes, err := db.Archetypes()
			if err != nil {
				return fmt.Errorf("archetype summary: %w", err)
			}

			out := cmd.OutOrStdout()
			if seed, err := db.GetMeta("seed"); err == nil {
				start, _ := db.GetMeta("start")
				fmt.Fprintf(out, "Run seed %s, starting %s\n\n", seed, start)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "date\tacquired\tactive\tsessions\tpurchases\trevenue\tstages\t")
			var total persistence.DaySummary
			for _, d := range days {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", d.Date,
					humanize.Comma(int64(d.Acquired)), humanize.Comma(int64(d.Active)),
					humanize.Comma(int64(d.Sessions)), humanize.Comma(int64(d.Purchases)),
					humanize.Comma(int64(d.Revenue)), humanize.Comma(int64(d.Stages)))
				total.Acquired += d.Acquired
				total.Sessions += d.Sessions
				total.Purchases += d.Purchases
				total.Revenue += d.Revenue
				total.Stages += d.Stages
			}
			fmt.Fprintf(w, "total\t%s\t\t%s\t%s\t%s\t%s\t\n",
				humanize.Comma(int64(total.Acquired)), humanize.Comma(int64(total.Sessions)),
				humanize.Comma(int64(total.Purchases)), humanize.Comma(int64(total.Revenue)),
				humanize.Comma(int64(total.Stages)))
			if err := w.Flush(); err != nil {
				return err
			}

			if len(archetypes) > 0 {
				fmt.Fprintln(out)
				w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
				fmt.Fprintln(w, "archetype\tplayers\tsessions\tpurchases\trevenue\t")
				for _, a := range archetypes {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", a.Archetype,
						humanize.Comma(int64(a.Players)), humanize.Comma(int64(a.Sessions)),
						humanize.Comma(int64(a.Purchases)), humanize.Comma(int64(a.Revenue)))
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			recent, _ := cmd.Flags().GetInt("recent")
			if recent <= 0 {
				return nil
			}
			events, err := db.RecentEvents(recent)
			if err != nil {
				return fmt.Errorf("recent events: %w", err)
			}
			fmt.Fprintf(out, "\nLast %d events\n", len(events))
			w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "event_datetime\tevent_type\tplayer_type\tsession_id\tamount\tstage_score")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n", e.Time.Format(persistence.TimeLayout),
					e.Type, e.PlayerType, e.SessionID, e.Amount, e.Score)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("db", envOrDefault("PLAYERSIM_DB", ""), "SQLite database written by 'events --db'")
	cmd.Flags().Int("recent", 0, "Also print the N most recent events, newest first")
	return cmd
}
