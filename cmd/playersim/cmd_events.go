package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/playersim/internal/engine"
	"github.com/talgya/playersim/internal/export"
	"github.com/talgya/playersim/internal/persistence"
	"github.com/talgya/playersim/internal/random"
)

const defaultEventsFilename = "events"

func newEventsCmd() *cobra.Command {
	var plan planFlags
	cmd := &cobra.Command{
		Use:   "events [filename]",
		Short: "Generate game events into a csv file",
		Long: fmt.Sprintf(`Generate game events of types (%s) into a csv file
(default %s.csv), optionally mirrored into a SQLite database.`,
			eventTypeNames(), defaultEventsFilename),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := defaultEventsFilename
			if len(args) == 1 {
				filename = args[0]
			}
			dateStr, _ := cmd.Flags().GetString("date")
			seed, _ := cmd.Flags().GetInt64("seed")
			presetPath, _ := cmd.Flags().GetString("config")
			dbPath, _ := cmd.Flags().GetString("db")
			overwrite, _ := cmd.Flags().GetBool("overwrite")

			start, err := time.Parse(time.DateOnly, dateStr)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", dateStr, err)
			}

			rng := random.New(seed)
			game, err := buildPlan(cmd, &plan, presetPath, rng)
			if err != nil {
				return err
			}
			slog.Info("acquisition plan built",
				"seed", seed,
				"start", start.Format(time.DateOnly),
				"days", game.Days,
				"players", game.TotalPlayers(),
			)

			// The store is checked first so a refused run leaves no csv behind.
			var db *persistence.DB
			if dbPath != "" {
				db, err = openRunDB(dbPath, overwrite)
				if err != nil {
					return err
				}
				defer db.Close()
			}

			csvOut, path, err := export.Create(filename, overwrite)
			if err != nil {
				return err
			}
			defer csvOut.Close()
			sinks := engine.MultiSink{csvOut}
			if db != nil {
				sinks = append(sinks, db)
			}

			sim := engine.NewSimulation(game, rng, start, sinks)
			eng := sim.NewEngine()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			onDay := eng.OnDay
			eng.OnDay = func(day int) error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return onDay(day)
			}

			runErr := eng.Run()
			if runErr != nil && !errors.Is(runErr, context.Canceled) {
				return runErr
			}
			if runErr != nil {
				slog.Warn("interrupted, keeping the days generated so far", "days", sim.LastDay+1)
			}
			if err := sim.Finish(); err != nil {
				return err
			}
			if err := csvOut.Close(); err != nil {
				return fmt.Errorf("close %s: %w", path, err)
			}
			if db != nil {
				if err := saveRunMeta(db, seed, start, sim); err != nil {
					return fmt.Errorf("save run metadata: %w", err)
				}
			}

			size := ""
			if fi, err := os.Stat(path); err == nil {
				size = " (" + humanize.Bytes(uint64(fi.Size())) + ")"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s events for %s players over %d days to %s%s\n",
				humanize.Comma(int64(csvOut.Rows())), humanize.Comma(int64(sim.Stats.TotalPlayers)),
				sim.LastDay+1, path, size)
			fmt.Fprintf(cmd.OutOrStdout(), "Sessions %s, purchases %s, revenue %s, stage plays %s\n",
				humanize.Comma(int64(sim.Stats.Sessions)), humanize.Comma(int64(sim.Stats.Purchases)),
				humanize.Comma(int64(sim.Stats.Revenue)), humanize.Comma(int64(sim.Stats.Stages)))
			return nil
		},
	}

	addPlanFlags(cmd, &plan)
	cmd.Flags().String("date", time.Now().Format(time.DateOnly), "Acquisition start date (YYYY-MM-DD)")
	cmd.Flags().Int64("seed", int64(envIntOrDefault("PLAYERSIM_SEED", 0)), "Random seed")
	cmd.Flags().String("config", "", "YAML preset file (see 'playersim presets')")
	cmd.Flags().String("db", envOrDefault("PLAYERSIM_DB", ""), "Also store events in this SQLite database")
	cmd.Flags().Bool("overwrite", false, "Replace an existing csv file and database contents")
	return cmd
}

// openRunDB opens the store and refuses to mix runs unless overwriting.
func openRunDB(path string, overwrite bool) (*persistence.DB, error) {
	db, err := persistence.Open(path)
	if err != nil {
		return nil, err
	}
	if overwrite {
		err = db.Reset()
	} else {
		err = db.EnsureEmpty()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("database opened", "path", path)
	return db, nil
}

func saveRunMeta(db *persistence.DB, seed int64, start time.Time, sim *engine.Simulation) error {
	meta := map[string]string{
		"version": version,
		"seed":    strconv.FormatInt(seed, 10),
		"start":   start.Format(time.DateOnly),
		"days":    strconv.Itoa(sim.LastDay + 1),
		"players": strconv.Itoa(sim.Stats.TotalPlayers),
		"draws":   strconv.FormatInt(sim.Stats.Draws, 10),
	}
	for k, v := range meta {
		if err := db.SaveMeta(k, v); err != nil {
			return err
		}
	}
	return nil
}

func eventTypeNames() string {
	s := ""
	for i, t := range engine.EventTypes {
		if i > 0 {
			s += ","
		}
		s += string(t)
	}
	return s
}
