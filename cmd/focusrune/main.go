package main

import (
	"context"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"focusrune/internal/config"
	"focusrune/internal/db"
	"focusrune/pkg/category"
	"focusrune/pkg/journal"
	"focusrune/pkg/task"
)

func main() {
	var configPath string
	cmd := &cobra.Command{
		Use:   "focusrune",
		Short: "FocusRune desktop task manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return start(configPath)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to focusrune.yaml")
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func start(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	var store journal.Store = journal.NewMemStore()
	closeDB := func() {}
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			cancel()
			return err
		}
		closeDB = pool.Close
		store = journal.NewPgStore(pool)
		if err := store.EnsureTable(ctx); err != nil {
			cancel()
			pool.Close()
			return err
		}
	}

	tasks := task.NewStore(
		task.WithHistoryLimit(cfg.HistoryLimit),
		task.WithSubscriberBuffer(cfg.StreamBuffer),
	)
	bus := journal.NewBus(store)
	go journal.Record(ctx, bus, tasks.Follow())

	theme = newTheme(cfg.DarkMode)
	ui := newUI(tasks, category.NewMemStore(), bus, cfg.DarkMode)

	go func() {
		w := new(app.Window)
		w.Option(app.Title("FocusRune"))
		w.Option(app.Size(unit.Dp(1200), unit.Dp(800)))
		err := ui.run(ctx, w)
		cancel()
		closeDB()
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}
