package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"focusrune/internal/api"
	"focusrune/internal/config"
	"focusrune/internal/db"
	"focusrune/pkg/journal"
	"focusrune/pkg/task"
)

func main() {
	var configPath string
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve the FocusRune API and web UI",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			serve(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to focusrune.yaml")
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func serve(configPath string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var store journal.Store = journal.NewMemStore()
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		defer pool.Close()
		store = journal.NewPgStore(pool)
		log.Printf("journal: using postgres")
	}
	if err := store.EnsureTable(ctx); err != nil {
		log.Fatalf("ensure journal table: %v", err)
	}

	tasks := task.NewStore(
		task.WithHistoryLimit(cfg.HistoryLimit),
		task.WithSubscriberBuffer(cfg.StreamBuffer),
	)
	bus := journal.NewBus(store)
	changes := tasks.Follow()
	go journal.Record(ctx, bus, changes)

	server := api.New(api.NewSession(tasks, bus), cfg.WasmDir)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server}

	go func() {
		<-ctx.Done()
		log.Printf("shutting down")
		tasks.Unsubscribe(changes)
		srv.Shutdown(context.Background())
	}()

	log.Printf("focusrune listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("listen: %v", err)
	}
}
