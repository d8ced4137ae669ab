package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"focusrune/internal/client"
	"focusrune/internal/config"
)

var (
	configPath string
	apiBase    string
	api        *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "fr",
	Short: "fr - FocusRune command line",
	Long: `fr drives a running FocusRune server over its HTTP API.

The server address comes from --api, then api_base in focusrune.yaml or
FOCUSRUNE_API_BASE, then http://localhost:8080/.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("api") {
			apiBase = cfg.APIBase
		}
		api = client.New(apiBase)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to focusrune.yaml")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "server base URL")

	rootCmd.AddCommand(listCmd, addCmd, editCmd, toggleCmd, rmCmd, moveCmd)
	rootCmd.AddCommand(undoCmd, redoCmd, statusCmd, statsCmd, exportCmd)
	rootCmd.AddCommand(selectCmd, journalCmd, categoryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fr:", err)
		os.Exit(1)
	}
}

func ctx(cmd *cobra.Command) context.Context {
	return cmd.Context()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func indexArgs(args []string) (int, int, error) {
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("from: %w", err)
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("to: %w", err)
	}
	return from, to, nil
}

func truncStr(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
