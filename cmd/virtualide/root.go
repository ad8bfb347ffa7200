package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/virtualide/internal/cli"
	"github.com/aretw0/virtualide/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "virtualide",
	Short: "VirtualIDE replays tutorial scripts against a virtual IDE",
	Long: `VirtualIDE interprets scripted IDE actions (file explorer, editor, terminal,
mouse and narration) and produces deterministic snapshots of the whole IDE.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := config.New()
		if err := config.Bind(v, cmd.Flags(), map[string]string{
			"log.level":          "log-level",
			"store.backend":      "store",
			"store.dir":          "store-dir",
			"store.redis.url":    "redis-url",
			"store.redis.prefix": "redis-prefix",
			"store.redis.ttl":    "redis-ttl",
			"server.addr":        "addr",
			"server.metrics":     "metrics",
			"mcp.transport":      "transport",
			"mcp.port":           "port",
		}); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		logger = cli.NewLogger(cfg.Log.Level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default ./virtualide.yaml)")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error or off")
	flags.String("store", "file", "Store backend: memory, file or redis")
	flags.String("store-dir", ".virtualide", "Directory for the file store")
	flags.String("redis-url", "redis://localhost:6379/0", "Redis URL for the redis store")
	flags.String("redis-prefix", "virtualide:", "Key prefix for the redis store")
	flags.Duration("redis-ttl", 0, "Expiry of stored entries in redis (0 keeps them)")
}
