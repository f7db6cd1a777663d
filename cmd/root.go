package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"musicbridge/config"
	"musicbridge/core/bridge"
	"musicbridge/core/snapshot"
	"musicbridge/logger"

	"github.com/spf13/cobra"
)

var (
	strategyFlag string
	prettyFlag   bool

	cfg     *config.Config
	builder *snapshot.Builder
)

var rootCmd = &cobra.Command{
	Use:   "musicbridge",
	Short: "musicbridge snapshots the Music app's library and player state as JSON.",
	Long: `musicbridge reads tracks, playlists, artworks and player state from the
Music app through the scripting bridge and prints them as JSON documents.
Unreadable attributes are left out instead of failing the whole snapshot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		logger.InitLogger(logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			OutputPath: cfg.LogFile,
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAge,
			Compress:   cfg.LogCompress,
		})

		name := cfg.Strategy
		if cmd.Flags().Changed("strategy") {
			name = strategyFlag
		}
		strategy, err := snapshot.ParseStrategy(name)
		if err != nil {
			return err
		}

		client := bridge.NewClient(cfg.OsascriptPath, cfg.MusicAppName, cfg.BridgeTimeout)
		engine := snapshot.New(
			snapshot.WithStrategy(strategy),
			snapshot.WithMaxDepth(cfg.ParentDepthLimit),
		)
		builder = snapshot.NewBuilder(client.Application(), engine)

		logger.Debug("bridge configured",
			logger.String("app", cfg.MusicAppName),
			logger.String("strategy", strategy.String()),
			logger.Duration("timeout", cfg.BridgeTimeout))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&strategyFlag, "strategy", "s", "explicit", "extraction strategy: explicit or passthrough")
	rootCmd.PersistentFlags().BoolVarP(&prettyFlag, "pretty", "p", false, "indent JSON output")
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
