package cmd

import (
	"context"
	"fmt"

	"musicbridge/core/feed"
	"musicbridge/logger"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print player changes, and publish them to Redis when configured",
	Long: `Poll the player every WATCH_INTERVAL and print one line per change. With
REDIS_HOST set, every event is also published on WATCH_CHANNEL and the last
now-playing event is kept under WATCH_CHANNEL:last. With LIBRARY_PATH set,
file changes in the library folder are reported too.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		out := cmd.OutOrStdout()
		sinks := []feed.Sink{feed.SinkFunc(func(_ context.Context, ev feed.Event) error {
			switch ev.Type {
			case feed.EventNowPlaying:
				_, err := fmt.Fprintln(out, ev.NowPlaying.String())
				return err
			case feed.EventLibrary:
				_, err := fmt.Fprintf(out, "library %s %s\n", ev.Op, ev.Path)
				return err
			default:
				_, err := fmt.Fprintf(out, "error %s\n", ev.Error)
				return err
			}
		})}

		if cfg.RedisEnabled() {
			redis, err := feed.ConnectRedis(cfg)
			if err != nil {
				return err
			}
			defer redis.Close()
			sinks = append(sinks, redis)
		}

		watcher := feed.NewWatcher(feed.FromBuilder(builder), cfg.WatchInterval, sinks...)
		watcher.LibraryPath = cfg.LibraryPath
		return watcher.Run(ctx)
	},
}

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Print a one-line summary of what is playing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var pollErr string
		sink := feed.SinkFunc(func(_ context.Context, ev feed.Event) error {
			if ev.Type == feed.EventError {
				pollErr = ev.Error
			}
			return nil
		})

		watcher := feed.NewWatcher(feed.FromBuilder(builder), cfg.WatchInterval, sink)
		watcher.Poll(cmd.Context())
		np, ok := watcher.Last()
		if !ok {
			return fmt.Errorf("player state unavailable: %s", pollErr)
		}
		logger.Debug("now playing", logger.Any("now_playing", np))
		_, err := fmt.Fprintln(cmd.OutOrStdout(), np.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd, nowCmd)
}
