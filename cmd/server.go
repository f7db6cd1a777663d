package cmd

import (
	"musicbridge/core/feed"
	"musicbridge/logger"
	"musicbridge/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve snapshots over HTTP and the player feed over websocket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		hub := feed.NewHub()
		go hub.Run()
		defer hub.Stop()

		sinks := []feed.Sink{hub}
		var redis *feed.RedisPublisher
		if cfg.RedisEnabled() {
			var err error
			redis, err = feed.ConnectRedis(cfg)
			if err != nil {
				return err
			}
			defer redis.Close()
			sinks = append(sinks, redis)
		}

		watcher := feed.NewWatcher(feed.FromBuilder(builder), cfg.WatchInterval, sinks...)
		watcher.LibraryPath = cfg.LibraryPath
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("player watcher failed", logger.ErrorField(err))
			}
		}()

		return server.New(cfg, builder, hub, redis).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
