package cmd

import (
	"context"
	"fmt"
	"io"

	"musicbridge/core/feed"

	"github.com/spf13/cobra"
)

var redisFollow bool

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Check the Redis connection and show the last published event",
	Long: `Check the Redis connection and print the last now-playing event kept
under WATCH_CHANNEL:last. With --follow, keep printing every event published
on WATCH_CHANNEL until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.RedisEnabled() {
			return fmt.Errorf("REDIS_HOST is not set")
		}
		redis, err := feed.ConnectRedis(cfg)
		if err != nil {
			return err
		}
		defer redis.Close()

		if redisFollow {
			ctx, cancel := signalContext()
			defer cancel()
			return followRedis(ctx, redis, cmd.OutOrStdout())
		}

		last, err := redis.Last(cmd.Context())
		if err != nil {
			return err
		}
		if last == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "no event published yet")
			return nil
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(last))
		return err
	},
}

// followRedis prints one published payload per line until ctx is done.
func followRedis(ctx context.Context, redis *feed.RedisPublisher, out io.Writer) error {
	events, err := redis.Subscribe(ctx)
	if err != nil {
		return err
	}
	for payload := range events {
		if _, err := fmt.Fprintln(out, string(payload)); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(redisCmd)

	redisCmd.Flags().BoolVarP(&redisFollow, "follow", "f", false, "stream events as they are published")
}
