package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"musicbridge/core/snapshot"
	"musicbridge/model"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// run builds req and prints the JSON result on stdout.
func run(cmd *cobra.Command, b *snapshot.Builder, req model.Request) error {
	v, err := b.Build(cmd.Context(), req)
	if err != nil {
		return err
	}
	data, err := snapshot.Encode(v, prettyFlag)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// withOptionalID returns a request for t carrying args[0] as id, if any.
func withOptionalID(t model.ParamType, args []string) model.Request {
	req := model.Request{ParamType: t}
	if len(args) > 0 {
		req.ID = json.Number(args[0])
	}
	return req
}

var queryCmd = &cobra.Command{
	Use:   "query [request-json]",
	Short: "Run a raw dispatcher request",
	Long: `Run a request such as {"param_type":"playlistById","id":41554}. Without an
argument, or with "-", the request is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var body []byte
		if len(args) == 0 || args[0] == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			body = data
		} else {
			body = []byte(args[0])
		}

		req, err := model.ParseRequest(body)
		if err != nil {
			return err
		}
		return run(cmd, builder, req)
	},
}

var trackCmd = &cobra.Command{
	Use:   "track [id]",
	Short: "Snapshot a track, the current track by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return run(cmd, builder, model.Request{ParamType: model.ParamCurrentTrack})
		}
		return run(cmd, builder, withOptionalID(model.ParamTrackByID, args))
	},
}

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "Snapshot every track in the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var bar *progressbar.ProgressBar
		progress := func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetDescription("tracks"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}
			bar.Set(done)
		}

		b := builder.WithEngine(builder.Engine().WithProgress(progress))
		err := run(cmd, b, model.Request{ParamType: model.ParamAllTracks})
		if bar != nil {
			bar.Finish()
		}
		return err
	},
}

var artworksCmd = &cobra.Command{
	Use:   "artworks [track-id]",
	Short: "Snapshot the artworks of a track, the current track by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, builder, withOptionalID(model.ParamArtworks, args))
	},
}

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Snapshot the whole application state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, builder, model.Request{ParamType: model.ParamApplicationData})
	},
}

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Snapshot the player state and current track",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, builder, model.Request{ParamType: model.ParamPlayerState})
	},
}

func init() {
	rootCmd.AddCommand(queryCmd, trackCmd, tracksCmd, artworksCmd, appCmd, playerCmd)
}
