package cmd

import (
	"musicbridge/model"

	"github.com/spf13/cobra"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist <id>",
	Short: "Snapshot a playlist with its parent chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, builder, withOptionalID(model.ParamPlaylistByID, args))
	},
}

var playlistTracksCmd = &cobra.Command{
	Use:   "tracks <id>",
	Short: "Snapshot every track of a playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, builder, withOptionalID(model.ParamPlaylistTracks, args))
	},
}

var playlistSearchCmd = &cobra.Command{
	Use:   "search <id> <query>",
	Short: "Search a playlist with the player's own search",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := withOptionalID(model.ParamSearchInPlaylist, args)
		req.Query = args[1]
		return run(cmd, builder, req)
	},
	Example: `  musicbridge playlist search 41554 "Abbey Road"`,
}

func init() {
	playlistCmd.AddCommand(playlistTracksCmd, playlistSearchCmd)
	rootCmd.AddCommand(playlistCmd)
}
