package cmd

import (
	"fmt"
	"time"

	"musicbridge/core/auth"

	"github.com/spf13/cobra"
)

var (
	tokenClient string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.APISecret == "" {
			return fmt.Errorf("API_SECRET is not set, the server accepts unauthenticated requests")
		}
		token, err := auth.GenerateToken(cfg.APISecret, tokenClient, tokenTTL)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVarP(&tokenClient, "client", "c", "cli", "client name recorded in the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 30*24*time.Hour, "token lifetime, 0 for no expiry")

	tokenCmd.Example = `  # token for a stream deck plugin, valid one year
  musicbridge token -c stream-deck --ttl 8760h

  curl -H "Authorization: Bearer $(musicbridge token)" localhost:8080/api/player`
}
