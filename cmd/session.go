package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/sprintlens/internal/contract"
)

// sessionSetup only reads the config file; session commands need no stores.
func sessionSetup(_ *cobra.Command, _ []string) error {
	return loadConfigFile()
}

// loginCmd stores tracker credentials in the session file.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save tracker credentials to the session file.",
	Long: `Validate and store the instance URL, account email and API token.

The session file is written with owner-only permissions. Prefer passing the
token through SPRINTLENS_API_TOKEN so it stays out of shell history.

Examples:
  SPRINTLENS_API_TOKEN=... sprintlens login --url https://example.atlassian.net --email me@example.com`,
	PreRunE: sessionSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		session := &contract.Session{
			InstanceURL: strings.TrimRight(strings.TrimSpace(viper.GetString("url")), "/"),
			Email:       strings.TrimSpace(viper.GetString("email")),
			APIToken:    strings.TrimSpace(viper.GetString("api-token")),
		}
		path := sessionPath()
		if err := contract.SaveSession(path, session); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s at %s (session saved to %s)\n", session.Email, session.InstanceURL, path)
		return nil
	},
}

// logoutCmd removes the session file.
var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Remove the saved session.",
	PreRunE: sessionSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := contract.ClearSession(sessionPath()); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

// whoamiCmd prints the saved session with the token masked.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the saved session.",
	PreRunE: sessionSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		session, err := contract.LoadSession(sessionPath())
		if err != nil {
			return err
		}
		if session == nil {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			return nil
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Email:    %s\n", session.Email)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Instance: %s\n", session.InstanceURL)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Token:    %s\n", session.MaskedToken())
		return nil
	},
}
