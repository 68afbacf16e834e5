package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pandey-solutions/saves/pkg/client"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Acquire and show the wizard session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if _, err := apiClient.Sessions().Acquire(ctx); err != nil {
				return fmt.Errorf("failed to acquire session: %w", err)
			}
			sess, err := apiClient.Sessions().Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to get session: %w", err)
			}

			if structuredOutput() {
				return printOutput(sess)
			}
			printSession(sess)
			return nil
		},
	}

	cmd.AddCommand(newSessionResetCmd())

	return cmd
}

func newSessionResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the stored session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newConfigStore().clear(); err != nil {
				return fmt.Errorf("failed to reset session: %w", err)
			}
			fmt.Fprintln(stdout, "Session cleared. The next command starts a new session.")
			return nil
		},
	}
}

func printSession(sess *client.Session) {
	t := NewTable("FIELD", "VALUE")
	t.AddRow("Session ID", sess.SessionID)
	t.AddRow("External ID", sess.ExternalID)
	t.AddRow("Source", formatStatus(sess.Source))
	role := sess.RoleArn
	if role == "" {
		role = "(not connected)"
	}
	t.AddRow("Role ARN", role)
	t.Render()
}
