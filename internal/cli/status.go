package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server health and session store readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			health, err := apiClient.Health(ctx)
			if err != nil {
				return fmt.Errorf("server unreachable: %w", err)
			}

			status := map[string]string{
				"server": viper.GetString("server_url"),
				"health": health.Status,
			}

			ready, err := apiClient.Ready(ctx)
			if err != nil {
				status["ready"] = "unavailable"
			} else {
				status["ready"] = ready.Status
				status["sessionStore"] = ready.SessionStore
			}

			if structuredOutput() {
				return printOutput(status)
			}

			t := NewTable("CHECK", "STATUS")
			t.AddRow("Server", status["server"])
			t.AddRow("Health", formatStatus(status["health"]))
			t.AddRow("Readiness", formatStatus(status["ready"]))
			if s := status["sessionStore"]; s != "" {
				t.AddRow("Session store", s)
			}
			t.Render()
			return nil
		},
	}
}
