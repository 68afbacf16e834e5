package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pandey-solutions/saves/pkg/client"
)

func newConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <role-arn>",
		Short: "Connect an AWS account by its role ARN",
		Long: `Submits the role ARN created by the setup template. Verification takes a
couple of seconds and occasionally times out; retry if it does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if _, err := apiClient.Sessions().Acquire(ctx); err != nil {
				return fmt.Errorf("failed to acquire session: %w", err)
			}

			if !structuredOutput() {
				fmt.Fprintln(stdout, "Verifying role...")
			}

			result, err := apiClient.Connect(ctx, args[0])
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) && apiErr.Failure() != nil {
					if structuredOutput() {
						_ = printOutput(apiErr.Failure())
					} else {
						printFailure(apiErr.Failure())
					}
					return fmt.Errorf("connection failed")
				}
				return fmt.Errorf("failed to connect: %w", err)
			}

			if structuredOutput() {
				return printOutput(result)
			}
			fmt.Fprintf(stdout, "[+] Connected account %s (role stored: %s)\n", result.AccountID, result.PersistedTo)
			fmt.Fprintln(stdout, "Run 'saves dashboard' to see your savings.")
			return nil
		},
	}
}
