package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pandey-solutions/saves/internal/domain/connection"
	"github.com/pandey-solutions/saves/pkg/client"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <role-arn>",
		Short: "Check a role ARN without connecting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func runValidate(roleArn string) error {
	result := client.Validation{Valid: true, AccountID: connection.AccountID(roleArn)}
	if f := connection.ValidateRoleArn(roleArn); f != nil {
		result = client.Validation{Failure: &client.Failure{
			Type:    string(f.Type),
			Title:   f.Title,
			Message: f.Message,
		}}
	}

	if structuredOutput() {
		if err := printOutput(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Fprintf(stdout, "[+] Valid role ARN for account %s\n", result.AccountID)
	} else {
		printFailure(result.Failure)
	}

	if !result.Valid {
		return fmt.Errorf("invalid role ARN")
	}
	return nil
}
