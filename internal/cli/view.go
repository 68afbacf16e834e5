package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pandey-solutions/saves/pkg/client"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [start|demo|home|back|dismiss|method <cloudformation|cli>]",
		Short: "Show or change the wizard view state",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var (
				st  *client.ViewState
				err error
			)
			switch {
			case len(args) == 0:
				st, err = apiClient.Views().Get(ctx)
			case args[0] == client.ActionMethod:
				if len(args) != 2 {
					return fmt.Errorf("usage: saves view method <cloudformation|cli>")
				}
				st, err = apiClient.Views().SelectMethod(ctx, args[1])
			default:
				st, err = apiClient.Views().Dispatch(ctx, args[0])
			}
			if err != nil {
				return fmt.Errorf("view action failed: %w", err)
			}

			if structuredOutput() {
				return printOutput(st)
			}
			printViewState(st)
			return nil
		},
	}
}

func printViewState(st *client.ViewState) {
	t := NewTable("FIELD", "VALUE")
	t.AddRow("View", st.View)
	if st.Step != "" {
		t.AddRow("Step", st.Step)
	}
	t.AddRow("Method", st.Method)
	if st.RoleArn != "" {
		t.AddRow("Role ARN", st.RoleArn)
	}
	t.AddRow("Connected", fmt.Sprintf("%v", st.Connected))
	t.Render()

	if st.Feedback != nil {
		fmt.Fprintln(stdout)
		printFailure(st.Feedback)
	}
}
