package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/pandey-solutions/saves/internal/config"
	"github.com/pandey-solutions/saves/internal/domain/connection"
	"github.com/pandey-solutions/saves/internal/providers"
	"github.com/pandey-solutions/saves/pkg/client"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		roleArn    string
		externalID string
		region     string
		months     int
		instances  bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Read real cost history through the connected role",
		Long: `Assumes the customer role with your own AWS credentials and reads monthly
unblended cost from Cost Explorer. This is the production analysis path; the
dashboard itself shows generated demo data.

With --instances the command lists EC2 instances in every enabled region
instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f := connection.ValidateRoleArn(roleArn); f != nil {
				printFailure(&client.Failure{Type: string(f.Type), Title: f.Title, Message: f.Message})
				return fmt.Errorf("invalid role ARN")
			}

			if externalID == "" {
				externalID, _ = newConfigStore().Get(client.KeyExternalID)
			}
			if externalID == "" {
				return fmt.Errorf("no external id: run 'saves session' first or pass --external-id")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			analyzer, err := providers.NewAWSAnalyzer(ctx, cfg.AWS, providers.AWSCredentials{Region: region})
			if err != nil {
				return err
			}

			if instances {
				inv, err := analyzer.Instances(ctx, roleArn, externalID)
				if err != nil {
					return err
				}
				return renderInventory(inv)
			}

			costs, err := analyzer.MonthlyCosts(ctx, roleArn, externalID, months)
			if err != nil {
				return err
			}

			if structuredOutput() {
				return printOutput(costs)
			}

			t := NewTable("MONTH", "START", "AMOUNT")
			var total float64
			for _, c := range costs {
				total += c.Amount
				t.AddRow(c.Month, c.Start.Format("2006-01-02"), fmt.Sprintf("%.2f %s", c.Amount, c.Unit))
			}
			t.Render()
			fmt.Fprintf(stdout, "\nAccount %s: %.2f over %d months\n", connection.AccountID(roleArn), total, len(costs))
			return nil
		},
	}

	cmd.Flags().StringVar(&roleArn, "role-arn", "", "customer role ARN (required)")
	cmd.Flags().StringVar(&externalID, "external-id", "", "external id (default: stored session)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region for STS (default: AWS_REGION)")
	cmd.Flags().IntVar(&months, "months", 6, "number of whole months to read")
	cmd.Flags().BoolVar(&instances, "instances", false, "list EC2 instances instead of cost history")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall timeout")
	_ = cmd.MarkFlagRequired("role-arn")

	return cmd
}

func renderInventory(inv *providers.Inventory) error {
	if structuredOutput() {
		return printOutput(inv)
	}

	t := NewTable("REGION", "ID", "NAME", "TYPE", "STATE")
	for _, i := range inv.Instances {
		t.AddRow(i.Region, i.ID, truncate(i.Name, 32), i.Type, i.State)
	}
	t.Render()
	fmt.Fprintf(stdout, "\n%d instances across %d regions\n", len(inv.Instances), len(inv.Regions))

	regions := make([]string, 0, len(inv.Failed))
	for r := range inv.Failed {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	for _, r := range regions {
		fmt.Fprintf(stdout, "  skipped %s: %s\n", r, inv.Failed[r])
	}
	return nil
}
