package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pandey-solutions/saves/internal/pkg/tween"
	"github.com/pandey-solutions/saves/pkg/client"
)

const counterDuration = 1500 * time.Millisecond

func newDashboardCmd() *cobra.Command {
	var (
		seed     string
		skipScan bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard [role-arn]",
		Short: "Show the savings dashboard for the connected account",
		Long: `Shows the dashboard for the given role ARN, the --seed value, or the role
connected to this session. On a terminal the account analysis is replayed
first and the savings total counts up.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			opts := &client.DashboardOptions{Seed: seed}
			if len(args) == 1 {
				opts.RoleArn = args[0]
			}

			d, err := apiClient.Dashboards().Get(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to get dashboard: %w", err)
			}

			if structuredOutput() {
				return printOutput(d)
			}

			if interactive() && !skipScan {
				scan, err := apiClient.Dashboards().Scan(ctx, opts)
				if err != nil {
					return fmt.Errorf("failed to get scan steps: %w", err)
				}
				if err := replayScan(ctx, scan.Steps, 1); err != nil {
					return err
				}
			}

			return renderDashboard(ctx, d, interactive())
		},
	}

	cmd.Flags().StringVar(&seed, "seed", "", "explicit dataset seed")
	cmd.Flags().BoolVar(&skipScan, "skip-scan", false, "do not replay the account analysis")

	return cmd
}

// replayScan prints each analysis step and waits its duration divided by speed
func replayScan(ctx context.Context, steps []client.ScanStep, speed float64) error {
	if speed <= 0 {
		speed = 1
	}
	for _, s := range steps {
		fmt.Fprintf(stdout, "> %s\n", s.Message)

		wait := time.Duration(float64(s.DurationMs) * float64(time.Millisecond) / speed)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	fmt.Fprintln(stdout)
	return nil
}

func renderDashboard(ctx context.Context, d *client.Dashboard, animate bool) error {
	label := "Potential monthly savings: "
	if animate {
		err := tween.Run(ctx, 0, float64(d.PotentialSavings), counterDuration, 16*time.Millisecond, func(v float64) {
			fmt.Fprintf(stdout, "\r%s%s", label, formatMoney(int(v)))
		})
		fmt.Fprintln(stdout)
		if err != nil {
			return err
		}
	} else {
		fmt.Fprintf(stdout, "%s%s\n", label, formatMoney(d.PotentialSavings))
	}
	fmt.Fprintln(stdout)

	summary := NewTable("METRIC", "VALUE")
	summary.AddRow("Account", d.Seed)
	summary.AddRow("Monthly spend", formatMoney(d.TotalSpend))
	summary.AddRow("Wasted spend", fmt.Sprintf("%s (%.0f%%)", formatMoney(d.WastedSpend), d.WastePercentage))
	summary.AddRow("Optimization score", strconv.Itoa(d.Score)+"/100")
	summary.Render()
	fmt.Fprintln(stdout)

	history := NewTable("MONTH", "ACTUAL", "OPTIMIZED", "WASTE")
	for _, m := range d.History {
		history.AddRow(m.Month, formatMoney(m.Actual), formatMoney(m.Optimized), formatMoney(m.Waste))
	}
	history.Render()
	fmt.Fprintln(stdout)

	recs := NewTable("SERVICE", "TYPE", "RESOURCE", "SAVINGS/MO", "COMPLEXITY")
	for _, r := range d.Recommendations {
		recs.AddRow(r.Service, r.Type, r.Resource, formatMoney(r.Savings), r.Complexity)
	}
	recs.Render()

	return nil
}
