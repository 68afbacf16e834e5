package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Show the live demo dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := apiClient.Dashboards().Demo(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get demo data: %w", err)
			}

			if structuredOutput() {
				return printOutput(sc)
			}

			fmt.Fprintf(stdout, "Total potential savings: %s/mo   Optimization score: %d/100\n\n",
				formatMoney(sc.TotalPotentialSavings), sc.OptimizationScore)

			savings := NewTable("MONTH", "ACTUAL", "OPTIMIZED")
			for _, p := range sc.Savings {
				savings.AddRow(p.Month, formatMoney(p.Actual), formatMoney(p.Optimized))
			}
			savings.Render()
			fmt.Fprintln(stdout)

			recs := NewTable("SERVICE", "TYPE", "RESOURCE", "SAVINGS/MO", "RISK", "STATUS")
			for _, r := range sc.Recommendations {
				recs.AddRow(r.Service, r.Type, truncate(r.Resource, 40), formatMoney(r.Savings), r.Risk, r.Status)
			}
			recs.Render()
			fmt.Fprintln(stdout)

			spend := NewTable("SERVICE", "SPEND")
			for _, s := range sc.SpendBreakdown {
				spend.AddRow(s.Name, formatMoney(s.Value))
			}
			spend.Render()
			fmt.Fprintln(stdout)

			breakdown := NewTable("SAVINGS SOURCE", "SHARE")
			for _, b := range sc.SavingsBreakdown {
				breakdown.AddRow(b.Label, strconv.Itoa(b.Percent)+"%")
			}
			breakdown.Render()

			return nil
		},
	}
}
