package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/satheeshds/buildledger/db"
	"github.com/satheeshds/buildledger/ledger"
	"github.com/satheeshds/buildledger/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <project-id>",
	Short: "Print a project's spend report",
	Long: `Aggregate a project's expenses by category and by month and print the result.

Required environment variables:
  DATABASE_URL - Postgres connection string`,
	Example: `  # Human-readable summary
  buildledger report 6f1c... --tenant acme

  # Full report as JSON
  buildledger report 6f1c... --tenant acme --json`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("tenant", "", "Tenant owning the project (default: DEV_TENANT_ID)")
	reportCmd.Flags().Bool("json", false, "Print the report as JSON")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tenant, _ := cmd.Flags().GetString("tenant")
	if tenant == "" {
		tenant = cfg.DevTenantID
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	pool, err := requirePool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := ledger.New(db.NewStore(pool), nil)
	a := ledger.Actor{UserID: "cli", TenantID: tenant, Role: "admin"}
	project, err := svc.Projects.Get(ctx, a, args[0])
	if err != nil {
		return err
	}
	expenses, err := svc.Projects.Expenses(ctx, a, args[0])
	if err != nil {
		return err
	}
	rep, err := report.Build(ctx, project, expenses)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Printf("%s (%s)\n", rep.ProjectName, rep.Currency)
	fmt.Printf("  Budget:     %s\n", humanize.Comma(int64(rep.Budget)))
	fmt.Printf("  Spent:      %s across %d expenses (%.1f%%)\n", humanize.Comma(int64(rep.ActualSpend)), rep.ExpenseCount, rep.Utilisation)
	fmt.Printf("  Remaining:  %s\n", humanize.Comma(int64(rep.RemainingBudget)))
	fmt.Println("  By category:")
	for _, c := range rep.ByCategory {
		fmt.Printf("    %-20s %12s\n", c.Category, humanize.Comma(int64(c.Amount)))
	}
	fmt.Println("  By month:")
	for _, m := range rep.ByMonth {
		fmt.Printf("    %-20s %12s\n", m.Month, humanize.Comma(int64(m.Amount)))
	}
	return nil
}
