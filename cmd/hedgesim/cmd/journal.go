package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedgesim/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journaled runs",
	Long: `Query and display order records from a SQLite journal.

Subcommands:
  orders - List all orders for a run
  order  - Get details of a specific order by ID

Examples:
  hedgesim journal orders <run-id>
  hedgesim journal order <order-id>`,
}

var journalOrdersCmd = &cobra.Command{
	Use:   "orders <run-id>",
	Short: "List all orders for a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalOrders,
}

var journalOrderCmd = &cobra.Command{
	Use:   "order <order-id>",
	Short: "Get details of a specific order",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalOrder,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalOrdersCmd)
	journalCmd.AddCommand(journalOrderCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./hedgesim.db", "path to SQLite journal DB")
}

func runJournalOrders(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	orders, err := j.ListOrders(args[0])
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		fmt.Printf("No orders for run %s\n", args[0])
		return nil
	}

	fmt.Printf("%-28s %-12s %-6s %-5s %10s %12s %s\n",
		"ORDER", "DATE", "SYMBOL", "SIDE", "QTY", "PRICE", "STATUS")
	for _, o := range orders {
		status := "filled"
		if !o.Executed {
			status = "refused"
		}
		fmt.Printf("%-28s %-12s %-6s %-5s %10d %12.2f %s\n",
			o.OrderID, o.Date.Format("2006-01-02"), o.Symbol, o.Side, o.Quantity, o.Price, status)
	}
	return nil
}

func runJournalOrder(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	o, err := j.GetOrder(args[0])
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}

	fmt.Printf("Order %s\n", o.OrderID)
	fmt.Printf("  Run: %s\n", o.RunID)
	fmt.Printf("  Date: %s\n", o.Date.Format("2006-01-02"))
	fmt.Printf("  %s %d %s @ $%.2f\n", o.Side, o.Quantity, o.Symbol, o.Price)
	fmt.Printf("  Executed: %v\n", o.Executed)
	if o.Reason != "" {
		fmt.Printf("  Reason: %s\n", o.Reason)
	}
	return nil
}
