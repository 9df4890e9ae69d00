package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

func stockCmd() *cobra.Command {
	stockRoot := &cobra.Command{
		Use:   "stock",
		Short: "List and record inventory",
	}

	stockRoot.AddCommand(
		stockListCmd(),
		stockSetCmd(),
	)

	return stockRoot
}

func stockListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List inventory with current quantities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := newClient().ListStock(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), items)
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stock recorded.")
				return nil
			}
			return printStockTable(cmd.OutOrStdout(), items)
		},
	}
}

func stockSetCmd() *cobra.Command {
	var (
		name string
		unit string
	)

	c := &cobra.Command{
		Use:   "set <id> <quantity>",
		Short: "Record the quantity of an item",
		Long: "Record the quantity on hand after a purchase or count. Open sessions of\n" +
			"the same user re-check immediately.",
		Example: `  cajactl stock set 12 3.5 --name Harina --unit kg`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}

			res, err := newClient().PutStock(cmd.Context(), &domain.StockRecord{
				ID:                args[0],
				Name:              name,
				AvailableQuantity: &q,
				Unit:              unit,
			})
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s: %s %s (%d sessions re-checked).\n",
				res.Item.Name, args[1], res.Item.Unit, res.ChecksRun)
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "item name")
	c.Flags().StringVar(&unit, "unit", "", "unit of measure")
	_ = c.MarkFlagRequired("name")
	return c
}
