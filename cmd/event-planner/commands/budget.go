package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage budget lines",
	}
	cmd.AddCommand(budgetAddCmd(), budgetUpdateCmd(), budgetDeleteCmd(), budgetListCmd(), budgetTotalCmd())
	return cmd
}

func budgetAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <amount> <category>",
		Short: "Add a budget line",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := appCtx.budget.AddBudgetLine(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added budget line %d\n", line.ID)
			return nil
		},
	}
}

func budgetUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <name> <amount> <category>",
		Short: "Replace a budget line",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = appCtx.budget.UpdateBudgetLine(cmd.Context(), id, args[1], args[2], args[3])
			return err
		},
	}
}

func budgetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return appCtx.budget.DeleteBudgetLine(cmd.Context(), id)
		},
	}
}

func budgetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budget lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := appCtx.budget.ListBudgetLines(cmd.Context())
			if err != nil {
				return err
			}
			return table(cmd.OutOrStdout(), "ID\tNAME\tCATEGORY\tAMOUNT", func(w io.Writer) {
				for _, l := range lines {
					fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\n", l.ID, l.Name, l.Category, l.Amount)
				}
			})
		},
	}
}

func budgetTotalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Show the budget total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := appCtx.budget.TotalBudget(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", total)
			return nil
		},
	}
}
